// Package usecase implements the DEK lifecycle for chat content encryption:
// one data encryption key per chat, created on first use, cached in memory for
// the process lifetime and persisted wrapped under the KEK.
package usecase

import (
	"context"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
)

// ChatKeyRepository defines the interface for chat key persistence.
//
// Implementations must enforce uniqueness on the chat identifier at the
// storage layer (primary key) and surface duplicate inserts as ErrConflict;
// an application-level check-then-insert is not sufficient under concurrency.
type ChatKeyRepository interface {
	// Create stores a new chat key record. Returns ErrConflict when a record
	// for the chat already exists.
	Create(ctx context.Context, chatKey *cryptoDomain.ChatKey) error

	// Get retrieves the chat key record for a chat.
	// Returns ErrChatKeyNotFound when none exists.
	Get(ctx context.Context, chatID string) (*cryptoDomain.ChatKey, error)
}

// ChatKeyUseCase provides the one DEK for a given chat.
type ChatKeyUseCase interface {
	// GetOrCreate returns the chat's plaintext DEK, creating and persisting a
	// new chat key record on first use. Safe for concurrent callers on the
	// same new chat: exactly one record becomes canonical and every caller
	// observes the same DEK.
	GetOrCreate(ctx context.Context, chatID string) ([]byte, error)

	// Get returns the chat's plaintext DEK, or (nil, nil) when the chat has no
	// chat key record. Never creates a record as a side effect; readers use it
	// to distinguish "never encrypted" from "encrypted".
	Get(ctx context.Context, chatID string) ([]byte, error)

	// ClearCache drops all cached DEKs; subsequent lookups re-fetch from the
	// durable store. Operational/test hook.
	ClearCache()
}
