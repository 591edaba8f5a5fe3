package usecase

import (
	"context"

	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
	cryptoService "github.com/loomchat/chatvault/internal/crypto/service"
	apperrors "github.com/loomchat/chatvault/internal/errors"
)

// chatKeyUseCase implements ChatKeyUseCase.
//
// Lookup order is cache → durable store → create. The injected DekCache holds
// plaintext DEKs for the process lifetime. Concurrent first writes to the same
// chat are collapsed in-process by singleflight, but correctness never depends
// on it: the storage primary key on chat_id is the real guarantee, and an
// insert conflict is answered by re-reading the winner's row.
type chatKeyUseCase struct {
	chatKeyRepo ChatKeyRepository
	keyManager  cryptoService.KeyManager
	cache       *cryptoDomain.DekCache
	algorithm   cryptoDomain.Algorithm
	group       singleflight.Group
}

// NewChatKeyUseCase creates a new ChatKeyUseCase instance. The cache is
// injected so callers (and tests) own its lifecycle.
func NewChatKeyUseCase(
	chatKeyRepo ChatKeyRepository,
	keyManager cryptoService.KeyManager,
	cache *cryptoDomain.DekCache,
	algorithm cryptoDomain.Algorithm,
) ChatKeyUseCase {
	return &chatKeyUseCase{
		chatKeyRepo: chatKeyRepo,
		keyManager:  keyManager,
		cache:       cache,
		algorithm:   algorithm,
	}
}

// GetOrCreate returns the chat's DEK, creating it on first use.
func (u *chatKeyUseCase) GetOrCreate(ctx context.Context, chatID string) ([]byte, error) {
	if dek, ok := u.cache.Get(chatID); ok {
		return dek, nil
	}

	v, err, _ := u.group.Do(chatID, func() (any, error) {
		// Re-check after winning the flight: a concurrent caller may have
		// populated the cache between our miss and this closure running.
		if dek, ok := u.cache.Get(chatID); ok {
			return dek, nil
		}

		dek, err := u.fetch(ctx, chatID)
		if err == nil {
			u.cache.Put(chatID, dek)
			return dek, nil
		}
		if !apperrors.Is(err, cryptoDomain.ErrChatKeyNotFound) {
			return nil, err
		}

		return u.create(ctx, chatID)
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

// Get returns the chat's DEK or (nil, nil) when the chat was never encrypted.
func (u *chatKeyUseCase) Get(ctx context.Context, chatID string) ([]byte, error) {
	if dek, ok := u.cache.Get(chatID); ok {
		return dek, nil
	}

	dek, err := u.fetch(ctx, chatID)
	if err != nil {
		if apperrors.Is(err, cryptoDomain.ErrChatKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	u.cache.Put(chatID, dek)
	return dek, nil
}

// ClearCache drops all cached DEKs.
func (u *chatKeyUseCase) ClearCache() {
	u.cache.Clear()
}

// fetch reads the chat key record and unwraps its DEK.
func (u *chatKeyUseCase) fetch(ctx context.Context, chatID string) ([]byte, error) {
	chatKey, err := u.chatKeyRepo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	return u.keyManager.UnwrapChatKey(ctx, chatKey)
}

// create generates, persists and caches a new DEK for the chat. When the
// insert loses a cross-process race the winner's record is read back instead,
// so at most one DEK ever becomes canonical for a chat.
func (u *chatKeyUseCase) create(ctx context.Context, chatID string) ([]byte, error) {
	chatKey, dek, err := u.keyManager.CreateChatKey(ctx, chatID, u.algorithm)
	if err != nil {
		return nil, err
	}

	if err := u.chatKeyRepo.Create(ctx, &chatKey); err != nil {
		cryptoDomain.Zero(dek)
		if apperrors.Is(err, apperrors.ErrConflict) {
			winner, fetchErr := u.fetch(ctx, chatID)
			if fetchErr != nil {
				return nil, fetchErr
			}
			u.cache.Put(chatID, winner)
			return winner, nil
		}
		return nil, err
	}

	u.cache.Put(chatID, dek)
	return dek, nil
}
