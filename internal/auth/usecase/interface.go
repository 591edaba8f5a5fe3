// Package usecase implements authentication business logic.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/loomchat/chatvault/internal/auth/domain"
)

// ClientRepository defines the interface for client persistence.
type ClientRepository interface {
	// Create inserts a new client.
	Create(ctx context.Context, client *authDomain.Client) error

	// Get retrieves a client by ID. Returns ErrClientNotFound when absent.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
}

// ClientUseCase defines client credential operations.
type ClientUseCase interface {
	// CreateClient provisions a new client and returns the one-time plain token.
	CreateClient(ctx context.Context, name string) (*authDomain.CreateClientOutput, error)

	// Authenticate validates a bearer token of the form "<client-id>.<secret>"
	// and returns the matching active client.
	Authenticate(ctx context.Context, token string) (*authDomain.Client, error)
}
