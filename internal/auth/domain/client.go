// Package domain defines authentication domain models.
//
// API access uses client credentials: each client holds an Argon2id-hashed
// secret, and requests authenticate with a bearer token of the form
// "<client-id>.<secret>". The plain secret is shown once at creation time.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents an API client credential.
type Client struct {
	ID           uuid.UUID // Unique identifier (UUIDv7)
	Name         string    // Human-readable client name
	HashedSecret string    // Argon2id hash of the client secret
	IsActive     bool      // Whether the client can authenticate
	CreatedAt    time.Time
}

// CreateClientOutput contains the result of creating a new client. The plain
// token is only returned once and is never retrievable again.
type CreateClientOutput struct {
	ID         uuid.UUID
	PlainToken string // "<client-id>.<secret>", transmit securely, never log
}
