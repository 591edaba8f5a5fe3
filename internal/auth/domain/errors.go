package domain

import (
	"github.com/loomchat/chatvault/internal/errors"
)

// Authentication errors.
var (
	// ErrClientNotFound indicates a client with the specified ID was not found.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrInvalidCredentials indicates the presented token did not authenticate.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrClientInactive indicates the client exists but is disabled.
	ErrClientInactive = errors.Wrap(errors.ErrUnauthorized, "client is inactive")
)
