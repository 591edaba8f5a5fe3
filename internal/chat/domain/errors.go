package domain

import (
	"github.com/loomchat/chatvault/internal/errors"
)

var (
	// ErrChatNotFound indicates the requested chat does not exist.
	ErrChatNotFound = errors.Wrap(errors.ErrNotFound, "chat not found")

	// ErrChatAlreadyExists indicates a chat with the same identifier exists.
	ErrChatAlreadyExists = errors.Wrap(errors.ErrConflict, "chat already exists")

	// ErrInvalidRole indicates an unknown message role.
	// Valid roles: user, assistant, system.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid message role")
)
