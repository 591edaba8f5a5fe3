package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ParseRole converts a request string to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAssistant, RoleSystem:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// Message represents one chat message.
// StoredContent is what the text column holds; Content is the decrypted
// JSON-representable value, populated after decryption and never persisted.
type Message struct {
	ID            uuid.UUID // Unique identifier (UUIDv7)
	ChatID        string
	Role          Role
	StoredContent string // "enc:" envelope or legacy plaintext
	Content       any    // Decrypted content (never persisted)
	CreatedAt     time.Time
}
