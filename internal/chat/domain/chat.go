// Package domain defines the chat persistence domain models.
//
// Chat titles and message bodies are encrypted at rest with a per-chat data
// encryption key. Entities carry both the stored form (tagged ciphertext or
// legacy plaintext) and the decrypted form, which is populated after
// decryption and never persisted.
package domain

import (
	"time"
)

// Chat represents a conversation owned by a client.
type Chat struct {
	ID          string    // Chat identifier supplied by the client application
	StoredTitle *string   // Title as persisted: "enc:" envelope or legacy plaintext
	Title       *string   // Decrypted title (populated after decryption, never persisted)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
