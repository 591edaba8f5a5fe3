package domain

import (
	"time"
)

// ChatKey is the durable record for one chat's Data Encryption Key.
// EncryptedDek holds the DEK wrapped under the KEK as an IV‖tag‖ciphertext
// envelope; the plaintext DEK is never persisted. A ChatKey is created once
// per chat on the first write that needs encryption and is immutable
// afterward; there is no per-chat key rotation in this design.
type ChatKey struct {
	ChatID       string    // Chat identifier (primary key in storage)
	Algorithm    Algorithm // AEAD used to wrap the DEK
	EncryptedDek []byte    // The DEK encrypted with the KEK
	CreatedAt    time.Time
}
