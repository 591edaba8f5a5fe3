// Package service provides cryptographic services for envelope encryption of
// chat content. Implements AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305) for
// wrapping per-chat data encryption keys and encrypting message payloads.
package service

import (
	"context"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
)

// AEAD defines the interface for authenticated encryption over the fixed
// envelope layout IV ‖ tag ‖ ciphertext (12-byte IV, 16-byte tag).
type AEAD interface {
	// Encrypt encrypts plaintext with a fresh random IV and returns the envelope.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt opens an envelope, verifying the authentication tag.
	Decrypt(envelope []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KekProvider exposes the process-wide 256-bit key encryption key.
type KekProvider interface {
	// Kek returns the 32-byte KEK. Validation is lazy: configuration errors
	// surface on the first call, not at process start.
	Kek(ctx context.Context) ([]byte, error)
}

// KeyManager defines the interface for the DEK side of envelope encryption.
type KeyManager interface {
	// CreateChatKey generates a fresh 256-bit DEK for the chat, wraps it under
	// the KEK and returns the durable record together with the plaintext DEK.
	CreateChatKey(
		ctx context.Context,
		chatID string,
		alg cryptoDomain.Algorithm,
	) (cryptoDomain.ChatKey, []byte, error)

	// UnwrapChatKey decrypts a stored chat key record back to the plaintext DEK.
	UnwrapChatKey(ctx context.Context, chatKey *cryptoDomain.ChatKey) ([]byte, error)
}

// ContentCodec converts between JSON-representable values and the tagged,
// encrypted strings stored in text columns.
type ContentCodec interface {
	// EncryptValue serializes value to JSON, encrypts it with dek and returns
	// a string with the "enc:" prefix.
	EncryptValue(value any, dek []byte) (string, error)

	// DecryptValue reverses EncryptValue. Values that are not tagged strings
	// pass through unchanged (legacy plaintext written before encryption was
	// introduced).
	DecryptValue(stored any, dek []byte) (any, error)

	// EncryptTitle encrypts a nullable chat title; nil passes through.
	EncryptTitle(title *string, dek []byte) (*string, error)

	// DecryptTitle reverses EncryptTitle; nil and legacy plaintext pass through.
	DecryptTitle(title *string, dek []byte) (*string, error)
}
