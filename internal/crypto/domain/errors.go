package domain

import (
	"github.com/loomchat/chatvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrKekNotConfigured indicates the key encryption key is missing from the
	// environment. Validation is deferred to the first encryption or decryption
	// attempt, so a misconfigured process boots but fails on first use.
	ErrKekNotConfigured = errors.Wrap(errors.ErrInvalidInput, "encryption key not configured")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	// All keys (KEK and DEKs) must be exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is
	// not supported. Supported: AESGCM (AES-256-GCM), ChaCha20
	// (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrDecryptionFailed indicates an authenticated decryption failed: wrong
	// key, tampered ciphertext, or corrupted storage. The specific cause is
	// not disclosed to prevent information leakage. This error must always
	// propagate; plausible-looking garbage is never returned instead.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrInvalidEnvelope indicates a stored value carries the ciphertext
	// prefix but is not a decodable envelope (bad base64 or truncated).
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid ciphertext envelope")

	// ErrMissingDek indicates tagged ciphertext was found for a chat that has
	// no data encryption key. Distinct from the legacy-plaintext case, which
	// is valid passthrough.
	ErrMissingDek = errors.Wrap(errors.ErrInvalidInput, "missing data encryption key for encrypted content")

	// ErrChatKeyNotFound indicates no chat key record exists for the chat.
	ErrChatKeyNotFound = errors.Wrap(errors.ErrNotFound, "chat key not found")
)
