// Package domain defines the core cryptographic domain models for envelope
// encryption of chat content.
//
// It implements a two-tier key hierarchy: KEK → DEK → Data. A single
// process-wide Key Encryption Key protects one Data Encryption Key per chat,
// so chat content never touches the KEK directly and individual chats can be
// decrypted independently. Supports AESGCM and ChaCha20 with 256-bit keys.
package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// Both supported algorithms provide Authenticated Encryption with Associated
// Data (AEAD) with a 256-bit key, a 12-byte nonce and a 16-byte authentication
// tag, so envelopes produced by either have an identical layout.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	// Preferred on CPUs with AES-NI hardware acceleration and the default
	// for new chat keys.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption
	// algorithm. A constant-time software implementation for platforms
	// without AES hardware acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// ParseAlgorithm converts a configuration string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
