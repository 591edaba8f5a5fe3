package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// Security properties:
//   - 256-bit key size
//   - 12-byte IV, randomly generated per encryption; an IV is never reused
//     with the same key
//   - 16-byte authentication tag verified on every decryption
//
// The cipher instance is stateless and safe for concurrent use from multiple
// goroutines.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits). Keys should be generated using
// crypto/rand for cryptographic security.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != 32 {
		return nil, errors.New("key must be exactly 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM and returns the
// IV ‖ tag ‖ ciphertext envelope. A fresh 12-byte IV is generated from
// crypto/rand on every call.
func (a *AESGCMCipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := a.aead.Seal(nil, nonce, plaintext, nil)
	return packEnvelope(nonce, sealed), nil
}

// Decrypt opens an IV ‖ tag ‖ ciphertext envelope produced by Encrypt.
//
// The authentication tag is verified before any plaintext is returned; a
// tampered envelope or a wrong key yields an error, never corrupted data.
func (a *AESGCMCipher) Decrypt(envelope []byte) ([]byte, error) {
	nonce, sealed, err := unpackEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	plaintext, err := a.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
