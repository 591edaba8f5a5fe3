package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
)

// KeyManagerService implements the KeyManager interface for envelope encryption.
//
// It manages the DEK half of the two-tier hierarchy: per-chat data encryption
// keys are generated here, wrapped under the process-wide KEK, and later
// unwrapped for use. The KEK never touches chat content directly; the same
// AEAD primitive protects both layers.
type KeyManagerService struct {
	aeadManager AEADManager
	kekProvider KekProvider
}

// NewKeyManager creates a new KeyManagerService instance.
func NewKeyManager(aeadManager AEADManager, kekProvider KekProvider) *KeyManagerService {
	return &KeyManagerService{
		aeadManager: aeadManager,
		kekProvider: kekProvider,
	}
}

// CreateChatKey generates a random 256-bit DEK for the chat and wraps it under
// the KEK with the specified algorithm. Returns the durable record together
// with the plaintext DEK so the caller can encrypt content immediately without
// a decrypt round-trip. The caller owns the plaintext DEK; it is never persisted.
func (km *KeyManagerService) CreateChatKey(
	ctx context.Context,
	chatID string,
	alg cryptoDomain.Algorithm,
) (cryptoDomain.ChatKey, []byte, error) {
	dek := make([]byte, 32)
	if _, err := rand.Read(dek); err != nil {
		return cryptoDomain.ChatKey{}, nil, fmt.Errorf("failed to generate DEK: %w", err)
	}

	kek, err := km.kekProvider.Kek(ctx)
	if err != nil {
		return cryptoDomain.ChatKey{}, nil, err
	}

	aead, err := km.aeadManager.CreateCipher(kek, alg)
	if err != nil {
		return cryptoDomain.ChatKey{}, nil, err
	}

	encryptedDek, err := aead.Encrypt(dek)
	if err != nil {
		cryptoDomain.Zero(dek)
		return cryptoDomain.ChatKey{}, nil, fmt.Errorf("failed to encrypt DEK: %w", err)
	}

	chatKey := cryptoDomain.ChatKey{
		ChatID:       chatID,
		Algorithm:    alg,
		EncryptedDek: encryptedDek,
		CreatedAt:    time.Now().UTC(),
	}

	return chatKey, dek, nil
}

// UnwrapChatKey decrypts a stored chat key record back to the plaintext DEK
// using the KEK. Returns ErrDecryptionFailed if the record's authentication
// tag does not verify (tampered storage or a changed KEK).
func (km *KeyManagerService) UnwrapChatKey(
	ctx context.Context,
	chatKey *cryptoDomain.ChatKey,
) ([]byte, error) {
	kek, err := km.kekProvider.Kek(ctx)
	if err != nil {
		return nil, err
	}

	aead, err := km.aeadManager.CreateCipher(kek, chatKey.Algorithm)
	if err != nil {
		return nil, err
	}

	dek, err := aead.Decrypt(chatKey.EncryptedDek)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	if len(dek) != 32 {
		cryptoDomain.Zero(dek)
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	return dek, nil
}
