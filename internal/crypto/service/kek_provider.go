package service

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/loomchat/chatvault/internal/config"
	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
)

// EnvKekProvider loads the key encryption key from configuration.
//
// Two sources are supported:
//   - plain: CHAT_ENCRYPTION_KEY holds 64 hex characters (32 bytes)
//   - KMS-wrapped: CHAT_ENCRYPTION_KMS_KEY_URI names a gocloud.dev keeper and
//     CHAT_ENCRYPTION_KEY holds base64 KMS ciphertext of the 32-byte key
//
// Validation is deliberately lazy: the key is read and checked on the first
// Kek call rather than at process start, so a deployment that never touches
// encryption still boots with a missing key. A successfully loaded key is
// cached for the process lifetime; load failures are not cached, so a
// transient KMS outage does not poison later calls.
type EnvKekProvider struct {
	cfg *config.Config
	kms KMSService

	mu  sync.Mutex
	key []byte
}

// NewKekProvider creates a KEK provider backed by the given configuration.
func NewKekProvider(cfg *config.Config, kms KMSService) *EnvKekProvider {
	return &EnvKekProvider{cfg: cfg, kms: kms}
}

// Kek returns the 32-byte key encryption key.
// Returns ErrKekNotConfigured when the environment value is absent and
// ErrInvalidKeySize when it does not decode to exactly 32 bytes.
func (p *EnvKekProvider) Kek(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.key != nil {
		return p.key, nil
	}

	key, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	p.key = key
	return p.key, nil
}

// load reads and validates the KEK from its configured source.
func (p *EnvKekProvider) load(ctx context.Context) ([]byte, error) {
	raw := p.cfg.EncryptionKey
	if raw == "" {
		return nil, cryptoDomain.ErrKekNotConfigured
	}

	if p.cfg.EncryptionKMSKeyURI != "" {
		return p.loadFromKMS(ctx, raw)
	}

	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: CHAT_ENCRYPTION_KEY is not valid hex", cryptoDomain.ErrInvalidKeySize)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf(
			"%w: CHAT_ENCRYPTION_KEY must decode to 32 bytes, got %d",
			cryptoDomain.ErrInvalidKeySize,
			len(key),
		)
	}

	return key, nil
}

// loadFromKMS unwraps a KMS-encrypted KEK.
func (p *EnvKekProvider) loadFromKMS(ctx context.Context, raw string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: CHAT_ENCRYPTION_KEY is not valid base64 KMS ciphertext",
			cryptoDomain.ErrInvalidKeySize,
		)
	}

	keeper, err := p.kms.OpenKeeper(ctx, p.cfg.EncryptionKMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper for KEK: %w", err)
	}
	defer func() { _ = keeper.Close() }()

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap KEK via KMS: %w", err)
	}
	if len(key) != 32 {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf(
			"%w: KMS-unwrapped KEK must be 32 bytes, got %d",
			cryptoDomain.ErrInvalidKeySize,
			len(key),
		)
	}

	return key, nil
}
