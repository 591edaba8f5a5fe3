package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomchat/chatvault/internal/config"
	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
)

func TestEnvKekProvider_Kek(t *testing.T) {
	ctx := context.Background()

	t.Run("valid hex key", func(t *testing.T) {
		cfg := &config.Config{EncryptionKey: strings.Repeat("00", 32)}
		provider := NewKekProvider(cfg, NewKMSService())

		kek, err := provider.Kek(ctx)
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 32), kek)
	})

	t.Run("missing key", func(t *testing.T) {
		cfg := &config.Config{}
		provider := NewKekProvider(cfg, NewKMSService())

		_, err := provider.Kek(ctx)
		assert.ErrorIs(t, err, cryptoDomain.ErrKekNotConfigured)
	})

	t.Run("key is not valid hex", func(t *testing.T) {
		cfg := &config.Config{EncryptionKey: "not-hex-at-all"}
		provider := NewKekProvider(cfg, NewKMSService())

		_, err := provider.Kek(ctx)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("key decodes to wrong length", func(t *testing.T) {
		cfg := &config.Config{EncryptionKey: strings.Repeat("00", 16)}
		provider := NewKekProvider(cfg, NewKMSService())

		_, err := provider.Kek(ctx)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("successful load is cached", func(t *testing.T) {
		cfg := &config.Config{EncryptionKey: strings.Repeat("ab", 32)}
		provider := NewKekProvider(cfg, NewKMSService())

		kek1, err := provider.Kek(ctx)
		require.NoError(t, err)

		// A config change after a successful load is not observed.
		cfg.EncryptionKey = strings.Repeat("cd", 32)

		kek2, err := provider.Kek(ctx)
		require.NoError(t, err)
		assert.Equal(t, kek1, kek2)
	})

	t.Run("failed load is not cached", func(t *testing.T) {
		cfg := &config.Config{}
		provider := NewKekProvider(cfg, NewKMSService())

		_, err := provider.Kek(ctx)
		require.ErrorIs(t, err, cryptoDomain.ErrKekNotConfigured)

		cfg.EncryptionKey = strings.Repeat("ef", 32)

		kek, err := provider.Kek(ctx)
		require.NoError(t, err)

		expected, err := hex.DecodeString(strings.Repeat("ef", 32))
		require.NoError(t, err)
		assert.Equal(t, expected, kek)
	})
}

func TestEnvKekProvider_Kek_KMS(t *testing.T) {
	ctx := context.Background()
	kms := NewKMSService()

	// localsecrets keeper backed by a fixed base64 key, no external service.
	secretKey := make([]byte, 32)
	_, err := rand.Read(secretKey)
	require.NoError(t, err)
	keyURI := "base64key://" + base64.URLEncoding.EncodeToString(secretKey)

	wrapKek := func(t *testing.T, kek []byte) string {
		t.Helper()
		keeper, err := kms.OpenKeeper(ctx, keyURI)
		require.NoError(t, err)
		defer func() { _ = keeper.Close() }()

		ciphertext, err := keeper.Encrypt(ctx, kek)
		require.NoError(t, err)
		return base64.StdEncoding.EncodeToString(ciphertext)
	}

	t.Run("unwrap KMS-wrapped key", func(t *testing.T) {
		kek := make([]byte, 32)
		_, err := rand.Read(kek)
		require.NoError(t, err)

		cfg := &config.Config{
			EncryptionKey:       wrapKek(t, kek),
			EncryptionKMSKeyURI: keyURI,
		}
		provider := NewKekProvider(cfg, kms)

		got, err := provider.Kek(ctx)
		require.NoError(t, err)
		assert.Equal(t, kek, got)
	})

	t.Run("ciphertext is not valid base64", func(t *testing.T) {
		cfg := &config.Config{
			EncryptionKey:       "%%% not base64 %%%",
			EncryptionKMSKeyURI: keyURI,
		}
		provider := NewKekProvider(cfg, kms)

		_, err := provider.Kek(ctx)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("unwrapped key has wrong length", func(t *testing.T) {
		cfg := &config.Config{
			EncryptionKey:       wrapKek(t, make([]byte, 16)),
			EncryptionKMSKeyURI: keyURI,
		}
		provider := NewKekProvider(cfg, kms)

		_, err := provider.Kek(ctx)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("invalid keeper URI", func(t *testing.T) {
		cfg := &config.Config{
			EncryptionKey:       base64.StdEncoding.EncodeToString([]byte("ciphertext")),
			EncryptionKMSKeyURI: "bogus://nope",
		}
		provider := NewKekProvider(cfg, kms)

		_, err := provider.Kek(ctx)
		assert.Error(t, err)
	})
}
