package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackEnvelope(t *testing.T) {
	t.Run("pack and unpack round trip", func(t *testing.T) {
		nonce := make([]byte, NonceSize)
		_, err := rand.Read(nonce)
		require.NoError(t, err)

		ciphertext := []byte("some ciphertext bytes")
		tag := make([]byte, TagSize)
		_, err = rand.Read(tag)
		require.NoError(t, err)

		sealed := append(append([]byte{}, ciphertext...), tag...)

		envelope := packEnvelope(nonce, sealed)
		assert.Equal(t, NonceSize+TagSize+len(ciphertext), len(envelope))

		gotNonce, gotSealed, err := unpackEnvelope(envelope)
		require.NoError(t, err)
		assert.Equal(t, nonce, gotNonce)
		assert.Equal(t, sealed, gotSealed)
	})

	t.Run("envelope layout is IV then tag then ciphertext", func(t *testing.T) {
		nonce := []byte("012345678901") // 12 bytes
		ciphertext := []byte("payload")
		tag := []byte("0123456789012345") // 16 bytes
		sealed := append(append([]byte{}, ciphertext...), tag...)

		envelope := packEnvelope(nonce, sealed)

		assert.Equal(t, nonce, envelope[:NonceSize])
		assert.Equal(t, tag, envelope[NonceSize:NonceSize+TagSize])
		assert.Equal(t, ciphertext, envelope[NonceSize+TagSize:])
	})

	t.Run("empty ciphertext", func(t *testing.T) {
		nonce := make([]byte, NonceSize)
		tag := make([]byte, TagSize)

		envelope := packEnvelope(nonce, tag)
		assert.Equal(t, NonceSize+TagSize, len(envelope))

		gotNonce, gotSealed, err := unpackEnvelope(envelope)
		require.NoError(t, err)
		assert.Equal(t, nonce, gotNonce)
		assert.Equal(t, tag, gotSealed)
	})
}

func TestUnpackEnvelope(t *testing.T) {
	t.Run("envelope too short", func(t *testing.T) {
		short := make([]byte, NonceSize+TagSize-1)

		_, _, err := unpackEnvelope(short)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "envelope too short")
	})

	t.Run("empty envelope", func(t *testing.T) {
		_, _, err := unpackEnvelope(nil)
		assert.Error(t, err)
	})
}
