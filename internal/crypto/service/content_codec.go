package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
)

// EncryptedPrefix tags stored strings that hold an encrypted envelope.
// Any stored string either begins with this prefix (authenticated ciphertext)
// or is legacy plaintext written before encryption was introduced; there is
// no third state. The prefix plus base64(IV ‖ tag ‖ ciphertext) is a durable
// contract shared with rows written by prior versions and must not change.
const EncryptedPrefix = "enc:"

// Content envelopes are always AES-256-GCM: the stored string carries no
// algorithm marker, so the content layer stays on the format that existing
// rows were written with. Algorithm selection applies only to DEK wrapping,
// where the chat key record stores its algorithm.
const contentAlgorithm = cryptoDomain.AESGCM

// storedContent is the result of classifying a stored string exactly once.
// Downstream logic switches on Encrypted instead of re-inspecting the raw
// string, so prefix handling cannot diverge between call sites.
type storedContent struct {
	Encrypted bool
	Envelope  []byte // decoded envelope when Encrypted
	Plaintext string // the original string when legacy plaintext
}

// classifyStored splits a stored string into the ciphertext/plaintext variant.
// A string that carries the prefix but is not valid base64 is an error, never
// silently treated as plaintext.
func classifyStored(stored string) (storedContent, error) {
	if !strings.HasPrefix(stored, EncryptedPrefix) {
		return storedContent{Plaintext: stored}, nil
	}

	envelope, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, EncryptedPrefix))
	if err != nil {
		return storedContent{}, cryptoDomain.ErrInvalidEnvelope
	}
	if len(envelope) < NonceSize+TagSize {
		return storedContent{}, cryptoDomain.ErrInvalidEnvelope
	}

	return storedContent{Encrypted: true, Envelope: envelope}, nil
}

// ContentCodecService implements ContentCodec over the AEAD engine.
// Safe for concurrent use; it holds no mutable state.
type ContentCodecService struct {
	aeadManager AEADManager
}

// NewContentCodec creates a new ContentCodecService.
func NewContentCodec(aeadManager AEADManager) *ContentCodecService {
	return &ContentCodecService{aeadManager: aeadManager}
}

// EncryptValue serializes value to canonical JSON, encrypts the UTF-8 bytes
// with dek and returns the tagged base64 string safe to store in a text column.
func (c *ContentCodecService) EncryptValue(value any, dek []byte) (string, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to serialize content: %w", err)
	}

	aead, err := c.aeadManager.CreateCipher(dek, contentAlgorithm)
	if err != nil {
		return "", err
	}

	envelope, err := aead.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt content: %w", err)
	}

	return EncryptedPrefix + base64.StdEncoding.EncodeToString(envelope), nil
}

// DecryptValue reverses EncryptValue.
//
// Stored values that are not strings, or strings without the prefix, pass
// through unchanged; that is the backward-compatibility contract for rows
// written before encryption, not an error. Tagged strings require a DEK:
// passing a nil dek for tagged content returns ErrMissingDek rather than the
// raw ciphertext.
func (c *ContentCodecService) DecryptValue(stored any, dek []byte) (any, error) {
	s, ok := stored.(string)
	if !ok {
		return stored, nil
	}

	content, err := classifyStored(s)
	if err != nil {
		return nil, err
	}
	if !content.Encrypted {
		return content.Plaintext, nil
	}

	if len(dek) == 0 {
		return nil, cryptoDomain.ErrMissingDek
	}

	aead, err := c.aeadManager.CreateCipher(dek, contentAlgorithm)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Decrypt(content.Envelope)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	var value any
	if err := json.Unmarshal(plaintext, &value); err != nil {
		return nil, fmt.Errorf("failed to deserialize content: %w", err)
	}

	return value, nil
}

// EncryptTitle encrypts a nullable chat title. A nil title passes through untouched.
func (c *ContentCodecService) EncryptTitle(title *string, dek []byte) (*string, error) {
	if title == nil {
		return nil, nil
	}

	encrypted, err := c.EncryptValue(*title, dek)
	if err != nil {
		return nil, err
	}

	return &encrypted, nil
}

// DecryptTitle reverses EncryptTitle. Nil titles and legacy plaintext titles
// pass through; a tagged title without a DEK is an error.
func (c *ContentCodecService) DecryptTitle(title *string, dek []byte) (*string, error) {
	if title == nil {
		return nil, nil
	}

	value, err := c.DecryptValue(*title, dek)
	if err != nil {
		return nil, err
	}

	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: title did not decrypt to a string", cryptoDomain.ErrDecryptionFailed)
	}

	return &s, nil
}
