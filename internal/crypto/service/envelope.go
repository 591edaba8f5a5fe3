package service

import (
	"fmt"
)

const (
	// NonceSize is the AEAD initialization vector length in bytes.
	NonceSize = 12
	// TagSize is the AEAD authentication tag length in bytes.
	TagSize = 16
)

// packEnvelope builds the durable envelope IV ‖ tag ‖ ciphertext from a nonce
// and the sealed output of cipher.AEAD.Seal, which is ciphertext ‖ tag.
func packEnvelope(nonce, sealed []byte) []byte {
	ciphertext := sealed[:len(sealed)-TagSize]
	tag := sealed[len(sealed)-TagSize:]

	envelope := make([]byte, 0, len(nonce)+len(sealed))
	envelope = append(envelope, nonce...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, ciphertext...)
	return envelope
}

// unpackEnvelope splits an IV ‖ tag ‖ ciphertext envelope back into the nonce
// and the ciphertext ‖ tag layout expected by cipher.AEAD.Open.
func unpackEnvelope(envelope []byte) (nonce, sealed []byte, err error) {
	if len(envelope) < NonceSize+TagSize {
		return nil, nil, fmt.Errorf("envelope too short: %d bytes", len(envelope))
	}

	nonce = envelope[:NonceSize]
	tag := envelope[NonceSize : NonceSize+TagSize]
	ciphertext := envelope[NonceSize+TagSize:]

	sealed = make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	return nonce, sealed, nil
}
