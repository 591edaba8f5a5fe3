package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
	cryptoService "github.com/loomchat/chatvault/internal/crypto/service"
)

// RunCreateKek generates a fresh 256-bit key encryption key and prints the
// environment configuration for it. With a KMS key URI the raw key is
// encrypted with KMS first and printed as base64 ciphertext; without one it
// is printed as 64 hex characters for direct use in CHAT_ENCRYPTION_KEY.
// Key material is zeroed after encoding.
func RunCreateKek(ctx context.Context, w io.Writer, kmsKeyURI string) error {
	kek := make([]byte, 32)
	if _, err := rand.Read(kek); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	defer cryptoDomain.Zero(kek)

	if kmsKeyURI == "" {
		fmt.Fprintln(w, "# Store this key in your secret manager. It cannot be recovered.")
		fmt.Fprintf(w, "CHAT_ENCRYPTION_KEY=%s\n", hex.EncodeToString(kek))
		return nil
	}

	kmsService := cryptoService.NewKMSService()
	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			fmt.Fprintf(w, "# Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, kek)
	if err != nil {
		return fmt.Errorf("failed to encrypt key with KMS: %w", err)
	}

	fmt.Fprintln(w, "# KEK encrypted with KMS. Both variables are required at runtime.")
	fmt.Fprintf(w, "CHAT_ENCRYPTION_KEY=%s\n", base64.StdEncoding.EncodeToString(ciphertext))
	fmt.Fprintf(w, "CHAT_ENCRYPTION_KMS_KEY_URI=%s\n", kmsKeyURI)
	return nil
}
