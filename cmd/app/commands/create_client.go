package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	authUseCase "github.com/loomchat/chatvault/internal/auth/usecase"
)

// RunCreateClient provisions a new API client and prints its credentials.
// The plain token is shown exactly once.
func RunCreateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	w io.Writer,
	name string,
	format string,
) error {
	output, err := clientUseCase.CreateClient(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if format == "json" {
		payload := map[string]string{
			"id":    output.ID.String(),
			"token": output.PlainToken,
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	fmt.Fprintln(w, "Client created. Store the token securely, it cannot be recovered.")
	fmt.Fprintf(w, "ID:    %s\n", output.ID)
	fmt.Fprintf(w, "Token: %s\n", output.PlainToken)
	return nil
}
