package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/loomchat/chatvault/internal/auth/domain"
	authService "github.com/loomchat/chatvault/internal/auth/service"
	apperrors "github.com/loomchat/chatvault/internal/errors"
)

// clientUseCase implements the ClientUseCase interface.
type clientUseCase struct {
	clientRepo    ClientRepository
	secretService authService.SecretService
}

// NewClientUseCase creates a new ClientUseCase instance.
func NewClientUseCase(
	clientRepo ClientRepository,
	secretService authService.SecretService,
) ClientUseCase {
	return &clientUseCase{
		clientRepo:    clientRepo,
		secretService: secretService,
	}
}

// CreateClient provisions a new active client. The returned plain token embeds
// the client ID so authentication needs a single lookup; only the hash is
// stored.
func (c *clientUseCase) CreateClient(
	ctx context.Context,
	name string,
) (*authDomain.CreateClientOutput, error) {
	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	client := &authDomain.Client{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         name,
		HashedSecret: hashedSecret,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return &authDomain.CreateClientOutput{
		ID:         client.ID,
		PlainToken: fmt.Sprintf("%s.%s", client.ID, plainSecret),
	}, nil
}

// Authenticate splits the token into client ID and secret, loads the client
// and verifies the secret against the stored hash. All failure modes collapse
// to ErrInvalidCredentials so callers cannot distinguish a wrong ID from a
// wrong secret.
func (c *clientUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Client, error) {
	clientIDStr, plainSecret, found := strings.Cut(token, ".")
	if !found || plainSecret == "" {
		return nil, authDomain.ErrInvalidCredentials
	}

	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return nil, authDomain.ErrInvalidCredentials
	}

	client, err := c.clientRepo.Get(ctx, clientID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !c.secretService.CompareSecret(plainSecret, client.HashedSecret) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	return client, nil
}
