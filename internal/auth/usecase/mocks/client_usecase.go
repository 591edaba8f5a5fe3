package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/loomchat/chatvault/internal/auth/domain"
)

// MockClientUseCase is a mock implementation of ClientUseCase for testing.
type MockClientUseCase struct {
	mock.Mock
}

func (m *MockClientUseCase) CreateClient(
	ctx context.Context,
	name string,
) (*authDomain.CreateClientOutput, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateClientOutput), args.Error(1)
}

func (m *MockClientUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Client, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}
