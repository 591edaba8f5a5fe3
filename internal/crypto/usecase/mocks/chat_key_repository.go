// Package mocks provides mock implementations for testing crypto use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
)

// MockChatKeyRepository is a mock implementation of ChatKeyRepository for testing.
type MockChatKeyRepository struct {
	mock.Mock
}

// Create mocks the Create method of ChatKeyRepository.
func (m *MockChatKeyRepository) Create(ctx context.Context, chatKey *cryptoDomain.ChatKey) error {
	args := m.Called(ctx, chatKey)
	return args.Error(0)
}

// Get mocks the Get method of ChatKeyRepository.
func (m *MockChatKeyRepository) Get(ctx context.Context, chatID string) (*cryptoDomain.ChatKey, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.ChatKey), args.Error(1)
}
