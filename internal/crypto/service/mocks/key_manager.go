// Package mocks provides mock implementations for testing crypto services.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
)

// MockKeyManager is a mock implementation of KeyManager for testing.
type MockKeyManager struct {
	mock.Mock
}

// CreateChatKey mocks the CreateChatKey method of KeyManager.
func (m *MockKeyManager) CreateChatKey(
	ctx context.Context,
	chatID string,
	alg cryptoDomain.Algorithm,
) (cryptoDomain.ChatKey, []byte, error) {
	args := m.Called(ctx, chatID, alg)
	var dek []byte
	if args.Get(1) != nil {
		dek = args.Get(1).([]byte)
	}
	return args.Get(0).(cryptoDomain.ChatKey), dek, args.Error(2)
}

// UnwrapChatKey mocks the UnwrapChatKey method of KeyManager.
func (m *MockKeyManager) UnwrapChatKey(
	ctx context.Context,
	chatKey *cryptoDomain.ChatKey,
) ([]byte, error) {
	args := m.Called(ctx, chatKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
