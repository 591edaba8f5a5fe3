package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockChatKeyUseCase is a mock implementation of ChatKeyUseCase for testing.
type MockChatKeyUseCase struct {
	mock.Mock
}

// GetOrCreate mocks the GetOrCreate method of ChatKeyUseCase.
func (m *MockChatKeyUseCase) GetOrCreate(ctx context.Context, chatID string) ([]byte, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Get mocks the Get method of ChatKeyUseCase.
func (m *MockChatKeyUseCase) Get(ctx context.Context, chatID string) ([]byte, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ClearCache mocks the ClearCache method of ChatKeyUseCase.
func (m *MockChatKeyUseCase) ClearCache() {
	m.Called()
}
