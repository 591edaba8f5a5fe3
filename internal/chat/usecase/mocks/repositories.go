// Package mocks provides mock implementations for testing chat use cases and handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
)

// MockChatRepository is a mock implementation of ChatRepository for testing.
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Create(ctx context.Context, chat *chatDomain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatRepository) GetByID(ctx context.Context, chatID string) (*chatDomain.Chat, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chatDomain.Chat), args.Error(1)
}

func (m *MockChatRepository) List(ctx context.Context, limit, offset int) ([]*chatDomain.Chat, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chatDomain.Chat), args.Error(1)
}

func (m *MockChatRepository) UpdateTitle(ctx context.Context, chat *chatDomain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatRepository) Touch(ctx context.Context, chatID string, updatedAt time.Time) error {
	args := m.Called(ctx, chatID, updatedAt)
	return args.Error(0)
}

func (m *MockChatRepository) Delete(ctx context.Context, chatID string) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of MessageRepository for testing.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *chatDomain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByChatID(
	ctx context.Context,
	chatID string,
	limit, offset int,
) ([]*chatDomain.Message, error) {
	args := m.Called(ctx, chatID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chatDomain.Message), args.Error(1)
}
