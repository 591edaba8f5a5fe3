package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
)

// MockChatUseCase is a mock implementation of ChatUseCase for testing.
type MockChatUseCase struct {
	mock.Mock
}

func (m *MockChatUseCase) CreateChat(
	ctx context.Context,
	chatID string,
	title *string,
) (*chatDomain.Chat, error) {
	args := m.Called(ctx, chatID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chatDomain.Chat), args.Error(1)
}

func (m *MockChatUseCase) GetChat(ctx context.Context, chatID string) (*chatDomain.Chat, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chatDomain.Chat), args.Error(1)
}

func (m *MockChatUseCase) ListChats(ctx context.Context, limit, offset int) ([]*chatDomain.Chat, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chatDomain.Chat), args.Error(1)
}

func (m *MockChatUseCase) UpdateChatTitle(
	ctx context.Context,
	chatID string,
	title *string,
) (*chatDomain.Chat, error) {
	args := m.Called(ctx, chatID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chatDomain.Chat), args.Error(1)
}

func (m *MockChatUseCase) DeleteChat(ctx context.Context, chatID string) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *MockChatUseCase) AppendMessage(
	ctx context.Context,
	chatID string,
	role chatDomain.Role,
	content any,
) (*chatDomain.Message, error) {
	args := m.Called(ctx, chatID, role, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chatDomain.Message), args.Error(1)
}

func (m *MockChatUseCase) ListMessages(
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
