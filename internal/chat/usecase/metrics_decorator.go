package usecase

import (
	"context"
	"time"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
	"github.com/loomchat/chatvault/internal/metrics"
)

// chatUseCaseWithMetrics decorates ChatUseCase with metrics instrumentation.
type chatUseCaseWithMetrics struct {
	next    ChatUseCase
	metrics metrics.BusinessMetrics
}

// NewChatUseCaseWithMetrics wraps a ChatUseCase with metrics recording.
func NewChatUseCaseWithMetrics(useCase ChatUseCase, m metrics.BusinessMetrics) ChatUseCase {
	return &chatUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *chatUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "chat", operation, status)
	c.metrics.RecordDuration(ctx, "chat", operation, time.Since(start), status)
}

// CreateChat records metrics for chat creation operations.
func (c *chatUseCaseWithMetrics) CreateChat(
	ctx context.Context,
	chatID string,
	title *string,
) (*chatDomain.Chat, error) {
	start := time.Now()
	chat, err := c.next.CreateChat(ctx, chatID, title)
	c.record(ctx, "chat_create", start, err)
	return chat, err
}

// GetChat records metrics for chat retrieval operations.
func (c *chatUseCaseWithMetrics) GetChat(ctx context.Context, chatID string) (*chatDomain.Chat, error) {
	start := time.Now()
	chat, err := c.next.GetChat(ctx, chatID)
	c.record(ctx, "chat_get", start, err)
	return chat, err
}

// ListChats records metrics for chat listing operations.
func (c *chatUseCaseWithMetrics) ListChats(
	ctx context.Context,
	limit, offset int,
) ([]*chatDomain.Chat, error) {
	start := time.Now()
	chats, err := c.next.ListChats(ctx, limit, offset)
	c.record(ctx, "chat_list", start, err)
	return chats, err
}

// UpdateChatTitle records metrics for title update operations.
func (c *chatUseCaseWithMetrics) UpdateChatTitle(
	ctx context.Context,
	chatID string,
	title *string,
) (*chatDomain.Chat, error) {
	start := time.Now()
	chat, err := c.next.UpdateChatTitle(ctx, chatID, title)
	c.record(ctx, "chat_update_title", start, err)
	return chat, err
}

// DeleteChat records metrics for chat deletion operations.
func (c *chatUseCaseWithMetrics) DeleteChat(ctx context.Context, chatID string) error {
	start := time.Now()
	err := c.next.DeleteChat(ctx, chatID)
	c.record(ctx, "chat_delete", start, err)
	return err
}

// AppendMessage records metrics for message append operations.
func (c *chatUseCaseWithMetrics) AppendMessage(
	ctx context.Context,
	chatID string,
	role chatDomain.Role,
	content any,
) (*chatDomain.Message, error) {
	start := time.Now()
	message, err := c.next.AppendMessage(ctx, chatID, role, content)
	c.record(ctx, "message_append", start, err)
	return message, err
}

// ListMessages records metrics for message listing operations.
func (c *chatUseCaseWithMetrics) ListMessages(
	ctx context.Context,
	chatID string,
	limit, offset int,
) ([]*chatDomain.Message, error) {
	start := time.Now()
	messages, err := c.next.ListMessages(ctx, chatID, limit, offset)
	c.record(ctx, "message_list", start, err)
	return messages, err
}
