// Package usecase implements business logic orchestration for chat
// persistence. It coordinates the per-chat key lifecycle, the content codec
// and the repositories so that titles and message bodies are encrypted before
// they reach storage and decrypted (with legacy-plaintext passthrough) on the
// way out.
package usecase

import (
	"context"
	"time"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
)

// ChatRepository defines the interface for chat persistence.
type ChatRepository interface {
	// Create inserts a new chat. Returns ErrChatAlreadyExists on duplicate identifiers.
	Create(ctx context.Context, chat *chatDomain.Chat) error

	// GetByID retrieves a chat. Returns ErrChatNotFound when it does not exist.
	GetByID(ctx context.Context, chatID string) (*chatDomain.Chat, error)

	// List retrieves chats ordered by most recently updated.
	List(ctx context.Context, limit, offset int) ([]*chatDomain.Chat, error)

	// UpdateTitle sets the stored title and updated_at of an existing chat.
	UpdateTitle(ctx context.Context, chat *chatDomain.Chat) error

	// Touch bumps a chat's updated_at.
	Touch(ctx context.Context, chatID string, updatedAt time.Time) error

	// Delete removes a chat and (via the schema) its messages.
	Delete(ctx context.Context, chatID string) error
}

// MessageRepository defines the interface for message persistence.
type MessageRepository interface {
	// Create inserts a new message.
	Create(ctx context.Context, message *chatDomain.Message) error

	// ListByChatID retrieves a chat's messages in chronological order.
	ListByChatID(ctx context.Context, chatID string, limit, offset int) ([]*chatDomain.Message, error)
}

// ChatUseCase defines chat business operations. All returned entities carry
// decrypted titles/content; stored (ciphertext) forms never leave this layer.
type ChatUseCase interface {
	// CreateChat creates a chat, encrypting the title when one is given.
	CreateChat(ctx context.Context, chatID string, title *string) (*chatDomain.Chat, error)

	// GetChat retrieves a chat with its title decrypted.
	GetChat(ctx context.Context, chatID string) (*chatDomain.Chat, error)

	// ListChats retrieves chats with titles decrypted.
	ListChats(ctx context.Context, limit, offset int) ([]*chatDomain.Chat, error)

	// UpdateChatTitle replaces a chat's title (nil clears it).
	UpdateChatTitle(ctx context.Context, chatID string, title *string) (*chatDomain.Chat, error)

	// DeleteChat removes a chat and its messages.
	DeleteChat(ctx context.Context, chatID string) error

	// AppendMessage encrypts and stores one message, creating the chat's DEK
	// on first use.
	AppendMessage(
		ctx context.Context,
		chatID string,
		role chatDomain.Role,
		content any,
	) (*chatDomain.Message, error)

	// ListMessages retrieves a chat's messages with content decrypted.
	// Messages stored before encryption was introduced pass through unchanged.
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*chatDomain.Message, error)
}
