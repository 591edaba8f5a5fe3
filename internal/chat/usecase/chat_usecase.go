package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
	cryptoService "github.com/loomchat/chatvault/internal/crypto/service"
	cryptoUseCase "github.com/loomchat/chatvault/internal/crypto/usecase"
	"github.com/loomchat/chatvault/internal/database"
)

// chatUseCase implements the ChatUseCase interface.
type chatUseCase struct {
	txManager   database.TxManager
	chatRepo    ChatRepository
	messageRepo MessageRepository
	chatKeys    cryptoUseCase.ChatKeyUseCase
	codec       cryptoService.ContentCodec
}

// NewChatUseCase creates a new ChatUseCase instance.
func NewChatUseCase(
	txManager database.TxManager,
	chatRepo ChatRepository,
	messageRepo MessageRepository,
	chatKeys cryptoUseCase.ChatKeyUseCase,
	codec cryptoService.ContentCodec,
) ChatUseCase {
	return &chatUseCase{
		txManager:   txManager,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		chatKeys:    chatKeys,
		codec:       codec,
	}
}

// CreateChat creates a chat. A titled chat gets its DEK immediately (the title
// is the first write that needs encryption); an untitled chat defers DEK
// creation to the first message.
func (c *chatUseCase) CreateChat(
	ctx context.Context,
	chatID string,
	title *string,
) (*chatDomain.Chat, error) {
	now := time.Now().UTC()
	chat := &chatDomain.Chat{
		ID:        chatID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if title != nil {
		dek, err := c.chatKeys.GetOrCreate(ctx, chatID)
		if err != nil {
			return nil, err
		}

		stored, err := c.codec.EncryptTitle(title, dek)
		if err != nil {
			return nil, err
		}
		chat.StoredTitle = stored
	}

	if err := c.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	chat.Title = title
	return chat, nil
}

// GetChat retrieves a chat with its title decrypted.
func (c *chatUseCase) GetChat(ctx context.Context, chatID string) (*chatDomain.Chat, error) {
	chat, err := c.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if err := c.decryptChat(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

// ListChats retrieves chats with titles decrypted.
func (c *chatUseCase) ListChats(
	ctx context.Context,
	limit, offset int,
) ([]*chatDomain.Chat, error) {
	chats, err := c.chatRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, chat := range chats {
		if err := c.decryptChat(ctx, chat); err != nil {
			return nil, err
		}
	}

	return chats, nil
}

// UpdateChatTitle replaces a chat's title. A nil title clears it.
func (c *chatUseCase) UpdateChatTitle(
	ctx context.Context,
	chatID string,
	title *string,
) (*chatDomain.Chat, error) {
	chat, err := c.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	chat.StoredTitle = nil
	if title != nil {
		dek, err := c.chatKeys.GetOrCreate(ctx, chatID)
		if err != nil {
			return nil, err
		}

		stored, err := c.codec.EncryptTitle(title, dek)
		if err != nil {
			return nil, err
		}
		chat.StoredTitle = stored
	}

	chat.UpdatedAt = time.Now().UTC()
	if err := c.chatRepo.UpdateTitle(ctx, chat); err != nil {
		return nil, err
	}

	chat.Title = title
	return chat, nil
}

// DeleteChat removes a chat and its messages.
func (c *chatUseCase) DeleteChat(ctx context.Context, chatID string) error {
	return c.chatRepo.Delete(ctx, chatID)
}

// AppendMessage encrypts and stores one message. The message insert and the
// chat's updated_at bump happen in one transaction; DEK creation happens
// outside it, so an aborted write can at worst leave behind a chat key record
// that the next write reuses.
func (c *chatUseCase) AppendMessage(
	ctx context.Context,
	chatID string,
	role chatDomain.Role,
	content any,
) (*chatDomain.Message, error) {
	if _, err := c.chatRepo.GetByID(ctx, chatID); err != nil {
		return nil, err
	}

	dek, err := c.chatKeys.GetOrCreate(ctx, chatID)
	if err != nil {
		return nil, err
	}

	stored, err := c.codec.EncryptValue(content, dek)
	if err != nil {
		return nil, err
	}

	message := &chatDomain.Message{
		ID:            uuid.Must(uuid.NewV7()),
		ChatID:        chatID,
		Role:          role,
		StoredContent: stored,
		CreatedAt:     time.Now().UTC(),
	}

	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := c.messageRepo.Create(txCtx, message); err != nil {
			return err
		}
		return c.chatRepo.Touch(txCtx, chatID, message.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	message.Content = content
	return message, nil
}

// ListMessages retrieves a chat's messages with content decrypted.
func (c *chatUseCase) ListMessages(
	ctx context.Context,
	chatID string,
	limit, offset int,
) ([]*chatDomain.Message, error) {
	if _, err := c.chatRepo.GetByID(ctx, chatID); err != nil {
		return nil, err
	}

	messages, err := c.messageRepo.ListByChatID(ctx, chatID, limit, offset)
	if err != nil {
		return nil, err
	}

	// One DEK lookup covers the whole page; a chat without a key record can
	// only hold legacy plaintext, which the codec passes through.
	dek, err := c.chatKeys.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	for _, message := range messages {
		content, err := c.codec.DecryptValue(message.StoredContent, dek)
		if err != nil {
			return nil, err
		}
		message.Content = content
	}

	return messages, nil
}

// decryptChat populates chat.Title from the stored form.
func (c *chatUseCase) decryptChat(ctx context.Context, chat *chatDomain.Chat) error {
	if chat.StoredTitle == nil {
		return nil
	}

	dek, err := c.chatKeys.Get(ctx, chat.ID)
	if err != nil {
		return err
	}

	title, err := c.codec.DecryptTitle(chat.StoredTitle, dek)
	if err != nil {
		return err
	}

	chat.Title = title
	return nil
}
