package dto

import (
	"time"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
)

// ChatResponse represents a chat in API responses. The title is the decrypted
// form; ciphertext never appears on the wire.
type ChatResponse struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse represents a message in API responses with decrypted content.
type MessageResponse struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Role      string    `json:"role"`
	Content   any       `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatListResponse wraps a page of chats.
type ChatListResponse struct {
	Chats  []ChatResponse `json:"chats"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// MessageListResponse wraps a page of messages.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// MapChatToResponse converts a domain chat to an API response.
func MapChatToResponse(chat *chatDomain.Chat) ChatResponse {
	return ChatResponse{
		ID:        chat.ID,
		Title:     chat.Title,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}
}

// MapMessageToResponse converts a domain message to an API response.
func MapMessageToResponse(message *chatDomain.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID.String(),
		ChatID:    message.ChatID,
		Role:      string(message.Role),
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}
