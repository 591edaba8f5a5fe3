// Package http provides HTTP handlers for chat and message operations.
// Titles and message content are encrypted at rest; handlers only ever see
// and return decrypted forms.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
	"github.com/loomchat/chatvault/internal/chat/http/dto"
	chatUseCase "github.com/loomchat/chatvault/internal/chat/usecase"
	"github.com/loomchat/chatvault/internal/httputil"
	customValidation "github.com/loomchat/chatvault/internal/validation"
)

// ChatHandler handles HTTP requests for chat and message operations.
type ChatHandler struct {
	chatUseCase chatUseCase.ChatUseCase
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler with required dependencies.
func NewChatHandler(useCase chatUseCase.ChatUseCase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: useCase,
		logger:      logger,
	}
}

// CreateHandler creates a new chat.
// POST /v1/chats
// Returns 201 Created, or 409 Conflict on a duplicate identifier.
func (h *ChatHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	chat, err := h.chatUseCase.CreateChat(c.Request.Context(), req.ID, req.Title)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapChatToResponse(chat))
}

// GetHandler retrieves a chat by ID.
// GET /v1/chats/:chat_id
func (h *ChatHandler) GetHandler(c *gin.Context) {
	chatID, ok := h.chatIDParam(c)
	if !ok {
		return
	}

	chat, err := h.chatUseCase.GetChat(c.Request.Context(), chatID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapChatToResponse(chat))
}

// ListHandler retrieves chats ordered by most recent activity.
// GET /v1/chats?limit=N&offset=N
func (h *ChatHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	chats, err := h.chatUseCase.ListChats(c.Request.Context(), limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ChatListResponse{
		Chats:  make([]dto.ChatResponse, 0, len(chats)),
		Limit:  limit,
		Offset: offset,
	}
	for _, chat := range chats {
		response.Chats = append(response.Chats, dto.MapChatToResponse(chat))
	}

	c.JSON(http.StatusOK, response)
}

// UpdateTitleHandler replaces a chat's title. A null title clears it.
// PUT /v1/chats/:chat_id/title
func (h *ChatHandler) UpdateTitleHandler(c *gin.Context) {
	chatID, ok := h.chatIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateChatTitleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	chat, err := h.chatUseCase.UpdateChatTitle(c.Request.Context(), chatID, req.Title)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapChatToResponse(chat))
}

// DeleteHandler removes a chat and its messages.
// DELETE /v1/chats/:chat_id
// Returns 204 No Content on success.
func (h *ChatHandler) DeleteHandler(c *gin.Context) {
	chatID, ok := h.chatIDParam(c)
	if !ok {
		return
	}

	if err := h.chatUseCase.DeleteChat(c.Request.Context(), chatID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// AppendMessageHandler appends a message to a chat.
// POST /v1/chats/:chat_id/messages
// Returns 201 Created with the stored message, content decrypted.
func (h *ChatHandler) AppendMessageHandler(c *gin.Context) {
	chatID, ok := h.chatIDParam(c)
	if !ok {
		return
	}

	var req dto.AppendMessageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	role, err := chatDomain.ParseRole(req.Role)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	message, err := h.chatUseCase.AppendMessage(c.Request.Context(), chatID, role, req.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMessageToResponse(message))
}

// ListMessagesHandler retrieves a chat's messages in chronological order.
// GET /v1/chats/:chat_id/messages?limit=N&offset=N
func (h *ChatHandler) ListMessagesHandler(c *gin.Context) {
	chatID, ok := h.chatIDParam(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	messages, err := h.chatUseCase.ListMessages(c.Request.Context(), chatID, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MessageListResponse{
		Messages: make([]dto.MessageResponse, 0, len(messages)),
		Limit:    limit,
		Offset:   offset,
	}
	for _, message := range messages {
		response.Messages = append(response.Messages, dto.MapMessageToResponse(message))
	}

	c.JSON(http.StatusOK, response)
}

// chatIDParam extracts and validates the chat_id URL parameter. Writes the
// error response itself when validation fails.
func (h *ChatHandler) chatIDParam(c *gin.Context) (string, bool) {
	chatID := c.Param("chat_id")
	if err := customValidation.ChatID.Validate(chatID); err != nil {
		httputil.HandleValidationErrorGin(
			c,
			customValidation.WrapValidationError(fmt.Errorf("chat_id: %w", err)),
			h.logger,
		)
		return "", false
	}
	return chatID, true
}
