// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
	customValidation "github.com/loomchat/chatvault/internal/validation"
)

// CreateChatRequest contains the parameters for creating a chat. The caller
// supplies the chat identifier so it can match identifiers minted elsewhere.
type CreateChatRequest struct {
	ID    string  `json:"id" binding:"required"`
	Title *string `json:"title,omitempty"`
}

// Validate checks if the create chat request is valid.
func (r *CreateChatRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required,
			customValidation.ChatID,
		),
		validation.Field(&r.Title,
			validation.NilOrNotEmpty,
			validation.Length(0, 1024),
		),
	)
}

// UpdateChatTitleRequest contains the parameters for replacing a chat's title.
// A null title clears it.
type UpdateChatTitleRequest struct {
	Title *string `json:"title"`
}

// Validate checks if the update title request is valid.
func (r *UpdateChatTitleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty,
			validation.Length(0, 1024),
		),
	)
}

// AppendMessageRequest contains the parameters for appending a message to a
// chat. Content accepts any JSON value: plain strings, structured blocks,
// tool call payloads.
type AppendMessageRequest struct {
	Role    string `json:"role" binding:"required"`
	Content any    `json:"content" binding:"required"`
}

// Validate checks if the append message request is valid.
func (r *AppendMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role,
			validation.Required,
			validation.By(func(value interface{}) error {
				s, _ := value.(string)
				if _, err := chatDomain.ParseRole(s); err != nil {
					return validation.NewError("validation_role", "must be one of: user, assistant, system")
				}
				return nil
			}),
		),
		validation.Field(&r.Content, validation.Required),
	)
}
