// Package repository implements chat and message persistence for PostgreSQL
// and MySQL. Repositories store titles and message content exactly as handed
// to them (tagged ciphertext or legacy plaintext); encryption belongs to the
// use case layer.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
	"github.com/loomchat/chatvault/internal/database"
	apperrors "github.com/loomchat/chatvault/internal/errors"
)

const pgUniqueViolation = "23505"

// PostgreSQLChatRepository implements chat persistence for PostgreSQL.
type PostgreSQLChatRepository struct {
	db *sql.DB
}

// NewPostgreSQLChatRepository creates a new PostgreSQL chat repository.
func NewPostgreSQLChatRepository(db *sql.DB) *PostgreSQLChatRepository {
	return &PostgreSQLChatRepository{db: db}
}

// Create inserts a new chat.
func (p *PostgreSQLChatRepository) Create(ctx context.Context, chat *chatDomain.Chat) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO chats (id, title, created_at, updated_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		chat.ID,
		chat.StoredTitle,
		chat.CreatedAt,
		chat.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return chatDomain.ErrChatAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create chat")
	}
	return nil
}

// GetByID retrieves a chat by its identifier.
func (p *PostgreSQLChatRepository) GetByID(
	ctx context.Context,
	chatID string,
) (*chatDomain.Chat, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, created_at, updated_at
			  FROM chats
			  WHERE id = $1`

	var chat chatDomain.Chat
	err := querier.QueryRowContext(ctx, query, chatID).Scan(
		&chat.ID,
		&chat.StoredTitle,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, chatDomain.ErrChatNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get chat")
	}

	return &chat, nil
}

// List retrieves chats ordered by most recently updated.
func (p *PostgreSQLChatRepository) List(
	ctx context.Context,
	limit, offset int,
) ([]*chatDomain.Chat, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, created_at, updated_at
			  FROM chats
			  ORDER BY updated_at DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list chats")
	}
	defer func() { _ = rows.Close() }()

	var chats []*chatDomain.Chat
	for rows.Next() {
		var chat chatDomain.Chat
		if err := rows.Scan(&chat.ID, &chat.StoredTitle, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan chat")
		}
		chats = append(chats, &chat)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate chats")
	}

	return chats, nil
}

// UpdateTitle sets a chat's stored title and bumps updated_at.
func (p *PostgreSQLChatRepository) UpdateTitle(ctx context.Context, chat *chatDomain.Chat) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE chats
			  SET title = $1,
			      updated_at = $2
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, chat.StoredTitle, chat.UpdatedAt, chat.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update chat title")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update chat title")
	}
	if affected == 0 {
		return chatDomain.ErrChatNotFound
	}

	return nil
}

// Touch bumps a chat's updated_at, used when a message is appended.
func (p *PostgreSQLChatRepository) Touch(ctx context.Context, chatID string, updatedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	_, err := querier.ExecContext(
		ctx,
		`UPDATE chats SET updated_at = $1 WHERE id = $2`,
		updatedAt,
		chatID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to touch chat")
	}
	return nil
}

// Delete removes a chat; its messages go with it via ON DELETE CASCADE.
// The chat key record is retained deliberately: a chat re-created under the
// same identifier keeps its original DEK.
func (p *PostgreSQLChatRepository) Delete(ctx context.Context, chatID string) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, chatID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete chat")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to delete chat")
	}
	if affected == 0 {
		return chatDomain.ErrChatNotFound
	}

	return nil
}
