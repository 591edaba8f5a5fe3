package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
	"github.com/loomchat/chatvault/internal/database"
	apperrors "github.com/loomchat/chatvault/internal/errors"
)

const mysqlDuplicateEntry = 1062

// MySQLChatRepository implements chat persistence for MySQL.
type MySQLChatRepository struct {
	db *sql.DB
}

// NewMySQLChatRepository creates a new MySQL chat repository.
func NewMySQLChatRepository(db *sql.DB) *MySQLChatRepository {
	return &MySQLChatRepository{db: db}
}

// Create inserts a new chat.
func (m *MySQLChatRepository) Create(ctx context.Context, chat *chatDomain.Chat) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO chats (id, title, created_at, updated_at)
			  VALUES (?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		chat.ID,
		chat.StoredTitle,
		chat.CreatedAt,
		chat.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return chatDomain.ErrChatAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create chat")
	}
	return nil
}

// GetByID retrieves a chat by its identifier.
func (m *MySQLChatRepository) GetByID(
	ctx context.Context,
	chatID string,
) (*chatDomain.Chat, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, title, created_at, updated_at
			  FROM chats
			  WHERE id = ?`

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
func (m *MySQLChatRepository) List(
	ctx context.Context,
	limit, offset int,
) ([]*chatDomain.Chat, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, title, created_at, updated_at
			  FROM chats
			  ORDER BY updated_at DESC
			  LIMIT ? OFFSET ?`

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
func (m *MySQLChatRepository) UpdateTitle(ctx context.Context, chat *chatDomain.Chat) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE chats
			  SET title = ?,
			      updated_at = ?
			  WHERE id = ?`

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
func (m *MySQLChatRepository) Touch(ctx context.Context, chatID string, updatedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	_, err := querier.ExecContext(
		ctx,
		`UPDATE chats SET updated_at = ? WHERE id = ?`,
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
func (m *MySQLChatRepository) Delete(ctx context.Context, chatID string) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, chatID)
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
