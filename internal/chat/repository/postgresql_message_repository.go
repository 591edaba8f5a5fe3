package repository

import (
	"context"
	"database/sql"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
	"github.com/loomchat/chatvault/internal/database"
	apperrors "github.com/loomchat/chatvault/internal/errors"
)

// PostgreSQLMessageRepository implements message persistence for PostgreSQL.
type PostgreSQLMessageRepository struct {
	db *sql.DB
}

// NewPostgreSQLMessageRepository creates a new PostgreSQL message repository.
func NewPostgreSQLMessageRepository(db *sql.DB) *PostgreSQLMessageRepository {
	return &PostgreSQLMessageRepository{db: db}
}

// Create inserts a new message.
func (p *PostgreSQLMessageRepository) Create(ctx context.Context, message *chatDomain.Message) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO messages (id, chat_id, role, content, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		message.ID,
		message.ChatID,
		message.Role,
		message.StoredContent,
		message.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create message")
	}
	return nil
}

// ListByChatID retrieves a chat's messages in chronological order.
func (p *PostgreSQLMessageRepository) ListByChatID(
	ctx context.Context,
	chatID string,
	limit, offset int,
) ([]*chatDomain.Message, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, chat_id, role, content, created_at
			  FROM messages
			  WHERE chat_id = $1
			  ORDER BY created_at ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, chatID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() { _ = rows.Close() }()

	var messages []*chatDomain.Message
	for rows.Next() {
		var message chatDomain.Message
		err := rows.Scan(
			&message.ID,
			&message.ChatID,
			&message.Role,
			&message.StoredContent,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message")
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate messages")
	}

	return messages, nil
}
