package repository

import (
	"context"
	"database/sql"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
	"github.com/loomchat/chatvault/internal/database"
	apperrors "github.com/loomchat/chatvault/internal/errors"
)

// MySQLMessageRepository implements message persistence for MySQL.
type MySQLMessageRepository struct {
	db *sql.DB
}

// NewMySQLMessageRepository creates a new MySQL message repository.
func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{db: db}
}

// Create inserts a new message.
func (m *MySQLMessageRepository) Create(ctx context.Context, message *chatDomain.Message) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO messages (id, chat_id, role, content, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	messageID, err := message.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal message id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		messageID,
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
func (m *MySQLMessageRepository) ListByChatID(
	ctx context.Context,
	chatID string,
	limit, offset int,
) ([]*chatDomain.Message, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, chat_id, role, content, created_at
			  FROM messages
			  WHERE chat_id = ?
			  ORDER BY created_at ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, chatID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() { _ = rows.Close() }()

	var messages []*chatDomain.Message
	for rows.Next() {
		var message chatDomain.Message
		var messageID []byte
		err := rows.Scan(
			&messageID,
			&message.ChatID,
			&message.Role,
			&message.StoredContent,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message")
		}
		if err := message.ID.UnmarshalBinary(messageID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal message id")
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate messages")
	}

	return messages, nil
}
