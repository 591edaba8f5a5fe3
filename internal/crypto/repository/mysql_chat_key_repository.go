package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
	"github.com/loomchat/chatvault/internal/database"
	apperrors "github.com/loomchat/chatvault/internal/errors"
)

// mysqlDuplicateEntry is the MySQL error number for duplicate key violations.
const mysqlDuplicateEntry = 1062

// MySQLChatKeyRepository implements chat key persistence for MySQL.
type MySQLChatKeyRepository struct {
	db *sql.DB
}

// NewMySQLChatKeyRepository creates a new MySQL chat key repository.
func NewMySQLChatKeyRepository(db *sql.DB) *MySQLChatKeyRepository {
	return &MySQLChatKeyRepository{db: db}
}

// Create inserts a new chat key record. Returns ErrConflict when a record for
// the chat already exists.
func (m *MySQLChatKeyRepository) Create(ctx context.Context, chatKey *cryptoDomain.ChatKey) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO chat_keys (chat_id, algorithm, encrypted_dek, created_at)
			  VALUES (?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		chatKey.ChatID,
		chatKey.Algorithm,
		chatKey.EncryptedDek,
		chatKey.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperrors.Wrap(apperrors.ErrConflict, "chat key already exists")
		}
		return apperrors.Wrap(err, "failed to create chat key")
	}
	return nil
}

// Get retrieves the chat key record for a chat.
// Returns ErrChatKeyNotFound when the chat was never encrypted.
func (m *MySQLChatKeyRepository) Get(
	ctx context.Context,
	chatID string,
) (*cryptoDomain.ChatKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT chat_id, algorithm, encrypted_dek, created_at
			  FROM chat_keys
			  WHERE chat_id = ?`

	var chatKey cryptoDomain.ChatKey
	err := querier.QueryRowContext(ctx, query, chatID).Scan(
		&chatKey.ChatID,
		&chatKey.Algorithm,
		&chatKey.EncryptedDek,
		&chatKey.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cryptoDomain.ErrChatKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get chat key")
	}

	return &chatKey, nil
}
