// Package repository implements chat key persistence for PostgreSQL and MySQL.
//
// The chat_keys table carries a primary key on chat_id: the schema, not
// application logic, guarantees that at most one DEK ever becomes canonical
// for a chat. Concurrent creators race on the insert and the loser receives
// ErrConflict, which the use case answers by re-reading the winner's row.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
	"github.com/loomchat/chatvault/internal/database"
	apperrors "github.com/loomchat/chatvault/internal/errors"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgreSQLChatKeyRepository implements chat key persistence for PostgreSQL.
type PostgreSQLChatKeyRepository struct {
	db *sql.DB
}

// NewPostgreSQLChatKeyRepository creates a new PostgreSQL chat key repository.
func NewPostgreSQLChatKeyRepository(db *sql.DB) *PostgreSQLChatKeyRepository {
	return &PostgreSQLChatKeyRepository{db: db}
}

// Create inserts a new chat key record. Returns ErrConflict when a record for
// the chat already exists, which callers treat as an expected concurrent
// creation outcome rather than a failure.
func (p *PostgreSQLChatKeyRepository) Create(ctx context.Context, chatKey *cryptoDomain.ChatKey) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO chat_keys (chat_id, algorithm, encrypted_dek, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		chatKey.ChatID,
		chatKey.Algorithm,
		chatKey.EncryptedDek,
		chatKey.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return apperrors.Wrap(apperrors.ErrConflict, "chat key already exists")
		}
		return apperrors.Wrap(err, "failed to create chat key")
	}
	return nil
}

// Get retrieves the chat key record for a chat.
// Returns ErrChatKeyNotFound when the chat was never encrypted.
func (p *PostgreSQLChatKeyRepository) Get(
	ctx context.Context,
	chatID string,
) (*cryptoDomain.ChatKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT chat_id, algorithm, encrypted_dek, created_at
			  FROM chat_keys
			  WHERE chat_id = $1`

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
