package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
	apperrors "github.com/loomchat/chatvault/internal/errors"
	"github.com/loomchat/chatvault/internal/testutil"
)

func newTestChatKey(chatID string) *cryptoDomain.ChatKey {
	return &cryptoDomain.ChatKey{
		ChatID:       chatID,
		Algorithm:    cryptoDomain.AESGCM,
		EncryptedDek: []byte("envelope-bytes-for-testing-only-0123456789"),
		CreatedAt:    time.Now().UTC(),
	}
}

func TestPostgreSQLChatKeyRepository_Create(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLChatKeyRepository(db)
	ctx := context.Background()

	chatKey := newTestChatKey("chat-1")
	err := repo.Create(ctx, chatKey)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, "chat-1")
	require.NoError(t, err)

	assert.Equal(t, chatKey.ChatID, retrieved.ChatID)
	assert.Equal(t, chatKey.Algorithm, retrieved.Algorithm)
	assert.Equal(t, chatKey.EncryptedDek, retrieved.EncryptedDek)
	assert.WithinDuration(t, chatKey.CreatedAt, retrieved.CreatedAt, time.Second)
}

func TestPostgreSQLChatKeyRepository_Create_Conflict(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLChatKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestChatKey("chat-1")))

	// Second insert for the same chat loses to the primary key.
	err := repo.Create(ctx, newTestChatKey("chat-1"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestPostgreSQLChatKeyRepository_Get_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLChatKeyRepository(db)

	_, err := repo.Get(context.Background(), "never-encrypted")
	assert.ErrorIs(t, err, cryptoDomain.ErrChatKeyNotFound)
}

func TestPostgreSQLChatKeyRepository_AlgorithmRoundTrip(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLChatKeyRepository(db)
	ctx := context.Background()

	chatKey := newTestChatKey("chat-chacha")
	chatKey.Algorithm = cryptoDomain.ChaCha20
	require.NoError(t, repo.Create(ctx, chatKey))

	retrieved, err := repo.Get(ctx, "chat-chacha")
	require.NoError(t, err)
	assert.Equal(t, cryptoDomain.ChaCha20, retrieved.Algorithm)
}
