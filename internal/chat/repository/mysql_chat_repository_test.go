package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatDomain "github.com/loomchat/chatvault/internal/chat/domain"
	"github.com/loomchat/chatvault/internal/testutil"
)

func TestMySQLChatRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLChatRepository(db)
	ctx := context.Background()

	stored := "enc:c29tZS1lbnZlbG9wZQ=="
	chat := newTestChat("chat-1")
	chat.StoredTitle = &stored
	require.NoError(t, repo.Create(ctx, chat))

	retrieved, err := repo.GetByID(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, chat.ID, retrieved.ID)
	require.NotNil(t, retrieved.StoredTitle)
	assert.Equal(t, stored, *retrieved.StoredTitle)
	assert.WithinDuration(t, chat.CreatedAt, retrieved.CreatedAt, time.Second)

	t.Run("duplicate identifier", func(t *testing.T) {
		err := repo.Create(ctx, newTestChat("chat-1"))
		assert.ErrorIs(t, err, chatDomain.ErrChatAlreadyExists)
	})

	t.Run("missing chat", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, chatDomain.ErrChatNotFound)
	})
}

func TestMySQLChatRepository_ListAndUpdate(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLChatRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"chat-old", "chat-new"} {
		chat := newTestChat(id)
		chat.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		chat.UpdatedAt = chat.CreatedAt
		require.NoError(t, repo.Create(ctx, chat))
	}

	t.Run("orders by most recently updated", func(t *testing.T) {
		chats, err := repo.List(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, chats, 2)
		assert.Equal(t, "chat-new", chats[0].ID)
	})

	t.Run("update title and reorder via touch", func(t *testing.T) {
		chat, err := repo.GetByID(ctx, "chat-old")
		require.NoError(t, err)

		stored := "enc:bmV3LXRpdGxl"
		chat.StoredTitle = &stored
		chat.UpdatedAt = time.Now().UTC()
		require.NoError(t, repo.UpdateTitle(ctx, chat))

		chats, err := repo.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, "chat-old", chats[0].ID)
		require.NotNil(t, chats[0].StoredTitle)
		assert.Equal(t, stored, *chats[0].StoredTitle)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "chat-old"))

		_, err := repo.GetByID(ctx, "chat-old")
		assert.ErrorIs(t, err, chatDomain.ErrChatNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, "chat-old"), chatDomain.ErrChatNotFound)
	})
}

func TestMySQLMessageRepository_CreateAndList(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLMessageRepository(db)
	ctx := context.Background()

	testutil.CreateTestChat(t, db, "mysql", "chat-1")

	base := time.Now().UTC().Add(-time.Hour)
	roles := []chatDomain.Role{chatDomain.RoleUser, chatDomain.RoleAssistant}
	for i, role := range roles {
		message := newTestMessage("chat-1")
		message.Role = role
		message.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, message))
	}

	messages, err := repo.ListByChatID(ctx, "chat-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, chatDomain.RoleUser, messages[0].Role)
	assert.Equal(t, chatDomain.RoleAssistant, messages[1].Role)
	assert.NotEqual(t, messages[0].ID, messages[1].ID)

	t.Run("unknown chat yields an empty page", func(t *testing.T) {
		empty, err := repo.ListByChatID(ctx, "missing", 10, 0)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}
