// Package integration provides end-to-end tests for the chat API. Tests all
// endpoints against both PostgreSQL and MySQL databases, verifying that
// content is encrypted at rest and transparently decrypted on the way out.
package integration

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomchat/chatvault/internal/app"
	chatDTO "github.com/loomchat/chatvault/internal/chat/http/dto"
	"github.com/loomchat/chatvault/internal/config"
	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
	"github.com/loomchat/chatvault/internal/testutil"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	rootToken string
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	useAuth bool,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if useAuth {
		req.Header.Set("Authorization", "Bearer "+ctx.rootToken)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// generateEncryptionKey creates a fresh 64-hex-char key encryption key.
func generateEncryptionKey() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(fmt.Sprintf("failed to generate encryption key: %v", err))
	}
	return hex.EncodeToString(key)
}

// setupIntegrationTest initializes all components for integration testing.
// Callers must skip-guard on database availability before calling.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
		testutil.CleanupPostgresDB(t, db)
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
		testutil.CleanupMySQLDB(t, db)
	}

	cfg := &config.Config{
		ServerHost:           "localhost",
		ServerPort:           8080,
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		LogLevel:             "error",
		EncryptionKey:        generateEncryptionKey(),
		EncryptionAlgorithm:  string(cryptoDomain.AESGCM),
		AuthEnabled:          true,
	}

	container := app.NewContainer(cfg)

	clientUseCase, err := container.ClientUseCase()
	require.NoError(t, err, "failed to get client use case")

	rootClient, err := clientUseCase.CreateClient(context.Background(), "integration-test-client")
	require.NoError(t, err, "failed to create root client")

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	testServer := httptest.NewServer(httpSrv.GetHandler())

	t.Logf("Integration test setup complete for %s (client_id=%s)", dbDriver, rootClient.ID)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		rootToken: rootClient.PlainToken,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

// queryStoredTitle reads the title column exactly as persisted.
func (ctx *integrationTestContext) queryStoredTitle(t *testing.T, chatID string) *string {
	t.Helper()

	var title sql.NullString
	query := "SELECT title FROM chats WHERE id = $1"
	if ctx.dbDriver == "mysql" {
		query = "SELECT title FROM chats WHERE id = ?"
	}
	err := ctx.db.QueryRow(query, chatID).Scan(&title)
	require.NoError(t, err, "failed to query stored title")

	if !title.Valid {
		return nil
	}
	return &title.String
}

// queryStoredContents reads message content columns exactly as persisted, in
// chronological order.
func (ctx *integrationTestContext) queryStoredContents(t *testing.T, chatID string) []string {
	t.Helper()

	query := "SELECT content FROM messages WHERE chat_id = $1 ORDER BY created_at"
	if ctx.dbDriver == "mysql" {
		query = "SELECT content FROM messages WHERE chat_id = ? ORDER BY created_at"
	}
	rows, err := ctx.db.Query(query, chatID)
	require.NoError(t, err, "failed to query stored contents")
	defer func() {
		require.NoError(t, rows.Close())
	}()

	var contents []string
	for rows.Next() {
		var content string
		require.NoError(t, rows.Scan(&content))
		contents = append(contents, content)
	}
	require.NoError(t, rows.Err())

	return contents
}

// hasChatKey reports whether a wrapped key row exists for the chat.
func (ctx *integrationTestContext) hasChatKey(t *testing.T, chatID string) bool {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM chat_keys WHERE chat_id = $1"
	if ctx.dbDriver == "mysql" {
		query = "SELECT COUNT(*) FROM chat_keys WHERE chat_id = ?"
	}
	err := ctx.db.QueryRow(query, chatID).Scan(&count)
	require.NoError(t, err, "failed to query chat_keys")

	return count > 0
}

// insertLegacyMessage writes a plaintext message row directly, simulating data
// persisted before encryption was introduced.
func (ctx *integrationTestContext) insertLegacyMessage(t *testing.T, chatID, role, content string, createdAt time.Time) {
	t.Helper()

	id := uuid.Must(uuid.NewV7())
	if ctx.dbDriver == "mysql" {
		_, err := ctx.db.Exec(
			"INSERT INTO messages (id, chat_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
			id[:], chatID, role, content, createdAt,
		)
		require.NoError(t, err, "failed to insert legacy message")
		return
	}

	_, err := ctx.db.Exec(
		"INSERT INTO messages (id, chat_id, role, content, created_at) VALUES ($1, $2, $3, $4, $5)",
		id.String(), chatID, role, content, createdAt,
	)
	require.NoError(t, err, "failed to insert legacy message")
}

// insertLegacyChat writes a chat row with a plaintext title directly.
func (ctx *integrationTestContext) insertLegacyChat(t *testing.T, chatID, title string) {
	t.Helper()

	now := time.Now().UTC()
	query := "INSERT INTO chats (id, title, created_at, updated_at) VALUES ($1, $2, $3, $4)"
	if ctx.dbDriver == "mysql" {
		query = "INSERT INTO chats (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)"
	}
	_, err := ctx.db.Exec(query, chatID, title, now, now)
	require.NoError(t, err, "failed to insert legacy chat")
}

func TestAPIIntegration_PostgreSQL(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	ctx := setupIntegrationTest(t, "postgres")
	defer teardownIntegrationTest(t, ctx)

	runAPISuite(t, ctx)
}

func TestAPIIntegration_MySQL(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	ctx := setupIntegrationTest(t, "mysql")
	defer teardownIntegrationTest(t, ctx)

	runAPISuite(t, ctx)
}

// runAPISuite exercises the full API surface against a live database.
func runAPISuite(t *testing.T, ctx *integrationTestContext) {
	t.Run("Authentication", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/chats", nil, false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		req, err := http.NewRequest(http.MethodGet, ctx.server.URL+"/v1/chats", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer not-a-valid-token")
		httpClient := &http.Client{Timeout: 10 * time.Second}
		badResp, err := httpClient.Do(req)
		require.NoError(t, err)
		require.NoError(t, badResp.Body.Close())
		assert.Equal(t, http.StatusUnauthorized, badResp.StatusCode)

		healthResp, _ := ctx.makeRequest(t, http.MethodGet, "/health", nil, false)
		assert.Equal(t, http.StatusOK, healthResp.StatusCode)
	})

	t.Run("ChatLifecycle", func(t *testing.T) {
		chatID := "chat-lifecycle-" + ctx.dbDriver
		title := "Quarterly planning notes"

		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/chats", chatDTO.CreateChatRequest{
			ID:    chatID,
			Title: &title,
		}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)

		var created chatDTO.ChatResponse
		require.NoError(t, json.Unmarshal(body, &created))
		assert.Equal(t, chatID, created.ID)
		require.NotNil(t, created.Title)
		assert.Equal(t, title, *created.Title)

		// The title must be encrypted at rest and a wrapped key must exist.
		stored := ctx.queryStoredTitle(t, chatID)
		require.NotNil(t, stored)
		assert.True(t, strings.HasPrefix(*stored, "enc:"), "stored title should be encrypted, got %q", *stored)
		assert.NotContains(t, *stored, title)
		assert.True(t, ctx.hasChatKey(t, chatID))

		// Reading back decrypts transparently.
		resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/chats/"+chatID, nil, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var fetched chatDTO.ChatResponse
		require.NoError(t, json.Unmarshal(body, &fetched))
		require.NotNil(t, fetched.Title)
		assert.Equal(t, title, *fetched.Title)

		// Duplicate creation conflicts.
		resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/chats", chatDTO.CreateChatRequest{ID: chatID}, true)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("UntitledChatDefersKeyCreation", func(t *testing.T) {
		chatID := "chat-untitled-" + ctx.dbDriver

		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/chats", chatDTO.CreateChatRequest{ID: chatID}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)

		var created chatDTO.ChatResponse
		require.NoError(t, json.Unmarshal(body, &created))
		assert.Nil(t, created.Title)

		// No plaintext to protect yet, so no wrapped key either.
		assert.Nil(t, ctx.queryStoredTitle(t, chatID))
		assert.False(t, ctx.hasChatKey(t, chatID))

		// First message triggers key creation.
		resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/chats/"+chatID+"/messages", chatDTO.AppendMessageRequest{
			Role:    "user",
			Content: "hello",
		}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.True(t, ctx.hasChatKey(t, chatID))
	})

	t.Run("MessageRoundTrip", func(t *testing.T) {
		chatID := "chat-messages-" + ctx.dbDriver

		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/chats", chatDTO.CreateChatRequest{ID: chatID}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		structuredContent := map[string]any{
			"type": "tool_use",
			"name": "search",
			"input": map[string]any{
				"query": "envelope encryption",
			},
		}

		resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/chats/"+chatID+"/messages", chatDTO.AppendMessageRequest{
			Role:    "user",
			Content: "What is envelope encryption?",
		}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)

		resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/chats/"+chatID+"/messages", chatDTO.AppendMessageRequest{
			Role:    "assistant",
			Content: structuredContent,
		}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)

		var appended chatDTO.MessageResponse
		require.NoError(t, json.Unmarshal(body, &appended))
		assert.NotEmpty(t, appended.ID)
		assert.Equal(t, "assistant", appended.Role)

		// Every stored content is an opaque envelope.
		for _, stored := range ctx.queryStoredContents(t, chatID) {
			assert.True(t, strings.HasPrefix(stored, "enc:"), "stored content should be encrypted, got %q", stored)
			assert.NotContains(t, stored, "envelope encryption")
		}

		// Listing decrypts in chronological order.
		resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/chats/"+chatID+"/messages", nil, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page chatDTO.MessageListResponse
		require.NoError(t, json.Unmarshal(body, &page))
		require.Len(t, page.Messages, 2)
		assert.Equal(t, "What is envelope encryption?", page.Messages[0].Content)
		assert.Equal(t, "user", page.Messages[0].Role)

		decrypted, ok := page.Messages[1].Content.(map[string]any)
		require.True(t, ok, "structured content should decrypt to a map")
		assert.Equal(t, "tool_use", decrypted["type"])
		assert.Equal(t, "search", decrypted["name"])
	})

	t.Run("LegacyPlaintextPassthrough", func(t *testing.T) {
		chatID := "chat-legacy-" + ctx.dbDriver
		legacyTitle := "Pre-encryption chat"
		legacyContent := "stored before encryption existed"

		ctx.insertLegacyChat(t, chatID, legacyTitle)
		ctx.insertLegacyMessage(t, chatID, "user", legacyContent, time.Now().UTC().Add(-time.Hour))

		// Legacy rows read back verbatim without requiring a chat key.
		resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/chats/"+chatID, nil, true)
		require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

		var fetched chatDTO.ChatResponse
		require.NoError(t, json.Unmarshal(body, &fetched))
		require.NotNil(t, fetched.Title)
		assert.Equal(t, legacyTitle, *fetched.Title)

		resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/chats/"+chatID+"/messages", nil, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page chatDTO.MessageListResponse
		require.NoError(t, json.Unmarshal(body, &page))
		require.Len(t, page.Messages, 1)
		assert.Equal(t, legacyContent, page.Messages[0].Content)

		// New writes to a legacy chat are encrypted; old rows stay untouched.
		resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/chats/"+chatID+"/messages", chatDTO.AppendMessageRequest{
			Role:    "assistant",
			Content: "a new encrypted reply",
		}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		contents := ctx.queryStoredContents(t, chatID)
		require.Len(t, contents, 2)
		assert.Equal(t, legacyContent, contents[0])
		assert.True(t, strings.HasPrefix(contents[1], "enc:"))
	})

	t.Run("UpdateAndClearTitle", func(t *testing.T) {
		chatID := "chat-title-" + ctx.dbDriver
		initialTitle := "Initial title"
		newTitle := "Renamed conversation"

		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/chats", chatDTO.CreateChatRequest{
			ID:    chatID,
			Title: &initialTitle,
		}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/chats/"+chatID+"/title", chatDTO.UpdateChatTitleRequest{
			Title: &newTitle,
		}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

		var updated chatDTO.ChatResponse
		require.NoError(t, json.Unmarshal(body, &updated))
		require.NotNil(t, updated.Title)
		assert.Equal(t, newTitle, *updated.Title)

		stored := ctx.queryStoredTitle(t, chatID)
		require.NotNil(t, stored)
		assert.True(t, strings.HasPrefix(*stored, "enc:"))

		// Null clears the title.
		resp, body = ctx.makeRequest(t, http.MethodPut, "/v1/chats/"+chatID+"/title", chatDTO.UpdateChatTitleRequest{}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

		var cleared chatDTO.ChatResponse
		require.NoError(t, json.Unmarshal(body, &cleared))
		assert.Nil(t, cleared.Title)
		assert.Nil(t, ctx.queryStoredTitle(t, chatID))
	})

	t.Run("ListChats", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/chats?limit=2&offset=0", nil, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page chatDTO.ChatListResponse
		require.NoError(t, json.Unmarshal(body, &page))
		assert.Equal(t, 2, page.Limit)
		assert.Equal(t, 0, page.Offset)
		assert.LessOrEqual(t, len(page.Chats), 2)
		assert.NotEmpty(t, page.Chats)
	})

	t.Run("DeleteChatCascades", func(t *testing.T) {
		chatID := "chat-delete-" + ctx.dbDriver

		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/chats", chatDTO.CreateChatRequest{ID: chatID}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/chats/"+chatID+"/messages", chatDTO.AppendMessageRequest{
			Role:    "user",
			Content: "soon to be deleted",
		}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/chats/"+chatID, nil, true)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/chats/"+chatID, nil, true)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		assert.Empty(t, ctx.queryStoredContents(t, chatID))
	})

	t.Run("Validation", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/chats", chatDTO.CreateChatRequest{
			ID: "has spaces in it",
		}, true)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		chatID := "chat-validation-" + ctx.dbDriver
		resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/chats", chatDTO.CreateChatRequest{ID: chatID}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/chats/"+chatID+"/messages", chatDTO.AppendMessageRequest{
			Role:    "robot",
			Content: "invalid role",
		}, true)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}
