package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/chats"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := newPaginationContext(t, "")

		offset, limit, err := ParsePagination(c)
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 50, limit)
	})

	t.Run("explicit values", func(t *testing.T) {
		c := newPaginationContext(t, "?offset=20&limit=10")

		offset, limit, err := ParsePagination(c)
		require.NoError(t, err)
		assert.Equal(t, 20, offset)
		assert.Equal(t, 10, limit)
	})

	t.Run("limit at the cap", func(t *testing.T) {
		c := newPaginationContext(t, "?limit=100")

		_, limit, err := ParsePagination(c)
		require.NoError(t, err)
		assert.Equal(t, 100, limit)
	})

	t.Run("negative offset", func(t *testing.T) {
		c := newPaginationContext(t, "?offset=-1")

		_, _, err := ParsePagination(c)
		assert.Error(t, err)
	})

	t.Run("non-numeric offset", func(t *testing.T) {
		c := newPaginationContext(t, "?offset=abc")

		_, _, err := ParsePagination(c)
		assert.Error(t, err)
	})

	t.Run("zero limit", func(t *testing.T) {
		c := newPaginationContext(t, "?limit=0")

		_, _, err := ParsePagination(c)
		assert.Error(t, err)
	})

	t.Run("limit above the cap", func(t *testing.T) {
		c := newPaginationContext(t, "?limit=101")

		_, _, err := ParsePagination(c)
		assert.Error(t, err)
	})
}
