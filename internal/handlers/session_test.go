package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/bingo-caller/internal/config"
	"github.com/ArowuTest/bingo-caller/internal/models"
	"github.com/ArowuTest/bingo-caller/internal/repositories/memory"
)

func persistenceConfig(backend string) config.PersistenceConfig {
	return config.PersistenceConfig{
		Enabled:           true,
		Backend:           backend,
		CookieName:        "bingoState",
		SessionCookieName: "bingoSession",
		TTL:               7 * 24 * time.Hour,
		IdleTimeout:       2 * time.Hour,
		Path:              "/",
	}
}

func testContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		c.Request.AddCookie(ck)
	}
	return c, w
}

func TestResolveCookieBackend(t *testing.T) {
	c, _ := testContext()
	session := NewSessionResolver(persistenceConfig(config.BackendCookie), nil).Resolve(c)

	assert.Equal(t, "bingoState", session.Key)
	assert.Equal(t, 7*24*time.Hour, session.TTL)
	require.NotNil(t, session.Store)
}

func TestResolveReusesValidSessionID(t *testing.T) {
	id := uuid.NewString()
	c, w := testContext(&http.Cookie{Name: "bingoSession", Value: id})
	store := memory.NewStateRepository()

	session := NewSessionResolver(persistenceConfig(config.BackendMongo), store).Resolve(c)
	assert.Equal(t, "bingoState:"+id, session.Key)
	assert.Same(t, store, session.Store)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "bingoSession="+id)
}

func TestResolveReplacesInvalidSessionID(t *testing.T) {
	c, _ := testContext(&http.Cookie{Name: "bingoSession", Value: "not-a-uuid"})

	session := NewSessionResolver(persistenceConfig(config.BackendMemory), memory.NewStateRepository()).Resolve(c)
	id := strings.TrimPrefix(session.Key, "bingoState:")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestResolvePersistenceDisabled(t *testing.T) {
	cfg := persistenceConfig(config.BackendCookie)
	cfg.Enabled = false
	c, w := testContext()

	session := NewSessionResolver(cfg, memory.NewStateRepository()).Resolve(c)
	assert.True(t, strings.HasPrefix(session.Key, "bingoState:"))
	assert.Equal(t, 2*time.Hour, session.TTL)

	setCookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, "bingoSession=")
	assert.NotContains(t, setCookie, "Max-Age")
}

func TestBuildBoard(t *testing.T) {
	board := BuildBoard([]int{1, 30, 75})
	require.Len(t, board, 5)

	for i, col := range board {
		assert.Equal(t, models.Letters[i], col.Letter)
		require.Len(t, col.Cells, 15)
		assert.Equal(t, i*15+1, col.Cells[0].Number)
		assert.Equal(t, i*15+15, col.Cells[14].Number)
	}
	assert.True(t, board[0].Cells[0].Active)
	assert.True(t, board[1].Cells[14].Active)
	assert.True(t, board[4].Cells[14].Active)
	assert.False(t, board[2].Cells[0].Active)
}
