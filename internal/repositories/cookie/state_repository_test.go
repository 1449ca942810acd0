package cookie

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/bingo-caller/internal/repositories"
)

func newTestContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c.Request = req
	return c, w
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestLoadMissingCookie(t *testing.T) {
	c, _ := newTestContext()
	repo := NewStateRepository(c, Options{})

	_, err := repo.Load(context.Background(), "bingoState")
	assert.ErrorIs(t, err, repositories.ErrStateNotFound)
}

func TestLoadUnescapesValue(t *testing.T) {
	c, _ := newTestContext(&http.Cookie{
		Name:  "bingoState",
		Value: url.QueryEscape(`{"drawnNumbers":[3,40]}`),
	})
	repo := NewStateRepository(c, Options{})

	payload, err := repo.Load(context.Background(), "bingoState")
	require.NoError(t, err)
	assert.Equal(t, `{"drawnNumbers":[3,40]}`, string(payload))
}

func TestSaveWritesSevenDayCookie(t *testing.T) {
	c, w := newTestContext()
	repo := NewStateRepository(c, Options{Path: "/"})

	err := repo.Save(context.Background(), "bingoState", []byte(`{"drawnNumbers":[9]}`), 7*24*time.Hour)
	require.NoError(t, err)

	ck := findCookie(t, w, "bingoState")
	assert.Equal(t, 7*24*60*60, ck.MaxAge)
	assert.Equal(t, "/", ck.Path)
	assert.True(t, ck.HttpOnly)

	value, err := url.QueryUnescape(ck.Value)
	require.NoError(t, err)
	assert.Equal(t, `{"drawnNumbers":[9]}`, value)

	// later loads in the same request see the new value
	payload, err := repo.Load(context.Background(), "bingoState")
	require.NoError(t, err)
	assert.Equal(t, `{"drawnNumbers":[9]}`, string(payload))
}

func TestDeleteExpiresCookie(t *testing.T) {
	c, w := newTestContext(&http.Cookie{Name: "bingoState", Value: url.QueryEscape(`{"drawnNumbers":[1]}`)})
	repo := NewStateRepository(c, Options{})

	require.NoError(t, repo.Delete(context.Background(), "bingoState"))

	ck := findCookie(t, w, "bingoState")
	assert.True(t, ck.MaxAge < 0)

	_, err := repo.Load(context.Background(), "bingoState")
	assert.ErrorIs(t, err, repositories.ErrStateNotFound)
}
