package cookie

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ArowuTest/bingo-caller/internal/repositories"
	"github.com/gin-gonic/gin"
)

// Options controls the attributes of written cookies
type Options struct {
	Path   string
	Domain string
	Secure bool
}

// StateRepository implements repositories.StateStore on top of the cookies of
// a single request. Keys are cookie names. Values written during the request
// are visible to later loads in the same request.
type StateRepository struct {
	c       *gin.Context
	opts    Options
	written map[string][]byte // nil value means deleted
}

// NewStateRepository binds a StateRepository to one request
func NewStateRepository(c *gin.Context, opts Options) *StateRepository {
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &StateRepository{
		c:       c,
		opts:    opts,
		written: make(map[string][]byte),
	}
}

// Load reads the cookie named key
func (r *StateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	if payload, ok := r.written[key]; ok {
		if payload == nil {
			return nil, repositories.ErrStateNotFound
		}
		return payload, nil
	}

	// gin unescapes the value
	value, err := r.c.Cookie(key)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, repositories.ErrStateNotFound
		}
		return nil, err
	}
	if value == "" {
		return nil, repositories.ErrStateNotFound
	}
	return []byte(value), nil
}

// Save sets the cookie named key. A zero ttl writes a browser-session cookie.
func (r *StateRepository) Save(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	r.c.SetSameSite(http.SameSiteLaxMode)
	r.c.SetCookie(key, string(payload), int(ttl/time.Second), r.opts.Path, r.opts.Domain, r.opts.Secure, true)

	stored := make([]byte, len(payload))
	copy(stored, payload)
	r.written[key] = stored
	return nil
}

// Delete expires the cookie named key
func (r *StateRepository) Delete(ctx context.Context, key string) error {
	r.c.SetSameSite(http.SameSiteLaxMode)
	r.c.SetCookie(key, "", -1, r.opts.Path, r.opts.Domain, r.opts.Secure, true)
	r.written[key] = nil
	return nil
}
