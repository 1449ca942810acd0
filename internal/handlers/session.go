package handlers

import (
	"time"

	"github.com/ArowuTest/bingo-caller/internal/config"
	"github.com/ArowuTest/bingo-caller/internal/repositories"
	"github.com/ArowuTest/bingo-caller/internal/repositories/cookie"
	"github.com/ArowuTest/bingo-caller/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionResolver maps a request to the store and key holding its game.
type SessionResolver struct {
	cfg    config.PersistenceConfig
	shared repositories.StateStore // mongo or memory; nil for the cookie backend
}

// NewSessionResolver creates a resolver. shared is required unless the
// effective backend is the cookie one.
func NewSessionResolver(cfg config.PersistenceConfig, shared repositories.StateStore) *SessionResolver {
	return &SessionResolver{cfg: cfg, shared: shared}
}

// Resolve returns the session for the request, issuing a session id cookie
// for server-side backends. With persistence disabled the id cookie lasts for
// the browser session and the stored game expires after IdleTimeout.
func (r *SessionResolver) Resolve(c *gin.Context) services.Session {
	if r.cfg.EffectiveBackend() == config.BackendCookie {
		return services.Session{
			Store: cookie.NewStateRepository(c, cookie.Options{Path: r.cfg.Path, Secure: r.cfg.Secure}),
			Key:   r.cfg.CookieName,
			TTL:   r.cfg.TTL,
		}
	}

	ttl, cookieAge := r.cfg.TTL, r.cfg.TTL
	if !r.cfg.Enabled {
		ttl, cookieAge = r.cfg.IdleTimeout, 0
	}

	sessionID := r.sessionID(c, cookieAge)
	return services.Session{
		Store: r.shared,
		Key:   r.cfg.CookieName + ":" + sessionID,
		TTL:   ttl,
	}
}

func (r *SessionResolver) sessionID(c *gin.Context, maxAge time.Duration) string {
	id, err := c.Cookie(r.cfg.SessionCookieName)
	if err == nil {
		_, err = uuid.Parse(id)
	}
	if err != nil {
		id = uuid.NewString()
	}

	// Refresh on every request so the id outlives the state it points to
	c.SetCookie(r.cfg.SessionCookieName, id, int(maxAge/time.Second), r.cfg.Path, "", r.cfg.Secure, true)
	return id
}
