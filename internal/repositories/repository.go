package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrStateNotFound is returned by StateStore.Load when the key is absent or expired
var ErrStateNotFound = errors.New("state not found")

// StateStore defines the interface for persisted game state. Payloads are
// opaque to the store.
type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	// Save stores payload under key. A zero ttl means no expiry.
	Save(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
