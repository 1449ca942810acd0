package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ArowuTest/bingo-caller/internal/repositories"
)

// DefaultSweepInterval is how often Save scans for expired entries.
const DefaultSweepInterval = time.Minute

type entry struct {
	payload   []byte
	ttl       time.Duration
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// StateRepository implements repositories.StateStore in process memory.
// Entries saved with a TTL expire after that long without a Load or Save.
type StateRepository struct {
	mu            sync.Mutex
	entries       map[string]entry
	now           func() time.Time
	sweepInterval time.Duration
	lastSweep     time.Time
}

// NewStateRepository creates an empty StateRepository
func NewStateRepository() *StateRepository {
	return &StateRepository{
		entries:       make(map[string]entry),
		now:           time.Now,
		sweepInterval: DefaultSweepInterval,
	}
}

// Load returns the payload stored under key and extends its expiry
func (r *StateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.entries[key]
	if !ok {
		return nil, repositories.ErrStateNotFound
	}
	if e.expired(now) {
		delete(r.entries, key)
		return nil, repositories.ErrStateNotFound
	}
	if e.ttl > 0 {
		e.expiresAt = now.Add(e.ttl)
		r.entries[key] = e
	}

	out := make([]byte, len(e.payload))
	copy(out, e.payload)
	return out, nil
}

// Save stores a copy of payload under key
func (r *StateRepository) Save(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	e := entry{payload: make([]byte, len(payload))}
	copy(e.payload, payload)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if ttl > 0 {
		e.ttl = ttl
		e.expiresAt = now.Add(ttl)
	}
	r.entries[key] = e
	r.sweepLocked(now)
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (r *StateRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

// Len returns the number of entries held, expired ones included until swept.
func (r *StateRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// sweepLocked drops expired entries at most once per sweepInterval.
// r.mu must be held.
func (r *StateRepository) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.sweepInterval {
		return
	}
	r.lastSweep = now
	for key, e := range r.entries {
		if e.expired(now) {
			delete(r.entries, key)
		}
	}
}
