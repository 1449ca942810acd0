package services

import (
	cryptoRand "crypto/rand"
	"math/big"
	"math/rand"
	"sync"
)

// RandomSource picks an integer in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// cryptoSource is the default: safe for concurrent use and not seedable.
type cryptoSource struct {
	fallbackMu sync.Mutex
	fallback   *rand.Rand
}

func (s *cryptoSource) Intn(n int) int {
	v, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(n)))
	if err != nil {
		s.fallbackMu.Lock()
		defer s.fallbackMu.Unlock()
		return s.fallback.Intn(n)
	}
	return int(v.Int64())
}

// DefaultRandomSource returns a crypto-backed source.
func DefaultRandomSource() RandomSource {
	return &cryptoSource{fallback: rand.New(rand.NewSource(rand.Int63()))}
}

// lockedSource guards a *rand.Rand, which is not safe for concurrent use.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// NewSeededSource returns a reproducible source, safe for concurrent use.
// Sequences are only reproducible when calls are not interleaved.
func NewSeededSource(seed int64) RandomSource {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}
