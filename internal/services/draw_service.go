package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/bingo-caller/internal/logger"
	"github.com/ArowuTest/bingo-caller/internal/models"
	"github.com/ArowuTest/bingo-caller/internal/repositories"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// Session locates one game's state: the store it lives in and its key.
type Session struct {
	Store repositories.StateStore
	Key   string
	TTL   time.Duration // zero means the state never expires
}

// DrawService defines the game operations exposed to handlers
type DrawService interface {
	// GetGame returns the current game without changing it
	GetGame(ctx context.Context, session Session) (*models.GameSnapshot, error)

	// Draw calls the next number and persists the game
	Draw(ctx context.Context, session Session) (*models.DrawResult, error)

	// Reset clears the game and persists the empty state
	Reset(ctx context.Context, session Session) (*models.GameSnapshot, error)
}

// DrawServiceOptions holds presentation settings passed through to results
type DrawServiceOptions struct {
	ShuffleFrames     int
	ShuffleIntervalMs int
}

// DrawServiceImpl loads a DrawController per call, applies the operation and
// saves the result back to the session's store.
type DrawServiceImpl struct {
	// one load-mutate-save sequence at a time per session key
	locks keyLock
	rng   RandomSource
	opts  DrawServiceOptions
}

// NewDrawService creates a new DrawServiceImpl. A nil rng selects
// DefaultRandomSource. rng is shared by all sessions and must be safe for
// concurrent use.
func NewDrawService(rng RandomSource, opts DrawServiceOptions) *DrawServiceImpl {
	if rng == nil {
		rng = DefaultRandomSource()
	}
	return &DrawServiceImpl{rng: rng, opts: opts}
}

// GetGame returns the session's game
func (s *DrawServiceImpl) GetGame(ctx context.Context, session Session) (*models.GameSnapshot, error) {
	defer s.locks.Lock(session.Key)()

	controller, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	return controller.Snapshot(), nil
}

// Draw draws one number. ErrExhausted leaves the stored game untouched.
func (s *DrawServiceImpl) Draw(ctx context.Context, session Session) (*models.DrawResult, error) {
	defer s.locks.Lock(session.Key)()

	controller, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	number, err := controller.Draw()
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, session, controller); err != nil {
		return nil, err
	}

	letter, _ := Label(number)
	logger.Log.Debug().Str("key", session.Key).Int("number", number).Int("count", controller.Count()).Msg("Number drawn")

	return &models.DrawResult{
		Number:            number,
		Letter:            letter,
		StatusText:        StatusText(number),
		ShuffleFrames:     s.shuffleFrames(),
		ShuffleIntervalMs: s.opts.ShuffleIntervalMs,
		Game:              controller.Snapshot(),
	}, nil
}

// Reset clears the session's game
func (s *DrawServiceImpl) Reset(ctx context.Context, session Session) (*models.GameSnapshot, error) {
	defer s.locks.Lock(session.Key)()

	controller := NewDrawController(s.rng)
	if err := controller.Init(nil); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session, controller); err != nil {
		return nil, err
	}

	logger.Log.Debug().Str("key", session.Key).Msg("Game reset")
	return controller.Snapshot(), nil
}

// load restores the session's controller. Absent or corrupt state is a cold
// start; store failures are returned.
func (s *DrawServiceImpl) load(ctx context.Context, session Session) (*DrawController, error) {
	controller := NewDrawController(s.rng)

	payload, err := session.Store.Load(ctx, session.Key)
	if err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return controller, controller.Init(nil)
		}
		logger.Log.Error().Err(err).Str("key", session.Key).Msg("Failed to load game state")
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}

	if err := controller.Init(payload); err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return nil, err
		}
		logger.Log.Warn().Err(err).Str("key", session.Key).Msg("Discarding corrupt game state")
	}
	return controller, nil
}

func (s *DrawServiceImpl) save(ctx context.Context, session Session, controller *DrawController) error {
	if err := session.Store.Save(ctx, session.Key, controller.Serialize(), session.TTL); err != nil {
		logger.Log.Error().Err(err).Str("key", session.Key).Msg("Failed to save game state")
		return fmt.Errorf("failed to save game state: %w", err)
	}
	return nil
}

// shuffleFrames returns the throwaway numbers the page flashes before
// revealing a draw. They may repeat drawn numbers.
func (s *DrawServiceImpl) shuffleFrames() []int {
	frames := make([]int, s.opts.ShuffleFrames)
	for i := range frames {
		frames[i] = s.rng.Intn(models.MaxNumber) + 1
	}
	return frames
}
