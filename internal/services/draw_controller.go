package services

import (
	"encoding/json"
	"fmt"

	"github.com/ArowuTest/bingo-caller/internal/models"
)

// DrawController owns the drawn-set of one game. It is not safe for
// concurrent use; DrawServiceImpl serializes access.
type DrawController struct {
	// drawn is in draw order; seen[n] is true once n is drawn
	drawn []int
	seen  [models.MaxNumber + 1]bool
	rng   RandomSource
}

// NewDrawController creates an empty controller. A nil rng selects
// DefaultRandomSource.
func NewDrawController(rng RandomSource) *DrawController {
	if rng == nil {
		rng = DefaultRandomSource()
	}
	return &DrawController{rng: rng}
}

// Init sets the controller's state from a persisted payload. A nil payload
// starts an empty game. A corrupt payload also leaves the game empty and the
// ErrCorrupt-wrapped error is returned for the caller to log.
func (c *DrawController) Init(payload []byte) error {
	c.Reset()
	if payload == nil {
		return nil
	}
	numbers, err := Deserialize(payload)
	if err != nil {
		return err
	}
	for _, n := range numbers {
		c.add(n)
	}
	return nil
}

// Draw picks a number uniformly among the ones not yet drawn.
func (c *DrawController) Draw() (int, error) {
	remaining := c.Remaining()
	if remaining == 0 {
		return 0, ErrExhausted
	}

	pick := c.rng.Intn(remaining)
	for n := 1; n <= models.MaxNumber; n++ {
		if c.seen[n] {
			continue
		}
		if pick == 0 {
			c.add(n)
			return n, nil
		}
		pick--
	}
	// unreachable while remaining matches seen
	return 0, ErrExhausted
}

// Reset clears the drawn-set.
func (c *DrawController) Reset() {
	c.drawn = nil
	c.seen = [models.MaxNumber + 1]bool{}
}

// Label maps n to its column letter.
func (c *DrawController) Label(n int) (models.Letter, error) {
	return Label(n)
}

func (c *DrawController) add(n int) {
	c.seen[n] = true
	c.drawn = append(c.drawn, n)
}

// Drawn returns a copy of the drawn numbers in draw order.
func (c *DrawController) Drawn() []int {
	out := make([]int, len(c.drawn))
	copy(out, c.drawn)
	return out
}

// Has reports whether n has been drawn.
func (c *DrawController) Has(n int) bool {
	return n >= 1 && n <= models.MaxNumber && c.seen[n]
}

func (c *DrawController) Count() int { return len(c.drawn) }

func (c *DrawController) Remaining() int { return models.MaxNumber - len(c.drawn) }

func (c *DrawController) IsExhausted() bool { return c.Remaining() == 0 }

// Last returns the most recently drawn number.
func (c *DrawController) Last() (int, bool) {
	if len(c.drawn) == 0 {
		return 0, false
	}
	return c.drawn[len(c.drawn)-1], true
}

func (c *DrawController) Status() models.GameStatus {
	if c.IsExhausted() {
		return models.GameStatusExhausted
	}
	return models.GameStatusActive
}

// Serialize encodes the drawn numbers as {"drawnNumbers":[...]}.
func (c *DrawController) Serialize() []byte {
	state := models.BingoState{DrawnNumbers: c.Drawn()}
	// A struct holding an int slice always marshals
	data, _ := json.Marshal(state)
	return data
}

// Snapshot describes the current game for rendering.
func (c *DrawController) Snapshot() *models.GameSnapshot {
	snap := &models.GameSnapshot{
		DrawnNumbers: c.Drawn(),
		Count:        c.Count(),
		Remaining:    c.Remaining(),
		Status:       c.Status(),
		StatusText:   "Ready",
	}
	if last, ok := c.Last(); ok {
		letter, _ := Label(last)
		snap.CurrentNumber = last
		snap.CurrentLetter = letter
		snap.StatusText = StatusText(last)
	}
	return snap
}

// Deserialize decodes a payload written by Serialize. A payload without a
// drawnNumbers list is an empty game.
func Deserialize(data []byte) ([]int, error) {
	var state models.BingoState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(state.DrawnNumbers) > models.MaxNumber {
		return nil, fmt.Errorf("%w: %d numbers exceeds %d", ErrCorrupt, len(state.DrawnNumbers), models.MaxNumber)
	}

	var seen [models.MaxNumber + 1]bool
	numbers := make([]int, 0, len(state.DrawnNumbers))
	for _, n := range state.DrawnNumbers {
		if n < 1 || n > models.MaxNumber {
			return nil, fmt.Errorf("%w: %d is out of range", ErrCorrupt, n)
		}
		if seen[n] {
			return nil, fmt.Errorf("%w: %d drawn twice", ErrCorrupt, n)
		}
		seen[n] = true
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// Label maps n to B, I, N, G or O by its 15-number band.
func Label(n int) (models.Letter, error) {
	if n < 1 || n > models.MaxNumber {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return models.Letters[(n-1)/models.BandSize], nil
}

// StatusText renders a drawn number as "B - 7". Out-of-range values render
// as the bare number.
func StatusText(n int) string {
	letter, err := Label(n)
	if err != nil {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s - %d", letter, n)
}
