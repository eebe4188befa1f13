package table

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Engine computes state transitions. It never mutates its input: every
// operation returns a fresh State so a caller can commit or discard it as a
// whole.
type Engine struct {
	now     func() time.Time
	newID   func() string
	shuffle func(n int, swap func(i, j int))
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for match timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs sets the generator for player and match ids.
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithRand sets the source used by ShuffleQueue.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.shuffle = r.Shuffle }
}

// NewEngine creates an Engine with wall-clock time, uuid ids and the global
// random source unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:     time.Now,
		newID:   uuid.NewString,
		shuffle: rand.Shuffle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of a transition.
type Result struct {
	State   State
	Changed bool
	Events  []Event
	// Finished is set by FinishMatch to the match moved into history.
	Finished *Match
}

func unchanged(s State) Result {
	return Result{State: s}
}
