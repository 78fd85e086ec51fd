package engine

import (
	"fmt"

	"github.com/rs/zerolog"
)

// MaxDepth bounds the lookahead horizon. Work grows with the branching
// factor raised to the depth, so anything past this is impractical.
const MaxDepth = 6

// Config is fixed when an Engine is built and shared by every comparison
// of one selection.
type Config struct {
	// Depth is the lookahead horizon handed to the evaluator. Depth 1 scores
	// the follow-ups of each follow-up.
	Depth int
	// Workers is the number of goroutines ranking candidates. Each one works
	// on its own clone of the board.
	Workers int
	// Memoize shares ratings and lookahead averages between candidates whose
	// subtrees meet in the same position.
	Memoize bool
	Logger  zerolog.Logger
}

// DefaultConfig returns depth 1, a single worker and memoization on.
func DefaultConfig() Config {
	return Config{
		Depth:   1,
		Workers: 1,
		Memoize: true,
		Logger:  zerolog.Nop(),
	}
}

// Validate checks the bounds of every field.
func (c Config) Validate() error {
	if c.Depth < 1 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d outside 1..%d", ErrInvalidConfig, c.Depth, MaxDepth)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d, need at least 1", ErrInvalidConfig, c.Workers)
	}
	return nil
}
