package engine

import "errors"

var (
	// ErrNoLegalMove is returned when the side asked to move has no
	// candidates at all.
	ErrNoLegalMove = errors.New("no legal move")

	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("invalid engine config")
)
