package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFEN indicates a FEN string the position parser rejected.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidLocation indicates a coordinate outside the board.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrPieceOffBoard indicates an operation on a piece that is not
	// currently standing on the board.
	ErrPieceOffBoard = errors.New("piece is not on the board")

	// ErrSimulationImbalance indicates that a simulation closed out of
	// order or left the position different from how it found it.
	ErrSimulationImbalance = errors.New("simulation did not restore the board")
)

// SimulationError wraps a failure raised inside a simulated computation
// with the hypothetical move that was being evaluated.
type SimulationError struct {
	Piece *Piece
	Dest  Location
	Err   error
}

func (e *SimulationError) Error() string {
	if e.Dest == NoLocation {
		return fmt.Sprintf("simulating removal of %s: %v", e.Piece, e.Err)
	}
	return fmt.Sprintf("simulating %s to %s: %v", e.Piece, e.Dest, e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }
