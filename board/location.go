package board

import (
	"fmt"
)

// Location is a board coordinate. Files and ranks run 0..7, so a1 is
// {0, 0} and h8 is {7, 7}.
type Location struct {
	File int8
	Rank int8
}

// NoLocation marks the absence of a square.
var NoLocation = Location{File: -1, Rank: -1}

// NewLocation builds a location from a file and rank index.
func NewLocation(file, rank int) Location {
	return Location{File: int8(file), Rank: int8(rank)}
}

// LocationFromSquare converts a 0..63 square index (a1 = 0) to a location.
func LocationFromSquare(sq int) Location {
	return Location{File: int8(sq & 7), Rank: int8(sq >> 3)}
}

// ParseLocation reads algebraic coordinates such as "e4".
func ParseLocation(s string) (Location, error) {
	if len(s) != 2 {
		return NoLocation, fmt.Errorf("%w: %q", ErrInvalidLocation, s)
	}
	l := Location{File: int8(s[0] - 'a'), Rank: int8(s[1] - '1')}
	if !l.Valid() {
		return NoLocation, fmt.Errorf("%w: %q", ErrInvalidLocation, s)
	}
	return l, nil
}

// MustLocation is ParseLocation for literals; it panics on bad input.
func MustLocation(s string) Location {
	l, err := ParseLocation(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Valid reports whether the location lies on the board.
func (l Location) Valid() bool {
	return l.File >= 0 && l.File < 8 && l.Rank >= 0 && l.Rank < 8
}

// Square returns the 0..63 index used by the bitboard layer.
func (l Location) Square() int { return int(l.Rank)*8 + int(l.File) }

// Offset returns the location shifted by the given file and rank deltas.
// The result may be off the board; check Valid.
func (l Location) Offset(df, dr int) Location {
	return Location{File: l.File + int8(df), Rank: l.Rank + int8(dr)}
}

// Less orders locations by square index.
func (l Location) Less(o Location) bool { return l.Square() < o.Square() }

func (l Location) String() string {
	if !l.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + l.File), byte('1' + l.Rank)})
}
