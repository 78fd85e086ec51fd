package board

import (
	"fmt"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// Color identifies a team.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opponent returns the other team's color.
func (c Color) Opponent() Color { return 1 - c }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Kind is a colorless piece type. The numbering matches goosemg's PieceType.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// AveragePieceValue is the rough worth of an average piece, used as the
// unit reward for positional tactics.
const AveragePieceValue = 4

var kindValue = [7]int{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   10,
}

var kindLetter = [7]byte{'?', 'P', 'N', 'B', 'R', 'Q', 'K'}

var kindName = [7]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

// Value returns the material value of the kind.
func (k Kind) Value() int {
	if k > King {
		return 0
	}
	return kindValue[k]
}

// IsSlider reports whether the kind moves along open lines.
func (k Kind) IsSlider() bool { return k == Bishop || k == Rook || k == Queen }

func (k Kind) String() string {
	if k > King {
		return kindName[0]
	}
	return kindName[k]
}

var gmPieces = [2][7]gm.Piece{
	{gm.NoPiece, gm.WhitePawn, gm.WhiteKnight, gm.WhiteBishop, gm.WhiteRook, gm.WhiteQueen, gm.WhiteKing},
	{gm.NoPiece, gm.BlackPawn, gm.BlackKnight, gm.BlackBishop, gm.BlackRook, gm.BlackQueen, gm.BlackKing},
}

// fromGM splits a goosemg piece code into color and kind.
func fromGM(p gm.Piece) (Color, Kind, bool) {
	for c := range gmPieces {
		for k := Pawn; k <= King; k++ {
			if gmPieces[c][k] == p {
				return Color(c), k, true
			}
		}
	}
	return White, NoKind, false
}

func gmColor(c Color) gm.Color {
	if c == White {
		return gm.White
	}
	return gm.Black
}

// status is the attack/defend bookkeeping derived from the position.
type status struct {
	defenderCount int
	defending     *Piece
	attacked      []*Piece
}

// Piece is a unit on the board. Identity is the ID, which stays fixed for
// the lifetime of the board and its clones. Bookkeeping fields are owned by
// the Board and recomputed whenever the position changes.
type Piece struct {
	ID    int
	Kind  Kind
	Color Color

	loc      Location
	captured bool
	status
}

// Location returns where the piece currently stands.
func (p *Piece) Location() Location { return p.loc }

// Value returns the material value of the piece.
func (p *Piece) Value() int { return p.Kind.Value() }

// Is reports whether the piece has the given kind.
func (p *Piece) Is(k Kind) bool { return p.Kind == k }

// Captured reports whether the piece is currently off the board.
func (p *Piece) Captured() bool { return p.captured }

// DefenderCount is the number of friendly pieces whose reach covers this one.
func (p *Piece) DefenderCount() int { return p.defenderCount }

// Defending returns the first friendly piece (in reach order) that this
// piece defends, or nil.
func (p *Piece) Defending() *Piece { return p.defending }

// Attacked returns the enemy pieces within this piece's reach, in reach order.
// The slice must not be modified.
func (p *Piece) Attacked() []*Piece { return p.attacked }

// Letter returns the FEN letter, uppercase for White.
func (p *Piece) Letter() byte {
	l := kindLetter[p.Kind]
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

func (p *Piece) gm() gm.Piece { return gmPieces[p.Color][p.Kind] }

func (p *Piece) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%c%s", kindLetter[p.Kind], p.loc)
}

// MoveKey identifies a move by piece identity and destination.
type MoveKey struct {
	PieceID int
	Dest    Location
}

// Move is the intent to relocate a piece to a destination.
type Move struct {
	Piece *Piece
	Dest  Location
}

// Key returns the identity used for move equality.
func (m Move) Key() MoveKey { return MoveKey{PieceID: m.Piece.ID, Dest: m.Dest} }

// Equal reports whether both moves relocate the same piece to the same square.
func (m Move) Equal(o Move) bool { return m.Key() == o.Key() }

func (m Move) String() string { return fmt.Sprintf("%s %s", m.Piece, m.Dest) }
