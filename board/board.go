// Package board is the game-state collaborator of the move evaluator:
// pieces with stable identities on an 8x8 board, per-piece reach and legal
// moves, attack/defend bookkeeping, and the simulation facility that lets
// callers evaluate hypothetical moves without disturbing the real position.
//
// The piece placement is mirrored into a goosemg position, which supplies
// FEN parsing, check detection and Zobrist keys.
package board

import (
	"fmt"
	"math/bits"
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// Board is a mutable position. It is not safe for concurrent use; give each
// goroutine its own Clone.
type Board struct {
	pos     *gm.Board
	squares [64]*Piece
	pieces  []*Piece // indexed by ID, captured pieces included
	teams   [2]*Team
	toMove  Color

	kingSafety bool
	frames     []frame
}

// Option adjusts how a board is built.
type Option func(*Board)

// WithKingSafety controls whether legal moves exclude moves that leave the
// mover's own king attacked. On by default.
func WithKingSafety(on bool) Option {
	return func(b *Board) { b.kingSafety = on }
}

// FromFEN builds a board from a FEN string. Castling rights, en passant and
// move counters are accepted but not used by the evaluator.
func FromFEN(fen string, opts ...Option) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
	}
	// goosemg wants all six fields separated by single spaces.
	for len(fields) < 6 {
		switch len(fields) {
		case 2, 3:
			fields = append(fields, "-")
		case 4:
			fields = append(fields, "0")
		case 5:
			fields = append(fields, "1")
		}
	}
	pos, err := gm.ParseFEN(strings.Join(fields, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	toMove := White
	switch fields[1] {
	case "w":
	case "b":
		toMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	return newBoard(pos, toMove, opts...), nil
}

func newBoard(pos *gm.Board, toMove Color, opts ...Option) *Board {
	b := &Board{pos: pos, toMove: toMove, kingSafety: true}
	for _, opt := range opts {
		opt(b)
	}
	for sq := 0; sq < 64; sq++ {
		gp := pos.PieceAt(gm.Square(sq))
		if gp == gm.NoPiece {
			continue
		}
		c, k, ok := fromGM(gp)
		if !ok {
			continue
		}
		p := &Piece{ID: len(b.pieces), Kind: k, Color: c, loc: LocationFromSquare(sq)}
		b.pieces = append(b.pieces, p)
		b.squares[sq] = p
	}
	b.teams[White] = &Team{b: b, Color: White}
	b.teams[Black] = &Team{b: b, Color: Black}
	b.refresh()
	return b
}

// Clone returns an independent copy with the same piece identities.
func (b *Board) Clone() *Board {
	pos := *b.pos
	c := &Board{pos: &pos, toMove: b.toMove, kingSafety: b.kingSafety}
	c.pieces = make([]*Piece, len(b.pieces))
	for i, p := range b.pieces {
		cp := &Piece{ID: p.ID, Kind: p.Kind, Color: p.Color, loc: p.loc, captured: p.captured}
		c.pieces[i] = cp
		if !cp.captured {
			c.squares[cp.loc.Square()] = cp
		}
	}
	c.teams[White] = &Team{b: c, Color: White}
	c.teams[Black] = &Team{b: c, Color: Black}
	c.refresh()
	return c
}

// SideToMove is the side to move given when the board was built.
func (b *Board) SideToMove() Color { return b.toMove }

// KingSafety reports whether legal moves are filtered for king safety.
func (b *Board) KingSafety() bool { return b.kingSafety }

// Team returns the team of the given color.
func (b *Board) Team(c Color) *Team { return b.teams[c] }

// PieceByID returns the piece with the given identity, or nil.
func (b *Board) PieceByID(id int) *Piece {
	if id < 0 || id >= len(b.pieces) {
		return nil
	}
	return b.pieces[id]
}

// PieceAt returns the piece standing on l, or nil.
func (b *Board) PieceAt(l Location) *Piece {
	if !l.Valid() {
		return nil
	}
	return b.squares[l.Square()]
}

// Pieces returns every piece on the board in ID order.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		if !p.captured {
			out = append(out, p)
		}
	}
	return out
}

// Hash returns the Zobrist key of the current placement.
func (b *Board) Hash() uint64 { return b.pos.ComputeZobrist() }

// FEN renders the placement with the given side to move. Castling and en
// passant fields are always empty.
func (b *Board) FEN(toMove Color) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank*8+file]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	side := "w"
	if toMove == Black {
		side = "b"
	}
	sb.WriteString(" " + side + " - - 0 1")
	return sb.String()
}

// Tile is a view of one square.
type Tile struct {
	b   *Board
	loc Location
}

// Tile returns a view of the square at l.
func (b *Board) Tile(l Location) Tile { return Tile{b: b, loc: l} }

// Occupant returns the piece on the tile, or nil.
func (t Tile) Occupant() *Piece { return t.b.PieceAt(t.loc) }

// OccupyingEnemyOf returns the occupant if it belongs to p's opponent.
func (t Tile) OccupyingEnemyOf(p *Piece) *Piece {
	if q := t.Occupant(); q != nil && q.Color != p.Color {
		return q
	}
	return nil
}

// OccupyingFriendlyOf returns the occupant if it is on p's team. A piece is
// not its own friend.
func (t Tile) OccupyingFriendlyOf(p *Piece) *Piece {
	if q := t.Occupant(); q != nil && q != p && q.Color == p.Color {
		return q
	}
	return nil
}

// refresh recomputes the attack/defend bookkeeping of every piece from the
// current placement. Fresh slices are allocated so snapshots stay intact.
func (b *Board) refresh() {
	for _, p := range b.pieces {
		p.status = status{}
	}
	occ := b.occupancy()
	for _, p := range b.pieces {
		if p.captured {
			continue
		}
		for x := b.reachBB(p, occ); x != 0; x &= x - 1 {
			q := b.squares[bits.TrailingZeros64(x)]
			if q == nil {
				continue
			}
			if q.Color == p.Color {
				q.defenderCount++
				if p.defending == nil {
					p.defending = q
				}
				continue
			}
			p.attacked = append(p.attacked, q)
		}
	}
}

func (b *Board) snapshot() []status {
	out := make([]status, len(b.pieces))
	for i, p := range b.pieces {
		out[i] = p.status
	}
	return out
}

func (b *Board) restore(saved []status) {
	for i, p := range b.pieces {
		p.status = saved[i]
	}
}

// lift takes a piece off its square.
func (b *Board) lift(p *Piece) {
	b.squares[p.loc.Square()] = nil
	b.pos.ClearSquare(gmSquare(p.loc))
}

// drop stands a piece on l, which must be empty.
func (b *Board) drop(p *Piece, l Location) {
	p.loc = l
	b.squares[l.Square()] = p
	b.pos.SetPiece(gmSquare(l), p.gm())
}

func gmSquare(l Location) gm.Square { return gm.Square(l.Square()) }
