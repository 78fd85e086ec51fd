package board

import (
	"math/bits"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
)

const (
	bitboardFileA uint64 = 0x0101010101010101
	bitboardFileH uint64 = 0x8080808080808080
	bitboardFileB uint64 = bitboardFileA << 1
	bitboardFileG uint64 = bitboardFileH >> 1
)

var kingTargets [64]uint64
var knightTargets [64]uint64

func init() {
	initTargetTables()
}

func initTargetTables() {
	for sq := 0; sq < 64; sq++ {
		sqBB := uint64(1) << uint(sq)

		up := sqBB << 8
		down := sqBB >> 8
		left := (sqBB >> 1) &^ bitboardFileH
		right := (sqBB << 1) &^ bitboardFileA
		upLeft := (sqBB << 7) &^ bitboardFileH
		upRight := (sqBB << 9) &^ bitboardFileA
		downLeft := (sqBB >> 9) &^ bitboardFileH
		downRight := (sqBB >> 7) &^ bitboardFileA
		kingTargets[sq] = up | down | left | right | upLeft | upRight | downLeft | downRight

		notA := ^bitboardFileA
		notAB := ^(bitboardFileA | bitboardFileB)
		notH := ^bitboardFileH
		notGH := ^(bitboardFileG | bitboardFileH)
		knightTargets[sq] = ((sqBB << 17) & notA) | ((sqBB << 15) & notH) |
			((sqBB << 10) & notAB) | ((sqBB << 6) & notGH) |
			((sqBB >> 17) & notH) | ((sqBB >> 15) & notA) |
			((sqBB >> 10) & notGH) | ((sqBB >> 6) & notAB)
	}
}

// occupancy returns the bitboard of every piece on the board.
func (b *Board) occupancy() uint64 {
	var occ uint64
	for sq, p := range b.squares {
		if p != nil {
			occ |= uint64(1) << uint(sq)
		}
	}
	return occ
}

// reachBB computes the squares a piece attacks or can advance to from its
// current square. Blocking pieces of either color are included.
func (b *Board) reachBB(p *Piece, occ uint64) uint64 {
	if p.captured {
		return 0
	}
	sq := p.loc.Square()
	switch p.Kind {
	case Knight:
		return knightTargets[sq]
	case King:
		return kingTargets[sq]
	case Bishop:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ)
	case Rook:
		return dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ)
	case Queen:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ) |
			dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ)
	case Pawn:
		return pawnReach(p, occ)
	}
	return 0
}

// pawnReach covers pushes onto empty squares and strikes on occupied
// diagonals, whoever occupies them.
func pawnReach(p *Piece, occ uint64) uint64 {
	sqBB := uint64(1) << uint(p.loc.Square())
	var push, double, strikes uint64
	if p.Color == White {
		push = (sqBB << 8) &^ occ
		if p.loc.Rank == 1 {
			double = (push << 8) &^ occ
		}
		strikes = ((sqBB << 7) &^ bitboardFileH) | ((sqBB << 9) &^ bitboardFileA)
	} else {
		push = (sqBB >> 8) &^ occ
		if p.loc.Rank == 6 {
			double = (push >> 8) &^ occ
		}
		strikes = ((sqBB >> 9) &^ bitboardFileH) | ((sqBB >> 7) &^ bitboardFileA)
	}
	return push | double | (strikes & occ)
}

func squaresOf(bb uint64) []Location {
	if bb == 0 {
		return nil
	}
	out := make([]Location, 0, bits.OnesCount64(bb))
	for x := bb; x != 0; x &= x - 1 {
		out = append(out, LocationFromSquare(bits.TrailingZeros64(x)))
	}
	return out
}

// Reach returns the squares the piece attacks or can advance to, in square
// order. Squares held by friendly pieces are included; the piece's own
// square never is.
func (b *Board) Reach(p *Piece) []Location {
	return squaresOf(b.reachBB(p, b.occupancy()))
}

// LegalMoves returns the destinations the piece may move to: its reach
// minus friendly-occupied squares and, with king safety on, minus squares
// that would leave its own king attacked.
func (b *Board) LegalMoves(p *Piece) []Location {
	if p.captured {
		return nil
	}
	targets := b.reachBB(p, b.occupancy())
	var out []Location
	for x := targets; x != 0; x &= x - 1 {
		dest := LocationFromSquare(bits.TrailingZeros64(x))
		if q := b.squares[dest.Square()]; q != nil && q.Color == p.Color {
			continue
		}
		if b.kingSafety && !b.keepsKingSafe(p, dest) {
			continue
		}
		out = append(out, dest)
	}
	return out
}

// CanMoveTo reports whether dest is among the piece's legal moves.
func (b *Board) CanMoveTo(p *Piece, dest Location) bool {
	if p.captured || !dest.Valid() {
		return false
	}
	if b.reachBB(p, b.occupancy())&(uint64(1)<<uint(dest.Square())) == 0 {
		return false
	}
	if q := b.squares[dest.Square()]; q != nil && q.Color == p.Color {
		return false
	}
	return !b.kingSafety || b.keepsKingSafe(p, dest)
}

// keepsKingSafe plays the move on the position mirror only and asks it
// whether the mover's king ends up attacked.
func (b *Board) keepsKingSafe(p *Piece, dest Location) bool {
	from, to := gmSquare(p.loc), gmSquare(dest)
	prev := b.pos.PieceAt(to)
	b.pos.ClearSquare(from)
	b.pos.SetPiece(to, p.gm())
	safe := !b.pos.InCheck(gmColor(p.Color))
	b.pos.ClearSquare(to)
	if prev != gm.NoPiece {
		b.pos.SetPiece(to, prev)
	}
	b.pos.SetPiece(from, p.gm())
	return safe
}
