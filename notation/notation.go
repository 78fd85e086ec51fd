// Package notation renders chosen moves in standard algebraic notation.
package notation

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

// ErrIllegalMove is returned when the move is not legal in the position.
var ErrIllegalMove = errors.New("illegal move")

// SAN converts a move in long algebraic form (e2e4, e7e8q) to SAN for the
// position described by fen. A promotion without a piece letter promotes
// to a queen.
func SAN(fen, uci string) (string, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return "", fmt.Errorf("notation: %w", err)
	}
	g := chess.NewGame(opt)
	m, err := find(g, uci)
	if err != nil {
		return "", err
	}
	return chess.AlgebraicNotation{}.Encode(g.Position(), m), nil
}

func find(g *chess.Game, uci string) (*chess.Move, error) {
	if len(uci) < 4 || len(uci) > 5 {
		return nil, fmt.Errorf("%w: %q", ErrIllegalMove, uci)
	}
	promo := chess.Queen
	if len(uci) == 5 {
		promo = promotions[uci[4]]
	}
	for _, m := range g.ValidMoves() {
		if m.S1().String() != uci[0:2] || m.S2().String() != uci[2:4] {
			continue
		}
		if m.Promo() != chess.NoPieceType && m.Promo() != promo {
			continue
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrIllegalMove, uci)
}

var promotions = map[byte]chess.PieceType{
	'q': chess.Queen,
	'r': chess.Rook,
	'b': chess.Bishop,
	'n': chess.Knight,
}
