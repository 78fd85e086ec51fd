package board

// Perft counts the leaves of the move tree below b, depth plies deep with
// color to move first. Every node is visited through Simulate, so the count
// also exercises the undo path. Castling, en passant and underpromotion are
// outside the move model and are not counted.
func Perft(b *Board, color Color, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	moves := b.Team(color).MoveList()
	if depth == 1 {
		return uint64(len(moves)), nil
	}
	var nodes uint64
	for _, m := range moves {
		n, err := SimulateValue(b, m.Piece, m.Dest, func() (uint64, error) {
			return Perft(b, color.Opponent(), depth-1)
		})
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// PerftDivide is Perft split by root move, in enumeration order.
func PerftDivide(b *Board, color Color, depth int) ([]DivideEntry, error) {
	var out []DivideEntry
	for _, m := range b.Team(color).MoveList() {
		n, err := SimulateValue(b, m.Piece, m.Dest, func() (uint64, error) {
			return Perft(b, color.Opponent(), depth-1)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, DivideEntry{Move: m, Nodes: n})
	}
	return out, nil
}
