package board

// Team is one side of the board.
type Team struct {
	b     *Board
	Color Color
}

// PieceMoves pairs a piece with its legal destinations.
type PieceMoves struct {
	Piece *Piece
	Dests []Location
}

// Opponent returns the other team.
func (t *Team) Opponent() *Team { return t.b.teams[t.Color.Opponent()] }

// Pieces returns the team's pieces still on the board, in ID order.
func (t *Team) Pieces() []*Piece {
	var out []*Piece
	for _, p := range t.b.pieces {
		if !p.captured && p.Color == t.Color {
			out = append(out, p)
		}
	}
	return out
}

// MovesByPiece returns every piece that has a legal move together with its
// destinations. Pieces come in ID order and destinations in square order,
// so the enumeration is stable for a given position.
func (t *Team) MovesByPiece() []PieceMoves {
	var out []PieceMoves
	for _, p := range t.Pieces() {
		if dests := t.b.LegalMoves(p); len(dests) > 0 {
			out = append(out, PieceMoves{Piece: p, Dests: dests})
		}
	}
	return out
}

// MoveList flattens MovesByPiece.
func (t *Team) MoveList() []Move {
	var out []Move
	for _, pm := range t.MovesByPiece() {
		for _, d := range pm.Dests {
			out = append(out, Move{Piece: pm.Piece, Dest: d})
		}
	}
	return out
}

// TotalAttacks sums the number of enemies attacked by each team piece,
// leaving out the given piece (which may be nil).
func (t *Team) TotalAttacks(except *Piece) int {
	total := 0
	for _, p := range t.Pieces() {
		if p != except {
			total += len(p.attacked)
		}
	}
	return total
}

// RefreshStatus recomputes the attack/defend bookkeeping of the board.
func (t *Team) RefreshStatus() { t.b.refresh() }
