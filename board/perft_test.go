package board

import "testing"

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  uint64
	}{
		{"initial d1", startFEN, 1, 20},
		{"initial d2", startFEN, 2, 400},
		{"initial d3", startFEN, 3, 8902},
		// Castling is outside the move model: 48 minus O-O and O-O-O.
		{"kiwipete d1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 46},
		{"endgame d1", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 1, 14},
		{"endgame d2", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 2, 191},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			before := observe(b)
			got, err := Perft(b, b.SideToMove(), tt.depth)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.want)
			}
			if observe(b).Hash != before.Hash || b.OpenSimulations() != 0 {
				t.Errorf("perft left the board changed")
			}
		})
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	b := mustBoard(t, startFEN)
	div, err := PerftDivide(b, White, 2)
	if err != nil {
		t.Fatal(err)
	}
	var sum uint64
	for _, e := range div {
		if e.Nodes != 20 {
			t.Errorf("%v: %d replies, want 20", e.Move, e.Nodes)
		}
		sum += e.Nodes
	}
	if len(div) != 20 || sum != 400 {
		t.Fatalf("divide: %d moves, %d nodes", len(div), sum)
	}
}
