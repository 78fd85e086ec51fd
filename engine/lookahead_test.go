package engine

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"tactic-engine/board"
)

func TestTruncMean(t *testing.T) {
	tests := []struct {
		in   []int
		want int
	}{
		{nil, 0},
		{[]int{7, 8}, 7},
		{[]int{-3, 1}, -1},
		{[]int{-7, 0}, -3},
		{[]int{5}, 5},
	}
	for _, tt := range tests {
		if got := truncMean(tt.in); got != tt.want {
			t.Errorf("truncMean(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAPMREmptyPotentialMoves(t *testing.T) {
	// The pawn lands on e4 facing the e5 pawn and has nowhere to go.
	b := mustBoard(t, "8/8/8/4p3/8/4P3/8/8 w - - 0 1")
	ev := NewEvaluator(b, false, zerolog.Nop())
	c, err := ev.Candidate(pieceAt(t, b, "e3"), board.MustLocation("e4"), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.PotentialMoves) != 0 {
		t.Fatalf("expected no potential moves, got %v", names(c.PotentialMoves))
	}
	for depth := 0; depth <= 3; depth++ {
		got, err := ev.APMR(c, depth)
		if err != nil {
			t.Fatal(err)
		}
		if got != 0 || c.APMR != 0 {
			t.Errorf("depth %d: APMR %d, want 0", depth, got)
		}
	}
}

// followups rebuilds a candidate's follow-ups the long way.
func followups(t *testing.T, b *board.Board, c *Candidate, fn func(f *Candidate) int) []int {
	t.Helper()
	var out []int
	for _, l := range c.PotentialMoves {
		err := b.Simulate(c.Piece, c.Dest, func() error {
			f, err := NewCandidate(b, c.Piece, l, false)
			if err != nil {
				return err
			}
			out = append(out, fn(f))
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	return out
}

func TestAPMRMatchesDefinition(t *testing.T) {
	b := mustBoard(t, "4k3/8/3p4/2n1r3/3B4/8/8/4K2R w - - 0 1")
	bishop := pieceAt(t, b, "d4")
	c := mustCandidate(t, b, "d4", "c3", false)
	if len(c.PotentialMoves) == 0 {
		t.Fatalf("expected the bishop to have follow-ups")
	}

	ev := NewEvaluator(b, false, zerolog.Nop())
	base, err := ev.APMR(c, 0)
	if err != nil {
		t.Fatal(err)
	}
	ratings := followups(t, b, c, func(f *Candidate) int { return f.Rating })
	if want := truncMean(ratings); base != want {
		t.Errorf("depth 0: APMR %d, want mean of %v = %d", base, ratings, want)
	}

	deep, err := ev.APMR(c, 1)
	if err != nil {
		t.Fatal(err)
	}
	averages := followups(t, b, c, func(f *Candidate) int {
		v, err := NewEvaluator(b, false, zerolog.Nop()).APMR(f, 0)
		if err != nil {
			t.Fatal(err)
		}
		return v
	})
	if want := truncMean(averages); deep != want {
		t.Errorf("depth 1: APMR %d, want mean of %v = %d", deep, averages, want)
	}
	if c.APMR != deep {
		t.Errorf("expected APMR stored on the candidate")
	}
	if bishop.Location() != board.MustLocation("d4") || b.OpenSimulations() != 0 {
		t.Errorf("lookahead left the board changed")
	}
}

func TestAPMRDeterministicAndMemoSound(t *testing.T) {
	b := mustBoard(t, "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	fen, hash := b.FEN(board.White), b.Hash()
	plain := NewEvaluator(b, false, zerolog.Nop())
	memo := NewEvaluator(b, true, zerolog.Nop())
	for _, m := range b.Team(board.White).MoveList()[:8] {
		c, err := plain.Candidate(m.Piece, m.Dest, false)
		if err != nil {
			t.Fatal(err)
		}
		first, err := plain.APMR(c, 1)
		if err != nil {
			t.Fatal(err)
		}
		again, err := plain.APMR(c, 1)
		if err != nil {
			t.Fatal(err)
		}
		cached, err := memo.APMR(c, 1)
		if err != nil {
			t.Fatal(err)
		}
		if first != again || first != cached {
			t.Errorf("%v: APMR %d, repeated %d, memoized %d", m, first, again, cached)
		}
	}
	if b.FEN(board.White) != fen || b.Hash() != hash {
		t.Fatalf("lookahead changed the board")
	}
	if memo.table.hits.Load() == 0 {
		t.Errorf("expected the memo table to be hit")
	}
}

func TestAPMRRejectsNegativeDepth(t *testing.T) {
	b := mustBoard(t, startFEN)
	c := mustCandidate(t, b, "g1", "f3", false)
	if _, err := NewEvaluator(b, true, zerolog.Nop()).APMR(c, -1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
