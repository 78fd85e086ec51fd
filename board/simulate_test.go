package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// observed is everything a caller can see of a board.
type observed struct {
	Placement string
	Hash      uint64
	Locations []Location
	Captured  []bool
	Defenders []int
	Defending []int
	Attacked  [][]int
	Open      int
}

func observe(b *Board) observed {
	o := observed{Placement: b.FEN(White), Hash: b.Hash(), Open: b.OpenSimulations()}
	for _, p := range b.pieces {
		o.Locations = append(o.Locations, p.Location())
		o.Captured = append(o.Captured, p.Captured())
		o.Defenders = append(o.Defenders, p.DefenderCount())
		def := -1
		if p.Defending() != nil {
			def = p.Defending().ID
		}
		o.Defending = append(o.Defending, def)
		o.Attacked = append(o.Attacked, ids(p.Attacked()))
	}
	return o
}

func TestSimulateRestoresEveryMove(t *testing.T) {
	fens := []string{
		startFEN,
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
		"4k3/8/3p4/2n1r3/3B4/8/8/4K2R b - - 0 1",
	}
	for _, fen := range fens {
		b := mustBoard(t, fen)
		before := observe(b)
		for _, color := range []Color{White, Black} {
			for _, m := range b.Team(color).MoveList() {
				err := b.Simulate(m.Piece, m.Dest, func() error {
					for _, q := range b.Team(color.Opponent()).Pieces() {
						if err := b.SimulateRemoval(q, func() error {
							_ = b.Team(color).MoveList()
							return nil
						}); err != nil {
							return err
						}
					}
					return nil
				})
				if err != nil {
					t.Fatalf("%s: simulate %v: %v", fen, m, err)
				}
				if diff := cmp.Diff(before, observe(b)); diff != "" {
					t.Fatalf("%s: board changed after simulating %v (-want +got):\n%s", fen, m, diff)
				}
			}
		}
	}
}

func TestSimulateCapture(t *testing.T) {
	b := mustBoard(t, "7r/8/8/8/8/8/8/R7 w - - 0 1")
	rook, victim := at(t, b, "a1"), at(t, b, "h8")
	h8 := MustLocation("h8")
	err := b.Simulate(rook, MustLocation("a8"), func() error {
		if b.PieceAt(MustLocation("a8")) != rook || rook.Location() != MustLocation("a8") {
			t.Errorf("rook did not arrive on a8")
		}
		if len(rook.Attacked()) != 1 || rook.Attacked()[0] != victim {
			t.Errorf("expected rook on a8 to attack h8, got %v", rook.Attacked())
		}
		return b.Simulate(rook, h8, func() error {
			if !victim.Captured() {
				t.Errorf("expected h8 rook captured")
			}
			if len(b.Team(Black).Pieces()) != 0 {
				t.Errorf("captured piece still listed on its team")
			}
			if b.OpenSimulations() != 2 {
				t.Errorf("expected 2 open simulations, got %d", b.OpenSimulations())
			}
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if victim.Captured() || b.PieceAt(h8) != victim || rook.Location() != MustLocation("a1") {
		t.Fatalf("capture was not reverted")
	}
	if b.OpenSimulations() != 0 {
		t.Fatalf("simulation stack not empty")
	}
}

func TestSimulateRefreshesBookkeeping(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/8/2N5/8/R7 w - - 0 1")
	rook, knight := at(t, b, "a1"), at(t, b, "c3")
	count, err := SimulateValue(b, rook, MustLocation("a3"), func() (int, error) {
		return knight.DefenderCount(), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected knight defended once inside the simulation, got %d", count)
	}
	if knight.DefenderCount() != 0 {
		t.Errorf("expected knight undefended after the simulation, got %d", knight.DefenderCount())
	}
}

func TestSimulateRemoval(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/R2n3q/8/8/8 w - - 0 1")
	rook, knight, queen := at(t, b, "a4"), at(t, b, "d4"), at(t, b, "h4")
	got, err := SimulateRemovalValue(b, knight, func() ([]*Piece, error) {
		return rook.Attacked(), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{queen.ID}, ids(got)); diff != "" {
		t.Errorf("attacks with knight removed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{knight.ID}, ids(rook.Attacked())); diff != "" {
		t.Errorf("attacks after restore (-want +got):\n%s", diff)
	}
}

func TestSimulateRestoresOnError(t *testing.T) {
	b := mustBoard(t, startFEN)
	before := observe(b)
	sentinel := errors.New("boom")
	knight := at(t, b, "g1")
	err := b.Simulate(knight, MustLocation("f3"), func() error {
		return b.Simulate(at(t, b, "e2"), MustLocation("e4"), func() error {
			return sentinel
		})
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	var se *SimulationError
	if !errors.As(err, &se) {
		t.Fatalf("expected SimulationError, got %T", err)
	}
	if se.Dest != MustLocation("e4") {
		t.Errorf("expected innermost simulation in the error, got %v", se.Dest)
	}
	if diff := cmp.Diff(before, observe(b)); diff != "" {
		t.Fatalf("board changed after failed simulation (-want +got):\n%s", diff)
	}
}

func TestSimulateRestoresOnPanic(t *testing.T) {
	b := mustBoard(t, startFEN)
	before := observe(b)
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic to propagate")
			}
		}()
		_ = b.Simulate(at(t, b, "b1"), MustLocation("c3"), func() error {
			panic("compute failed")
		})
	}()
	if diff := cmp.Diff(before, observe(b)); diff != "" {
		t.Fatalf("board changed after panicking simulation (-want +got):\n%s", diff)
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	b := mustBoard(t, "7r/8/8/8/8/8/8/R7 w - - 0 1")
	rook, victim := at(t, b, "a1"), at(t, b, "h8")
	if err := b.Simulate(rook, NoLocation, func() error { return nil }); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("expected ErrInvalidLocation for off-board destination, got %v", err)
	}
	if err := b.Simulate(rook, rook.Location(), func() error { return nil }); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("expected ErrInvalidLocation for a null move, got %v", err)
	}
	err := b.Simulate(rook, MustLocation("a8"), func() error {
		return b.Simulate(rook, MustLocation("h8"), func() error {
			return b.Simulate(victim, MustLocation("g8"), func() error { return nil })
		})
	})
	if !errors.Is(err, ErrPieceOffBoard) {
		t.Errorf("expected ErrPieceOffBoard for a captured piece, got %v", err)
	}
	if b.OpenSimulations() != 0 {
		t.Errorf("simulation stack not empty")
	}
}
