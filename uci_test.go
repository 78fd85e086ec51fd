package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func runUCI(t testing.TB, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	uciLoop(strings.NewReader(strings.Join(script, "\n")+"\n"), &out, zerolog.Nop())
	return out.String()
}

func TestUCIHandshake(t *testing.T) {
	out := runUCI(t, "uci", "isready", "quit", "isready")
	for _, want := range []string{"id name", "option name Depth", "uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Count(out, "readyok") != 1 {
		t.Errorf("commands after quit were processed:\n%s", out)
	}
}

func TestUCIGoSingleMove(t *testing.T) {
	out := runUCI(t, "position fen 8/8/8/8/4p3/8/4P3/7k w - - 0 1", "go depth 1")
	if !strings.Contains(out, "bestmove e2e3\n") {
		t.Fatalf("expected bestmove e2e3, got:\n%s", out)
	}
	if !strings.Contains(out, "string move Pe2 e3") {
		t.Errorf("expected the move in the info line, got:\n%s", out)
	}
}

func TestUCIGoNoLegalMove(t *testing.T) {
	out := runUCI(t, "position fen 8/8/8/8/8/4p3/4P3/7k w - - 0 1", "go")
	if !strings.Contains(out, "bestmove 0000") {
		t.Fatalf("expected null bestmove, got:\n%s", out)
	}
}

func TestUCIPositionMoves(t *testing.T) {
	s := newSession(&bytes.Buffer{}, zerolog.Nop())
	s.position(strings.Fields("startpos moves e2e4 e7e5 g1f3"))
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b"
	if got := s.pos.ToFEN(); !strings.HasPrefix(got, want) {
		t.Fatalf("position after moves:\n got %s\nwant prefix %s", got, want)
	}

	var out bytes.Buffer
	s = newSession(&out, zerolog.Nop())
	s.position(strings.Fields("startpos moves e2e5"))
	if !strings.Contains(out.String(), "not found") {
		t.Errorf("expected an illegal move report, got %q", out.String())
	}
}

func TestUCISetOption(t *testing.T) {
	var out bytes.Buffer
	s := newSession(&out, zerolog.Nop())
	s.setOption(strings.Fields("name Depth value 2"))
	s.setOption(strings.Fields("name Workers value 3"))
	s.setOption(strings.Fields("name Memoize value false"))
	s.setOption(strings.Fields("name KingSafety value false"))
	if s.cfg.Depth != 2 || s.cfg.Workers != 3 || s.cfg.Memoize || s.kingSafety {
		t.Fatalf("options not applied: %+v kingSafety=%t", s.cfg, s.kingSafety)
	}
	s.setOption(strings.Fields("name Depth value 99"))
	if s.cfg.Depth != 2 {
		t.Errorf("out of range depth accepted")
	}
	if !strings.Contains(out.String(), "invalid engine config") {
		t.Errorf("expected the rejected depth to be reported, got %q", out.String())
	}
}

func TestUCIStatsToggle(t *testing.T) {
	out := runUCI(t, "stats", "position fen 8/8/8/8/4p3/8/4P3/7k w - - 0 1", "go depth 1")
	if !strings.Contains(out, "info string   Candidates built:") {
		t.Errorf("expected statistics after go, got:\n%s", out)
	}
	out = runUCI(t, "position fen 8/8/8/8/4p3/8/4P3/7k w - - 0 1", "go depth 1")
	if strings.Contains(out, "Selection statistics") {
		t.Errorf("statistics printed without the stats command:\n%s", out)
	}
}

func BenchmarkGoStartpos(b *testing.B) {
	for i := 0; i < b.N; i++ {
		runUCI(b, "position startpos", "go depth 1")
	}
}
