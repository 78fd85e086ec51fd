package bench

import (
	"context"
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"

	"tactic-engine/engine"
)

func benchCandidates(b *testing.B, fen string, withTeamDiff bool) {
	bd := mustBoard(b, fen)
	moves := bd.Team(bd.SideToMove()).MoveList()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := moves[i%len(moves)]
		if _, err := engine.NewCandidate(bd, m.Piece, m.Dest, withTeamDiff); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCandidate_Initial(b *testing.B) { benchCandidates(b, gm.FENStartPos, false) }
func BenchmarkCandidate_Kiwipete(b *testing.B) { benchCandidates(b, kiwipete, false) }
func BenchmarkCandidateTeamDiff_Kiwipete(b *testing.B) { benchCandidates(b, kiwipete, true) }

func benchBestMove(b *testing.B, fen string, mod func(*engine.Config)) {
	cfg := engine.DefaultConfig()
	if mod != nil {
		mod(&cfg)
	}
	eng, err := engine.New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	bd := mustBoard(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.BestMove(context.Background(), bd, bd.SideToMove()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBestMove_Initial(b *testing.B) { benchBestMove(b, gm.FENStartPos, nil) }

func BenchmarkBestMoveNoMemo_Initial(b *testing.B) {
	benchBestMove(b, gm.FENStartPos, func(c *engine.Config) { c.Memoize = false })
}

func BenchmarkBestMoveWorkers_Pos6(b *testing.B) {
	benchBestMove(b, pos6, func(c *engine.Config) { c.Workers = 4 })
}
