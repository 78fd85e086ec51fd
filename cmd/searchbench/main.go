package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"tactic-engine/board"
	"tactic-engine/engine"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 1, "lookahead depth")
	repeatFlag := flag.Int("repeat", 1, "number of selections to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	workersFlag := flag.Int("workers", 1, "goroutines ranking candidates")
	memoFlag := flag.Bool("memo", true, "share ratings between candidates")
	profileFlag := flag.String("profile", "", "cpu or mem; profile is written to the working directory")
	flag.Parse()

	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profileFlag)
	}

	cfg := engine.DefaultConfig()
	cfg.Depth = *depthFlag
	cfg.Workers = *workersFlag
	cfg.Memoize = *memoFlag
	cfg.Logger = zerolog.Nop()
	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	fen := gm.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	fmt.Printf("searchbench: fen=%q depth=%d workers=%d memo=%t repeat=%d\n",
		fen, cfg.Depth, cfg.Workers, cfg.Memoize, *repeatFlag)

	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position for each run
		b, err := board.FromFEN(fen)
		if err != nil {
			log.Fatalf("position: %v", err)
		}

		iterStart := time.Now()
		res, err := eng.BestMove(context.Background(), b, b.SideToMove())
		if err != nil {
			log.Fatalf("iteration %d: %v", i+1, err)
		}
		iterElapsed := time.Since(iterStart)

		st := eng.Stats()
		fmt.Printf("iteration %d: bestmove %s  candidates=%d followups=%d ttable-hits=%d/%d  time=%v\n",
			i+1, res.UCI(), st.Candidates.Load(), st.Followups.Load(),
			st.TableHits.Load(), st.TableLookups.Load(), iterElapsed)
	}
	fmt.Printf("total time: %v\n", time.Since(startAll))
}
