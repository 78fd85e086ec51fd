// Command tactic picks a move for the side to move in a FEN position.
//
//	go run ./cmd/tactic -fen "7k/3q4/8/2N5/8/8/8/7K w - - 0 1" -depth 2 -all
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"tactic-engine/board"
	"tactic-engine/engine"
	"tactic-engine/notation"
)

func main() {
	fenFlag := flag.String("fen", gm.FENStartPos, "position to evaluate")
	depthFlag := flag.Int("depth", 1, "lookahead depth")
	workersFlag := flag.Int("workers", 1, "goroutines ranking candidates")
	memoFlag := flag.Bool("memo", true, "share ratings between candidates")
	kingSafetyFlag := flag.Bool("king-safety", true, "exclude moves that leave the king attacked")
	allFlag := flag.Bool("all", false, "print every candidate, best last")
	statsFlag := flag.Bool("stats", false, "print selection statistics")
	levelFlag := flag.String("log-level", "info", "zerolog level")
	profileFlag := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	level, err := zerolog.ParseLevel(*levelFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -log-level: %v\n", err)
		os.Exit(2)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		log.Fatal().Str("profile", *profileFlag).Msg("unknown profile mode")
	}

	b, err := board.FromFEN(*fenFlag, board.WithKingSafety(*kingSafetyFlag))
	if err != nil {
		log.Fatal().Err(err).Msg("load-position")
	}
	cfg := engine.DefaultConfig()
	cfg.Depth = *depthFlag
	cfg.Workers = *workersFlag
	cfg.Memoize = *memoFlag
	cfg.Logger = log
	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("configure-engine")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := eng.BestMove(ctx, b, b.SideToMove())
	if err != nil {
		log.Error().Err(err).Msg("select-move")
		stop()
		os.Exit(1)
	}

	if *allFlag {
		fmt.Printf("%-16s %6s %6s\n", "candidate", "rating", "apmr")
		for _, c := range res.Candidates {
			fmt.Printf("%-16s %6d %6d\n", c, c.Rating, c.APMR)
		}
	}
	if *statsFlag {
		eng.Stats().Dump(os.Stdout)
	}

	san := res.UCI()
	if hasKings(b) {
		if s, err := notation.SAN(b.FEN(b.SideToMove()), res.UCI()); err == nil {
			san = s
		} else {
			log.Debug().Err(err).Msg("san")
		}
	}
	fmt.Printf("%s (%s) rating %d apmr %d\n", res, san, res.Rating, res.APMR)
}

// hasKings reports whether both sides still have a king; SAN needs a
// playable position.
func hasKings(b *board.Board) bool {
	for _, c := range []board.Color{board.White, board.Black} {
		found := false
		for _, p := range b.Team(c).Pieces() {
			found = found || p.Is(board.King)
		}
		if !found {
			return false
		}
	}
	return true
}
