package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/pkg/profile"

	"tactic-engine/board"
)

func main() {
	fen := flag.String("fen", gm.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	kingSafety := flag.Bool("king-safety", true, "Exclude moves that leave the king attacked")
	prof := flag.String("profile", "", "cpu or mem; profile is written to the working directory")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	b, err := board.FromFEN(*fen, board.WithKingSafety(*kingSafety))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FromFEN error: %v\n", err)
		os.Exit(2)
	}

	// Optional divide output
	if *divide {
		div, err := board.PerftDivide(b, b.SideToMove(), *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "perft: %v\n", err)
			os.Exit(1)
		}
		var sum uint64
		for _, x := range div {
			fmt.Printf("%s%s: %d\n", x.Move.Piece.Location(), x.Move.Dest, x.Nodes)
			sum += x.Nodes
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *prof)
		os.Exit(2)
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		n, err := board.Perft(b, b.SideToMove(), *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "perft: %v\n", err)
			os.Exit(1)
		}
		totalNodes += n
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}
