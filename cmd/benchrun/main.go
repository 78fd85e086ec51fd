package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// run executes a command, prints its combined output and how long it took.
// Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	start := time.Now()
	err := cmd.Run()
	fmt.Print(out.String())
	fmt.Printf("  (%s %s: %v)\n", name, strings.Join(args, " "), time.Since(start).Round(time.Millisecond))
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

func main() {
	// Run all benchmarks in bench/ with benchmem.
	// Usage: go run ./cmd/benchrun
	// Print a simple header explaining Go's benchmark columns
	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	// Simulation throughput: perft walks every node through Simulate
	fmt.Println("\nSimulation Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	run("go", "run", "./cmd/perft", "-depth", "3", "-label", "Initial")
	run("go", "run", "./cmd/perft", "-depth", "4", "-label", "Initial")
	_ = run("go", "run", "./cmd/perft", "-fen",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"-depth", "3", "-label", "Kiwipete")

	// Also time whole selections at increasing depth with one-line outputs
	fmt.Println("\nSelection Performance:")
	// Initial position depth 1 and 2
	run("go", "run", "./cmd/searchbench", "-depth", "1", "-repeat", "3")
	run("go", "run", "./cmd/searchbench", "-depth", "2")
	// Same with four workers sharing one table
	run("go", "run", "./cmd/searchbench", "-depth", "2", "-workers", "4")
	// Italian-ish middlegame depth 1, memo on and off
	_ = run("go", "run", "./cmd/searchbench", "-fen",
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
		"-depth", "1")
	_ = run("go", "run", "./cmd/searchbench", "-fen",
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
		"-depth", "1", "-memo=false")
	os.Exit(0)
}
