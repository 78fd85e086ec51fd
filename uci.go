package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/rs/zerolog"

	"tactic-engine/board"
	"tactic-engine/engine"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
	uciLoop(os.Stdin, os.Stdout, log)
}

// uciSession is the state kept between UCI commands.
type uciSession struct {
	out        io.Writer
	log        zerolog.Logger
	pos        *gm.Board
	cfg        engine.Config
	kingSafety bool
	printStats bool
}

func newSession(out io.Writer, log zerolog.Logger) *uciSession {
	s := &uciSession{out: out, log: log, kingSafety: true}
	s.cfg = engine.DefaultConfig()
	s.cfg.Logger = log
	s.pos, _ = gm.ParseFEN(gm.FENStartPos)
	return s
}

func (s *uciSession) info(format string, args ...any) {
	fmt.Fprintf(s.out, "info string "+format+"\n", args...)
}

func uciLoop(in io.Reader, out io.Writer, log zerolog.Logger) {
	s := newSession(out, log)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(out, "id name TacticEngine 0.1")
			fmt.Fprintln(out, "id author Goose")
			fmt.Fprintf(out, "option name Depth type spin default %d min 1 max %d\n", s.cfg.Depth, engine.MaxDepth)
			fmt.Fprintf(out, "option name Workers type spin default %d min 1 max 64\n", s.cfg.Workers)
			fmt.Fprintf(out, "option name Memoize type check default %t\n", s.cfg.Memoize)
			fmt.Fprintf(out, "option name KingSafety type check default %t\n", s.kingSafety)
			fmt.Fprintln(out, "uciok")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "ucinewgame":
			s.pos, _ = gm.ParseFEN(gm.FENStartPos)
		case "position":
			s.position(tokens[1:])
		case "go":
			s.goCmd(tokens[1:])
		case "setoption":
			s.setOption(tokens[1:])
		case "stats":
			s.printStats = !s.printStats
		case "quit":
			return
		default:
			s.info("Unknown command %s", tokens[0])
		}
	}
}

func (s *uciSession) position(args []string) {
	if len(args) == 0 {
		s.info("Malformed position command")
		return
	}
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		s.pos, _ = gm.ParseFEN(gm.FENStartPos)
	case "fen":
		n := 0
		for n < len(rest) && strings.ToLower(rest[n]) != "moves" {
			n++
		}
		if n == 0 {
			s.info("Invalid fen position")
			return
		}
		pos, err := gm.ParseFEN(strings.Join(rest[:n], " "))
		if err != nil {
			s.info("Invalid fen position: %v", err)
			return
		}
		s.pos = pos
		rest = rest[n:]
	default:
		s.info("Invalid position subcommand")
		return
	}
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, moveStr := range rest[1:] {
		if !s.apply(strings.ToLower(moveStr)) {
			s.info("Move %s not found for position %s", moveStr, s.pos.ToFEN())
			return
		}
	}
}

// apply plays a move given in long algebraic form on the session position.
func (s *uciSession) apply(moveStr string) bool {
	for _, mv := range s.pos.GenerateMoves() {
		if mv.String() != moveStr {
			continue
		}
		ok, _ := s.pos.MakeMove(mv)
		return ok
	}
	return false
}

func (s *uciSession) goCmd(args []string) {
	cfg := s.cfg
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				s.info("Malformed go command option depth")
				continue
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil {
				s.info("Malformed go command option; could not convert depth")
				continue
			}
			cfg.Depth = d
		case "wtime", "btime", "winc", "binc", "movetime", "movestogo", "nodes":
			i++ // selection is depth bound; clock values are ignored
		case "infinite":
		default:
			s.info("Unknown go subcommand %s", args[i])
		}
	}

	eng, err := engine.New(cfg)
	if err != nil {
		s.info("%v", err)
		fmt.Fprintln(s.out, "bestmove 0000")
		return
	}
	b, err := board.FromFEN(s.pos.ToFEN(), board.WithKingSafety(s.kingSafety))
	if err != nil {
		s.info("%v", err)
		fmt.Fprintln(s.out, "bestmove 0000")
		return
	}
	res, err := eng.BestMove(context.Background(), b, b.SideToMove())
	if s.printStats {
		eng.Stats().Dump(s.out)
	}
	switch {
	case errors.Is(err, engine.ErrNoLegalMove):
		s.info("No legal move")
		fmt.Fprintln(s.out, "bestmove 0000")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("selection-failed")
		s.info("%v", err)
		fmt.Fprintln(s.out, "bestmove 0000")
		return
	}
	fmt.Fprintf(s.out, "info depth %d score cp %d string %s apmr %d\n", cfg.Depth, res.Rating, res, res.APMR)
	fmt.Fprintln(s.out, "bestmove", res.UCI())
}

// setOption handles "setoption name <id> value <x>".
func (s *uciSession) setOption(args []string) {
	var name, value []string
	var target *[]string
	for _, tok := range args {
		switch strings.ToLower(tok) {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target == nil {
				s.info("Malformed setoption command")
				return
			}
			*target = append(*target, tok)
		}
	}
	if len(value) == 0 {
		s.info("Malformed setoption command; missing value")
		return
	}
	val := strings.Join(value, " ")

	switch strings.ToLower(strings.Join(name, "")) {
	case "depth":
		n, err := strconv.Atoi(val)
		if err != nil {
			s.info("Could not convert depth %q", val)
			return
		}
		cfg := s.cfg
		cfg.Depth = n
		if err := cfg.Validate(); err != nil {
			s.info("%v", err)
			return
		}
		s.cfg = cfg
	case "workers":
		n, err := strconv.Atoi(val)
		if err != nil {
			s.info("Could not convert workers %q", val)
			return
		}
		cfg := s.cfg
		cfg.Workers = n
		if err := cfg.Validate(); err != nil {
			s.info("%v", err)
			return
		}
		s.cfg = cfg
	case "memoize":
		on, err := strconv.ParseBool(val)
		if err != nil {
			s.info("Could not convert memoize %q", val)
			return
		}
		s.cfg.Memoize = on
	case "kingsafety":
		on, err := strconv.ParseBool(val)
		if err != nil {
			s.info("Could not convert kingsafety %q", val)
			return
		}
		s.kingSafety = on
	default:
		s.info("Unknown option %s", strings.Join(name, " "))
	}
}
