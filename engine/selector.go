package engine

import (
	"cmp"
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"tactic-engine/board"
)

// Engine selects moves. One Engine runs one selection at a time.
type Engine struct {
	cfg        Config
	log        zerolog.Logger
	stats      Statistics
	candidates []*Candidate
}

// New validates cfg and builds an engine around it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, log: cfg.Logger}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Stats returns the counters of the last selection.
func (e *Engine) Stats() *Statistics { return &e.stats }

// Candidates returns the working set of the last selection in enumeration
// order.
func (e *Engine) Candidates() []*Candidate { return e.candidates }

// Result is the outcome of a selection.
type Result struct {
	Move   board.Move
	From   board.Location
	Rating int
	APMR   int
	// Candidates holds every candidate, ranked ascending; the chosen move
	// is last.
	Candidates []*Candidate
}

func (r Result) String() string {
	return fmt.Sprintf("move %s %s", r.Move.Piece, r.Move.Dest)
}

// UCI renders the move in long algebraic form. Pawns reaching the last
// rank promote to a queen.
func (r Result) UCI() string {
	s := r.From.String() + r.Move.Dest.String()
	if r.Move.Piece.Is(board.Pawn) && (r.Move.Dest.Rank == 0 || r.Move.Dest.Rank == 7) {
		s += "q"
	}
	return s
}

// Compare orders candidates by APMR, then by immediate rating. Remaining
// ties go to the candidate enumerated first, which compares greater so it
// ends up last in an ascending sort.
func Compare(a, b *Candidate) int {
	if c := cmp.Compare(a.APMR, b.APMR); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Rating, b.Rating); c != 0 {
		return c
	}
	return cmp.Compare(b.index, a.index)
}

// BestMove picks the move for color on b. Every legal move becomes a
// candidate, every candidate gets its APMR at the configured depth, and
// the greatest under Compare wins. b is left as it was found.
func (e *Engine) BestMove(ctx context.Context, b *board.Board, color board.Color) (Result, error) {
	e.candidates = e.candidates[:0]
	e.stats.reset()
	log := e.log.With().Str("team", color.String()).Int("depth", e.cfg.Depth).Logger()

	moves := b.Team(color).MoveList()
	if len(moves) == 0 {
		return Result{}, fmt.Errorf("%s to move: %w", color, ErrNoLegalMove)
	}
	log.Debug().Int("candidates", len(moves)).Int("workers", e.cfg.Workers).Msg("selection-start")

	var tt *transTable
	if e.cfg.Memoize {
		tt = newTransTable()
	}

	cands := make([]*Candidate, len(moves))
	var err error
	if workers := clamp(e.cfg.Workers, 1, len(moves)); workers == 1 {
		err = e.evaluateSerial(ctx, b, tt, moves, cands)
	} else {
		err = e.evaluateParallel(ctx, b, tt, moves, cands, workers)
	}
	e.stats.collect(tt)
	if err != nil {
		return Result{}, err
	}
	for i, c := range cands {
		c.index = i
	}
	e.candidates = append(e.candidates, cands...)

	ranked := slices.Clone(cands)
	sort.Slice(ranked, func(i, j int) bool { return Compare(ranked[i], ranked[j]) < 0 })
	for _, c := range ranked {
		log.Debug().
			Str("move", c.String()).
			Int("rating", c.Rating).
			Int("apmr", c.APMR).
			Msg("candidate")
	}

	best := ranked[len(ranked)-1]
	e.stats.log(log)
	if tt != nil {
		scored, averages := tt.entries()
		log.Debug().Int("ratings", scored).Int("averages", averages).Msg("ttable-size")
	}
	log.Debug().Str("move", best.String()).Int("rating", best.Rating).Int("apmr", best.APMR).Msg("selection-done")

	return Result{
		Move:       best.Move,
		From:       best.Piece.Location(),
		Rating:     best.Rating,
		APMR:       best.APMR,
		Candidates: ranked,
	}, nil
}

func (e *Engine) evaluate(ev *Evaluator, p *board.Piece, dest board.Location) (*Candidate, error) {
	c, err := ev.Candidate(p, dest, true)
	if err != nil {
		return nil, err
	}
	if _, err := ev.APMR(c, e.cfg.Depth); err != nil {
		return nil, fmt.Errorf("lookahead for %s: %w", c, err)
	}
	return c, nil
}

func (e *Engine) evaluateSerial(ctx context.Context, b *board.Board, tt *transTable, moves []board.Move, out []*Candidate) error {
	ev := newEvaluator(b, tt, &e.stats, e.log)
	for i, m := range moves {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := e.evaluate(ev, m.Piece, m.Dest)
		if err != nil {
			return err
		}
		out[i] = c
	}
	return nil
}

// evaluateParallel hands moves out to workers, each owning a clone of b.
// Candidates are rebound to the caller's pieces before they are returned.
func (e *Engine) evaluateParallel(ctx context.Context, b *board.Board, tt *transTable, moves []board.Move, out []*Candidate, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range moves {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		w := w
		clone := b.Clone()
		g.Go(func() error {
			ev := newEvaluator(clone, tt, &e.stats, e.log.With().Int("worker", w).Logger())
			for i := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				m := moves[i]
				c, err := e.evaluate(ev, clone.PieceByID(m.Piece.ID), m.Dest)
				if err != nil {
					return err
				}
				c.Piece = m.Piece
				out[i] = c
			}
			return nil
		})
	}
	return g.Wait()
}
