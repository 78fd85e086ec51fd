package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"tactic-engine/board"
)

// Evaluator computes average potential move ratings on one board. It is
// not safe for concurrent use; parallel callers give each goroutine its own
// board clone and evaluator, sharing only the table.
type Evaluator struct {
	scorer
}

// NewEvaluator returns an evaluator for b. With memoize on, ratings and
// averages are cached for the lifetime of the evaluator.
func NewEvaluator(b *board.Board, memoize bool, log zerolog.Logger) *Evaluator {
	var tt *transTable
	if memoize {
		tt = newTransTable()
	}
	return newEvaluator(b, tt, &Statistics{}, log)
}

func newEvaluator(b *board.Board, tt *transTable, stats *Statistics, log zerolog.Logger) *Evaluator {
	return &Evaluator{scorer{b: b, table: tt, stats: stats, log: log}}
}

// Candidate scores moving p to dest on the evaluator's board.
func (e *Evaluator) Candidate(p *board.Piece, dest board.Location, withTeamDiff bool) (*Candidate, error) {
	return e.candidate(p, dest, withTeamDiff)
}

// APMR is the average potential move rating of c looking depth plies past
// its follow-ups. At depth 0 it is the mean rating of the follow-ups; above
// that it is the mean of their own averages at depth-1. Means truncate
// toward zero and a candidate without follow-ups scores 0. The result is
// also stored in c.APMR.
//
// c must have been built in the board's current position.
func (e *Evaluator) APMR(c *Candidate, depth int) (int, error) {
	if depth < 0 {
		return 0, fmt.Errorf("%w: negative depth %d", ErrInvalidConfig, depth)
	}
	if len(c.PotentialMoves) == 0 {
		c.APMR = 0
		return 0, nil
	}

	var key tableKey
	if e.table != nil {
		key = e.key(c.Piece, c.Dest, depth)
		if v, ok := e.table.probeAPMR(key); ok {
			c.APMR = v
			return v, nil
		}
	}

	ratings := make([]int, 0, len(c.PotentialMoves))
	for _, l := range c.PotentialMoves {
		l := l
		v, err := board.SimulateValue(e.b, c.Piece, c.Dest, func() (int, error) {
			e.stats.Followups.Add(1)
			f, err := e.candidate(c.Piece, l, false)
			if err != nil {
				return 0, err
			}
			if depth == 0 {
				return f.Rating, nil
			}
			return e.APMR(f, depth-1)
		})
		if err != nil {
			return 0, err
		}
		ratings = append(ratings, v)
	}

	c.APMR = truncMean(ratings)
	if e.table != nil {
		e.table.storeAPMR(key, c.APMR)
	}
	return c.APMR, nil
}
