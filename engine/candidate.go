// Package engine picks a move for one side by scoring every candidate move
// along a set of tactical heuristics and averaging the scores of each
// candidate's follow-ups down to a fixed depth.
package engine

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"tactic-engine/board"
)

// Scores is the immutable record produced by the scoring pipeline. Stages
// run in field order and each one may read the fields above it.
type Scores struct {
	AttackValue    int
	AttackCount    int
	ProtectValue   int
	ProtectCount   int
	Capture        int
	Defend         int
	Undermine      int
	DiscoverAttack int
	Battery        int
	Skewer         int
	BeCaptured     int
	TeamMoveDiff   int
}

// Total is the aggregate rating: every value term, counts excluded.
func (s Scores) Total() int {
	return s.AttackValue + s.ProtectValue + s.Capture + s.Defend + s.Undermine +
		s.DiscoverAttack + s.Battery + s.Skewer + s.BeCaptured + s.TeamMoveDiff
}

// Candidate is a move enriched with its heuristic scores.
type Candidate struct {
	board.Move
	// PotentialMoves is the reach of the piece once it stands on Dest.
	PotentialMoves []board.Location
	Scores         Scores
	// Rating is fixed at construction.
	Rating int
	// APMR is filled in by the evaluator.
	APMR int

	index int
}

func (c *Candidate) String() string {
	return fmt.Sprintf("move %s %s", c.Piece, c.Dest)
}

// NewCandidate scores moving p to dest on b. With withTeamDiff the rating
// also carries the team move differential, whose nested candidates are
// always built without it.
func NewCandidate(b *board.Board, p *board.Piece, dest board.Location, withTeamDiff bool) (*Candidate, error) {
	s := &scorer{b: b, stats: &Statistics{}, log: zerolog.Nop()}
	return s.candidate(p, dest, withTeamDiff)
}

// scorer builds candidates against one board. A nil table disables caching.
type scorer struct {
	b     *board.Board
	table *transTable
	stats *Statistics
	log   zerolog.Logger
}

func (s *scorer) key(p *board.Piece, dest board.Location, depth int) tableKey {
	return tableKey{hash: s.b.Hash(), from: p.Location(), dest: dest, depth: int8(depth)}
}

func (s *scorer) candidate(p *board.Piece, dest board.Location, withTeamDiff bool) (*Candidate, error) {
	s.stats.Candidates.Add(1)
	var key tableKey
	if s.table != nil && !withTeamDiff {
		key = s.key(p, dest, ratingDepth)
		if e, ok := s.table.probeScored(key); ok {
			return newCandidate(p, dest, slices.Clone(e.potential), e.scores), nil
		}
	}

	potential, err := board.SimulateValue(s.b, p, dest, func() ([]board.Location, error) {
		return s.b.Reach(p), nil
	})
	if err != nil {
		return nil, err
	}
	sc := &scoring{scorer: s, Move: board.Move{Piece: p, Dest: dest}, potential: potential}
	if err := sc.run(withTeamDiff); err != nil {
		return nil, fmt.Errorf("scoring %s to %s: %w", p, dest, err)
	}

	if s.table != nil && !withTeamDiff {
		s.table.storeScored(key, scoredEntry{scores: sc.Scores, potential: potential})
		potential = slices.Clone(potential)
	}
	return newCandidate(p, dest, potential, sc.Scores), nil
}

func newCandidate(p *board.Piece, dest board.Location, potential []board.Location, sc Scores) *Candidate {
	return &Candidate{
		Move:           board.Move{Piece: p, Dest: dest},
		PotentialMoves: potential,
		Scores:         sc,
		Rating:         sc.Total(),
	}
}
