package engine

import (
	"sync"
	"sync/atomic"

	"tactic-engine/board"
)

// ratingDepth marks table entries that hold a candidate's scores rather
// than a lookahead average.
const ratingDepth = -1

// tableKey identifies a move in a position. The origin square stands in for
// the piece: the placement fixes which piece is there, while IDs can differ
// between positions that are otherwise identical.
type tableKey struct {
	hash  uint64
	from  board.Location
	dest  board.Location
	depth int8
}

type scoredEntry struct {
	scores    Scores
	potential []board.Location
}

// transTable remembers ratings and lookahead averages for one selection.
// Scores depend only on the placement, so any candidate reaching the same
// position with the same move can reuse them. Safe for concurrent use.
type transTable struct {
	mu     sync.RWMutex
	scored map[tableKey]scoredEntry
	apmr   map[tableKey]int

	lookups atomic.Uint64
	hits    atomic.Uint64
	created atomic.Uint64
}

func newTransTable() *transTable {
	return &transTable{
		scored: make(map[tableKey]scoredEntry),
		apmr:   make(map[tableKey]int),
	}
}

func (tt *transTable) probeScored(key tableKey) (scoredEntry, bool) {
	tt.lookups.Add(1)
	tt.mu.RLock()
	e, ok := tt.scored[key]
	tt.mu.RUnlock()
	if ok {
		tt.hits.Add(1)
	}
	return e, ok
}

func (tt *transTable) storeScored(key tableKey, e scoredEntry) {
	tt.mu.Lock()
	if _, ok := tt.scored[key]; !ok {
		tt.created.Add(1)
	}
	tt.scored[key] = e
	tt.mu.Unlock()
}

func (tt *transTable) probeAPMR(key tableKey) (int, bool) {
	tt.lookups.Add(1)
	tt.mu.RLock()
	v, ok := tt.apmr[key]
	tt.mu.RUnlock()
	if ok {
		tt.hits.Add(1)
	}
	return v, ok
}

func (tt *transTable) storeAPMR(key tableKey, v int) {
	tt.mu.Lock()
	if _, ok := tt.apmr[key]; !ok {
		tt.created.Add(1)
	}
	tt.apmr[key] = v
	tt.mu.Unlock()
}

// entries returns how many ratings and averages are stored.
func (tt *transTable) entries() (scored, averages int) {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return len(tt.scored), len(tt.apmr)
}
