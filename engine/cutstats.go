package engine

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Statistics counts the work done by one selection. Counters are atomic so
// parallel workers can share them.
type Statistics struct {
	Candidates   atomic.Uint64 // candidates built, cached or not
	Followups    atomic.Uint64 // follow-up moves averaged by the evaluator
	TableLookups atomic.Uint64
	TableHits    atomic.Uint64
	TableEntries atomic.Uint64
}

func (s *Statistics) reset() {
	s.Candidates.Store(0)
	s.Followups.Store(0)
	s.TableLookups.Store(0)
	s.TableHits.Store(0)
	s.TableEntries.Store(0)
}

// collect copies the table counters once a selection is done.
func (s *Statistics) collect(tt *transTable) {
	if tt == nil {
		return
	}
	s.TableLookups.Store(tt.lookups.Load())
	s.TableHits.Store(tt.hits.Load())
	s.TableEntries.Store(tt.created.Load())
}

func (s *Statistics) log(l zerolog.Logger) {
	l.Debug().
		Uint64("candidates", s.Candidates.Load()).
		Uint64("followups", s.Followups.Load()).
		Uint64("ttable-lookups", s.TableLookups.Load()).
		Uint64("ttable-hits", s.TableHits.Load()).
		Uint64("ttable-created", s.TableEntries.Load()).
		Msg("selection-stats")
}

// Dump writes the counters as UCI info lines.
func (s *Statistics) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Selection statistics:")
	fmt.Fprintf(w, "info string   Candidates built: %d\n", s.Candidates.Load())
	fmt.Fprintf(w, "info string   Follow-ups averaged: %d\n", s.Followups.Load())
	fmt.Fprintf(w, "info string   Table lookups: %d\n", s.TableLookups.Load())
	fmt.Fprintf(w, "info string   Table hits: %d\n", s.TableHits.Load())
	fmt.Fprintf(w, "info string   Table entries: %d\n", s.TableEntries.Load())
}
