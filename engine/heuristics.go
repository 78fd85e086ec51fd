package engine

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"tactic-engine/board"
)

// scoring is one run of the pipeline for a single move. Heuristics read the
// board as it stands before the move and simulate when they need the
// position after it.
type scoring struct {
	*scorer
	board.Move
	potential []board.Location
	Scores
}

func (sc *scoring) run(withTeamDiff bool) error {
	sc.attack()
	sc.protect()
	sc.capture()
	if err := sc.defend(); err != nil {
		return fmt.Errorf("defend: %w", err)
	}
	sc.undermine()
	if err := sc.discoverAttack(); err != nil {
		return fmt.Errorf("discovered attack: %w", err)
	}
	sc.battery()
	if err := sc.skewer(); err != nil {
		return fmt.Errorf("skewer: %w", err)
	}
	if err := sc.beCaptured(); err != nil {
		return fmt.Errorf("recapture: %w", err)
	}
	if !withTeamDiff {
		return nil
	}
	if err := sc.teamMoveDiff(); err != nil {
		return fmt.Errorf("team move diff: %w", err)
	}
	return nil
}

// attack sums the enemies standing in the piece's reach from Dest.
func (sc *scoring) attack() {
	for _, l := range sc.potential {
		if e := sc.b.Tile(l).OccupyingEnemyOf(sc.Piece); e != nil {
			sc.AttackValue += e.Value()
			sc.AttackCount++
		}
	}
}

// protect sums the friends standing in the piece's reach from Dest.
func (sc *scoring) protect() {
	for _, l := range sc.potential {
		if f := sc.b.Tile(l).OccupyingFriendlyOf(sc.Piece); f != nil {
			sc.ProtectValue += f.Value()
			sc.ProtectCount++
		}
	}
}

func (sc *scoring) capture() {
	if e := sc.b.Tile(sc.Dest).OccupyingEnemyOf(sc.Piece); e != nil {
		sc.Capture = e.Value()
	}
}

// defend rewards friends for which this move becomes exactly one new
// defender. Friends that gain nothing, or are already covered by this
// piece from where it stands, score 0.
func (sc *scoring) defend() error {
	if sc.ProtectCount == 0 {
		return nil
	}
	for _, l := range sc.potential {
		f := sc.b.Tile(l).OccupyingFriendlyOf(sc.Piece)
		if f == nil {
			continue
		}
		before := f.DefenderCount()
		after, err := board.SimulateValue(sc.b, sc.Piece, sc.Dest, func() (int, error) {
			return f.DefenderCount(), nil
		})
		if err != nil {
			return err
		}
		if after-before == 1 {
			sc.Defend += f.Value()
		}
	}
	return nil
}

// undermine rewards capturing a piece that was defending one of its own:
// half the average piece value, and the other half when the captured piece
// was that friend's only defender.
func (sc *scoring) undermine() {
	if sc.Capture == 0 {
		return
	}
	victim := sc.b.Tile(sc.Dest).OccupyingEnemyOf(sc.Piece)
	guarded := victim.Defending()
	if guarded == nil {
		return
	}
	sc.Undermine += board.AveragePieceValue / 2
	if guarded.DefenderCount() == 1 {
		sc.Undermine += board.AveragePieceValue / 2
	}
}

// discoverAttack scores the change in attacks made by the rest of the team
// when the piece leaves its square. Lines opened count for, lines closed
// count against.
func (sc *scoring) discoverAttack() error {
	team := sc.b.Team(sc.Piece.Color)
	before := team.TotalAttacks(sc.Piece)
	after, err := board.SimulateValue(sc.b, sc.Piece, sc.Dest, func() (int, error) {
		return team.TotalAttacks(sc.Piece), nil
	})
	if err != nil {
		return err
	}
	sc.DiscoverAttack = board.AveragePieceValue * (after - before)
	return nil
}

var rays = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// battery awards a point when the piece, standing on Dest, lines up with a
// friend: the first piece met along some file, rank or diagonal from Dest
// is on its team. The square the piece leaves counts as empty.
func (sc *scoring) battery() {
	from := sc.Piece.Location()
	for _, r := range rays {
		for l := sc.Dest.Offset(r[0], r[1]); l.Valid(); l = l.Offset(r[0], r[1]) {
			if l == from {
				continue
			}
			q := sc.b.PieceAt(l)
			if q == nil {
				continue
			}
			if q.Color == sc.Piece.Color {
				sc.Battery = 1
				return
			}
			break
		}
	}
}

// skewer looks behind every attacked enemy: if lifting it off the board
// leaves the slider attacking as many pieces as before, something of value
// stood behind it on the same line.
func (sc *scoring) skewer() error {
	if !sc.Piece.Kind.IsSlider() || sc.AttackValue <= 0 {
		return nil
	}
	for _, l := range sc.potential {
		e := sc.b.Tile(l).OccupyingEnemyOf(sc.Piece)
		if e == nil {
			continue
		}
		n, err := board.SimulateValue(sc.b, sc.Piece, sc.Dest, func() (int, error) {
			return board.SimulateRemovalValue(sc.b, e, func() (int, error) {
				return len(sc.Piece.Attacked()), nil
			})
		})
		if err != nil {
			return err
		}
		if n == sc.AttackCount {
			sc.Skewer += board.AveragePieceValue
		}
	}
	return nil
}

// beCaptured cancels the gains of a move that can be taken back. A pawn
// only strikes an occupied square, so for pawns the test is run with the
// piece already on Dest; the two answers are combined with XOR. The first
// threatening enemy settles it.
func (sc *scoring) beCaptured() error {
	for _, e := range sc.b.Team(sc.Piece.Color.Opponent()).Pieces() {
		strikes := false
		if e.Is(board.Pawn) {
			var err error
			strikes, err = board.SimulateValue(sc.b, sc.Piece, sc.Dest, func() (bool, error) {
				return sc.b.CanMoveTo(e, sc.Dest), nil
			})
			if err != nil {
				return err
			}
		}
		if strikes != sc.b.CanMoveTo(e, sc.Dest) {
			sc.BeCaptured = -(sc.AttackValue + sc.Capture + sc.Piece.Value() + sc.Skewer)
			return nil
		}
	}
	return nil
}

// teamMoveDiff is the rating of every move the team gains by playing this
// one minus the rating of every move it loses. Gained moves are scored in
// the position after the move, lost ones in the current position.
func (sc *scoring) teamMoveDiff() error {
	team := sc.b.Team(sc.Piece.Color)
	before := byKey(team.MoveList())

	gain := 0
	after, err := board.SimulateValue(sc.b, sc.Piece, sc.Dest, func() (map[board.MoveKey]board.Move, error) {
		team.RefreshStatus()
		after := byKey(team.MoveList())
		for _, k := range sortedKeys(after) {
			if _, ok := before[k]; ok {
				continue
			}
			c, err := sc.candidate(after[k].Piece, k.Dest, false)
			if err != nil {
				return nil, err
			}
			gain += c.Rating
		}
		return after, nil
	})
	if err != nil {
		return err
	}

	loss, lost := 0, 0
	for _, k := range sortedKeys(before) {
		if _, ok := after[k]; ok {
			continue
		}
		c, err := sc.candidate(before[k].Piece, k.Dest, false)
		if err != nil {
			return err
		}
		loss += c.Rating
		lost++
	}
	sc.TeamMoveDiff = gain - loss

	sc.log.Debug().
		Str("move", sc.Move.String()).
		Int("before", len(before)).
		Int("after", len(after)).
		Int("lost", lost).
		Int("gain", gain).
		Int("loss", loss).
		Msg("team-move-diff")
	return nil
}

func byKey(moves []board.Move) map[board.MoveKey]board.Move {
	out := make(map[board.MoveKey]board.Move, len(moves))
	for _, m := range moves {
		out[m.Key()] = m
	}
	return out
}

// sortedKeys gives a fixed evaluation order so nested errors and log lines
// are reproducible.
func sortedKeys(m map[board.MoveKey]board.Move) []board.MoveKey {
	keys := maps.Keys(m)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].PieceID != keys[j].PieceID {
			return keys[i].PieceID < keys[j].PieceID
		}
		return keys[i].Dest.Less(keys[j].Dest)
	})
	return keys
}
