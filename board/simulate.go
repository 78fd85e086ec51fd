package board

import (
	"errors"
	"fmt"
)

// frame is one open simulation: the key the position had when it opened.
type frame struct {
	hash uint64
}

// OpenSimulations reports how many simulations are currently nested.
func (b *Board) OpenSimulations() int { return len(b.frames) }

func (b *Board) pushFrame() int {
	b.frames = append(b.frames, frame{hash: b.pos.ComputeZobrist()})
	return len(b.frames) - 1
}

// popFrame closes the simulation opened at depth idx. It panics if an inner
// simulation is still open or if the position was not restored.
func (b *Board) popFrame(idx int) {
	if idx != len(b.frames)-1 {
		panic(fmt.Errorf("%w: closing frame %d with %d open", ErrSimulationImbalance, idx, len(b.frames)))
	}
	want := b.frames[idx].hash
	b.frames = b.frames[:idx]
	if got := b.pos.ComputeZobrist(); got != want {
		panic(fmt.Errorf("%w: key %016x, want %016x", ErrSimulationImbalance, got, want))
	}
}

// place moves p to dest, capturing whatever stands there, and returns the
// function that puts everything back.
func (b *Board) place(p *Piece, dest Location) (undo func()) {
	idx := b.pushFrame()
	saved := b.snapshot()
	from := p.loc
	victim := b.squares[dest.Square()]

	b.lift(p)
	if victim != nil {
		b.lift(victim)
		victim.captured = true
	}
	b.drop(p, dest)
	b.refresh()

	return func() {
		b.lift(p)
		if victim != nil {
			victim.captured = false
			b.drop(victim, dest)
		}
		b.drop(p, from)
		b.restore(saved)
		b.popFrame(idx)
	}
}

// remove takes p off the board and returns the function that puts it back.
func (b *Board) remove(p *Piece) (undo func()) {
	idx := b.pushFrame()
	saved := b.snapshot()
	at := p.loc

	b.lift(p)
	p.captured = true
	b.refresh()

	return func() {
		p.captured = false
		b.drop(p, at)
		b.restore(saved)
		b.popFrame(idx)
	}
}

func (b *Board) checkSimulation(p *Piece, dest Location, removal bool) error {
	if p == nil || p.captured {
		return &SimulationError{Piece: p, Dest: dest, Err: ErrPieceOffBoard}
	}
	if !removal && (!dest.Valid() || dest == p.loc) {
		return &SimulationError{Piece: p, Dest: dest, Err: ErrInvalidLocation}
	}
	return nil
}

func wrapSimulation(p *Piece, dest Location, err error) error {
	if err == nil {
		return nil
	}
	var se *SimulationError
	if errors.As(err, &se) {
		return err
	}
	return &SimulationError{Piece: p, Dest: dest, Err: err}
}

// Simulate hypothetically moves p to dest, runs fn against the resulting
// position, and restores the board before returning. The board is restored
// on every exit path, including an error or panic inside fn. Simulations
// nest; each must close before its enclosing one continues.
func (b *Board) Simulate(p *Piece, dest Location, fn func() error) error {
	if err := b.checkSimulation(p, dest, false); err != nil {
		return err
	}
	undo := b.place(p, dest)
	defer undo()
	return wrapSimulation(p, dest, fn())
}

// SimulateRemoval is Simulate with p taken off the board instead of moved.
func (b *Board) SimulateRemoval(p *Piece, fn func() error) error {
	if err := b.checkSimulation(p, NoLocation, true); err != nil {
		return err
	}
	undo := b.remove(p)
	defer undo()
	return wrapSimulation(p, NoLocation, fn())
}

// SimulateValue runs Simulate and returns the value computed by fn.
func SimulateValue[T any](b *Board, p *Piece, dest Location, fn func() (T, error)) (T, error) {
	var out T
	err := b.Simulate(p, dest, func() error {
		v, err := fn()
		out = v
		return err
	})
	return out, err
}

// SimulateRemovalValue runs SimulateRemoval and returns the value computed by fn.
func SimulateRemovalValue[T any](b *Board, p *Piece, fn func() (T, error)) (T, error) {
	var out T
	err := b.SimulateRemoval(p, func() error {
		v, err := fn()
		out = v
		return err
	})
	return out, err
}
