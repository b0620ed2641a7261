package forestfire

import (
	"fmt"

	pcore "forest-fire/pkg/core"
)

// Orthogonal neighbor offsets as (drow, dcol).
var neighbors = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Initialize builds a fresh grid: column 0 is the burning ignition front and
// every other cell becomes a tree when a draw from rng is <= treeProbability.
// Cells are drawn row by row, left to right.
func Initialize(width, height int, treeProbability float64, rng pcore.Source) (*GridState, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", height, width, ErrInvalidParameter)
	}
	if !(treeProbability >= 0 && treeProbability <= 1) {
		return nil, fmt.Errorf("tree probability %v: %w", treeProbability, ErrInvalidParameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source: %w", ErrInvalidParameter)
	}

	s := newGridState(width, height)
	for row := 0; row < height; row++ {
		s.cur.Set(0, row, Burning)
		for col := 1; col < width; col++ {
			if rng.Float64() <= treeProbability {
				s.cur.Set(col, row, Tree)
			}
		}
	}
	s.initialTrees = s.cur.Count(Tree)
	s.tick = 0
	return s, nil
}

// Step advances state by one tick and reports whether the fire is out.
// It returns true when no cell is Burning once the call completes: on the
// call that burns out the last fire, and on every later call.
//
// Neighbor reads use a snapshot taken at the start of the call, so a tree
// ignited during this tick does not spread until the next one. Edges block:
// out-of-bounds neighbors are skipped. A call on a grid without burning cells
// only advances the tick.
func Step(state *GridState) (bool, error) {
	if err := state.check(); err != nil {
		return false, err
	}
	state.tick++
	if state.cur.Count(Burning) == 0 {
		return true, nil
	}

	state.snap.CopyFrom(state.cur)
	snap, live := state.snap, state.cur
	ignited := 0
	for row := 0; row < snap.H; row++ {
		for col := 0; col < snap.W; col++ {
			if snap.At(col, row) != Burning {
				continue
			}
			for _, d := range neighbors {
				r, c := row+d[0], col+d[1]
				if !snap.InBounds(c, r) || snap.At(c, r) != Tree {
					continue
				}
				if live.At(c, r) == Tree {
					live.Set(c, r, Burning)
					ignited++
				}
			}
			live.Set(col, row, Burned)
		}
	}
	return ignited == 0, nil
}

// Burn steps state until the fire is out or limit ticks have been taken in
// this call (limit <= 0 means no limit). It returns the number of steps taken
// and whether the fire is out.
func Burn(state *GridState, limit int) (int, bool, error) {
	steps := 0
	for limit <= 0 || steps < limit {
		done, err := Step(state)
		if err != nil {
			return steps, false, err
		}
		steps++
		if done {
			return steps, true, nil
		}
	}
	return steps, false, nil
}
