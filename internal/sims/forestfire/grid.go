package forestfire

import (
	"fmt"

	"forest-fire/internal/core"
)

// GridState holds the cells, dimensions and tick counter of one run. It is
// created by Initialize and mutated in place by Step; it is not safe for
// concurrent use.
type GridState struct {
	cur  *core.Grid[Cell]
	snap *core.Grid[Cell]

	tick         int
	initialTrees int
}

func newGridState(width, height int) *GridState {
	return &GridState{
		cur:  core.NewGrid[Cell](width, height),
		snap: core.NewGrid[Cell](width, height),
	}
}

// Width returns the number of columns.
func (s *GridState) Width() int { return s.cur.W }

// Height returns the number of rows.
func (s *GridState) Height() int { return s.cur.H }

// Tick returns the number of Step calls since initialization.
func (s *GridState) Tick() int { return s.tick }

// InitialTreeCount returns the number of trees right after initialization.
func (s *GridState) InitialTreeCount() int { return s.initialTrees }

// CellAt returns the state at (row, col).
func (s *GridState) CellAt(row, col int) (Cell, error) {
	if !s.cur.InBounds(col, row) {
		return Empty, s.outOfRange(row, col)
	}
	return s.cur.At(col, row), nil
}

// SetCellAt stores value at (row, col). Values outside the four defined
// states are rejected with ErrInvalidParameter.
func (s *GridState) SetCellAt(row, col int, value Cell) error {
	if !s.cur.InBounds(col, row) {
		return s.outOfRange(row, col)
	}
	if !value.Valid() {
		return fmt.Errorf("set cell (%d,%d) to %v: %w", row, col, value, ErrInvalidParameter)
	}
	s.cur.Set(col, row, value)
	return nil
}

// CountCellsWithState returns how many cells currently equal c.
func (s *GridState) CountCellsWithState(c Cell) int { return s.cur.Count(c) }

// Row returns a copy of row r, or nil when r is out of range.
func (s *GridState) Row(r int) []Cell {
	if r < 0 || r >= s.cur.H {
		return nil
	}
	out := make([]Cell, s.cur.W)
	copy(out, s.cur.Cells()[s.cur.Index(0, r):s.cur.Index(0, r+1)])
	return out
}

// Clone returns an independent deep copy of s.
func (s *GridState) Clone() *GridState {
	c := newGridState(s.cur.W, s.cur.H)
	c.cur.CopyFrom(s.cur)
	c.tick = s.tick
	c.initialTrees = s.initialTrees
	return c
}

// Equal reports whether s and o hold the same dimensions, cells and tick.
func (s *GridState) Equal(o *GridState) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.cur.W != o.cur.W || s.cur.H != o.cur.H || s.tick != o.tick {
		return false
	}
	a, b := s.cur.Cells(), o.cur.Cells()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *GridState) check() error {
	if s == nil || !s.cur.Valid() || s.snap == nil || s.snap.W != s.cur.W || s.snap.H != s.cur.H || !s.snap.Valid() {
		return fmt.Errorf("malformed grid: %w", ErrOutOfRange)
	}
	return nil
}

func (s *GridState) outOfRange(row, col int) error {
	return fmt.Errorf("cell (%d,%d) outside %dx%d grid: %w", row, col, s.cur.H, s.cur.W, ErrOutOfRange)
}
