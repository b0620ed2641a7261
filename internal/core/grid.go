package core

// Grid stores a 2D grid of comparable cell values in row-major order.
// Coordinates are (x, y) with x the column and y the row.
type Grid[T comparable] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions. Non-positive
// dimensions are clamped to 1.
func NewGrid[T comparable](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid. Edges do not wrap.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y). The caller must check InBounds.
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set stores v at (x, y). The caller must check InBounds.
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.W+x] = v }

// Count returns how many cells hold v.
func (g *Grid[T]) Count(v T) int {
	n := 0
	for _, c := range g.data {
		if c == v {
			n++
		}
	}
	return n
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// CopyFrom overwrites g with the contents of src. It reports false and leaves
// g untouched when the dimensions differ.
func (g *Grid[T]) CopyFrom(src *Grid[T]) bool {
	if src == nil || src.W != g.W || src.H != g.H || len(src.data) != len(g.data) {
		return false
	}
	copy(g.data, src.data)
	return true
}

// Valid reports whether the backing slice matches the declared dimensions.
func (g *Grid[T]) Valid() bool {
	return g != nil && g.W > 0 && g.H > 0 && len(g.data) == g.W*g.H
}
