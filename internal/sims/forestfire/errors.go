package forestfire

import "errors"

var (
	// ErrInvalidParameter reports non-positive dimensions or a tree
	// probability outside [0, 1].
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrOutOfRange reports a coordinate outside the grid or a malformed grid.
	ErrOutOfRange = errors.New("out of range")
)
