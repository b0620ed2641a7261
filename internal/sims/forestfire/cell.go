package forestfire

import "fmt"

// Cell is the state of one grid cell. The numeric values double as palette
// indices in the display buffer.
type Cell uint8

const (
	Empty Cell = iota
	Tree
	Burned
	Burning
)

// Valid reports whether c is one of the four defined states.
func (c Cell) Valid() bool { return c <= Burning }

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Tree:
		return "tree"
	case Burned:
		return "burned"
	case Burning:
		return "burning"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Rune returns the single-character glyph used in text frames.
func (c Cell) Rune() rune {
	switch c {
	case Tree:
		return 'T'
	case Burned:
		return '#'
	case Burning:
		return '*'
	default:
		return '.'
	}
}
