package render

import (
	"image/color"

	"forest-fire/internal/core"
)

// Frame is one snapshot of a sim's display buffer.
type Frame struct {
	W, H    int
	Cells   []uint8
	Palette []color.RGBA
}

// Capture copies the current display buffer of sim.
func Capture(sim core.Sim) Frame {
	size := sim.Size()
	return Frame{
		W:       size.W,
		H:       size.H,
		Cells:   append([]uint8(nil), sim.Cells()...),
		Palette: sim.Palette(),
	}
}
