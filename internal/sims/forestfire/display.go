package forestfire

import "image/color"

// Palette indices follow the Cell values: white, green, black, red.
var palette = []color.RGBA{
	Empty:   {R: 255, G: 255, B: 255, A: 255},
	Tree:    {R: 0, G: 128, B: 0, A: 255},
	Burned:  {R: 0, G: 0, B: 0, A: 255},
	Burning: {R: 255, G: 0, B: 0, A: 255},
}

// Palette exposes the color palette used for rendering the forest.
func (f *Forest) Palette() []color.RGBA { return palette }

func (f *Forest) rebuildDisplay() {
	if f.state == nil {
		return
	}
	cells := f.state.cur.Cells()
	if len(f.display) != len(cells) {
		f.display = make([]uint8, len(cells))
	}
	for i, c := range cells {
		f.display[i] = uint8(c)
	}
}
