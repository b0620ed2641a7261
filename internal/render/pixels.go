package render

import (
	"image"
	"image/color"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last color.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image paints a w×h cell buffer into a new RGBA image, each cell becoming a
// scale×scale block. It returns nil when cells does not match w×h.
func Image(cells []uint8, w, h int, palette []color.RGBA, scale int) *image.RGBA {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil
	}
	if scale < 1 {
		scale = 1
	}
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPaletteRGBA(base.Pix, cells, palette)
	if scale == 1 {
		return base
	}

	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h*scale; y++ {
		src := base.Pix[(y/scale)*base.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w*scale; x++ {
			copy(dst[x*4:x*4+4], src[(x/scale)*4:(x/scale)*4+4])
		}
	}
	return img
}
