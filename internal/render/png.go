package render

import (
	"fmt"
	"image/png"
	"os"
)

// WritePNG encodes a rendered frame to path.
func WritePNG(path string, f Frame, scale int) error {
	img := Image(f.Cells, f.W, f.H, f.Palette, scale)
	if img == nil {
		return fmt.Errorf("png %s: frame is %dx%d with %d cells", path, f.W, f.H, len(f.Cells))
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("png %s: %w", path, err)
	}
	return out.Close()
}
