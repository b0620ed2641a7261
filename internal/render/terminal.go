package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Terminal writes frames as text, one glyph per cell, colored with the
// frame palette when the output supports it.
type Terminal struct {
	out    *termenv.Output
	color  bool
	glyphs []rune
}

// NewTerminal returns a Terminal writing to w. glyphs maps cell values to
// characters; values past its end print as '?'. Color is enabled only when w
// is an interactive terminal.
func NewTerminal(w io.Writer, glyphs []rune) *Terminal {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		profile = termenv.EnvColorProfile()
	}
	return &Terminal{
		out:    termenv.NewOutput(w, termenv.WithProfile(profile)),
		color:  profile != termenv.Ascii,
		glyphs: glyphs,
	}
}

// Draw writes the frame followed by an optional caption line.
func (t *Terminal) Draw(f Frame, caption string) error {
	if len(f.Cells) != f.W*f.H {
		return fmt.Errorf("frame is %dx%d with %d cells", f.W, f.H, len(f.Cells))
	}
	bw := bufio.NewWriter(t.out)
	var colors []termenv.Color
	if t.color {
		colors = make([]termenv.Color, len(f.Palette))
		for i, c := range f.Palette {
			colors[i] = t.out.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
		}
	}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			v := int(f.Cells[y*f.W+x])
			g := '?'
			if v < len(t.glyphs) {
				g = t.glyphs[v]
			}
			if v >= len(colors) {
				if _, err := bw.WriteRune(g); err != nil {
					return err
				}
				continue
			}
			if _, err := bw.WriteString(t.out.String(string(g)).Foreground(colors[v]).String()); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if caption != "" {
		if _, err := fmt.Fprintln(bw, caption); err != nil {
			return err
		}
	}
	return bw.Flush()
}
