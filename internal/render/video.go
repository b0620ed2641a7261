package render

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// VideoWriter appends frames to an MJPEG AVI file.
type VideoWriter struct {
	aw    mjpeg.AviWriter
	w, h  int
	scale int
	buf   bytes.Buffer
}

// NewVideoWriter creates path for frames of w×h cells scaled by scale.
func NewVideoWriter(path string, w, h, scale, fps int) (*VideoWriter, error) {
	if scale < 1 {
		scale = 1
	}
	if fps < 1 {
		fps = 1
	}
	aw, err := mjpeg.New(path, int32(w*scale), int32(h*scale), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", path, err)
	}
	return &VideoWriter{aw: aw, w: w, h: h, scale: scale}, nil
}

// Add encodes one frame. Frames must match the dimensions given at creation.
func (v *VideoWriter) Add(f Frame) error {
	if f.W != v.w || f.H != v.h {
		return fmt.Errorf("video frame is %dx%d, want %dx%d", f.W, f.H, v.w, v.h)
	}
	img := Image(f.Cells, f.W, f.H, f.Palette, v.scale)
	if img == nil {
		return fmt.Errorf("video frame has %d cells, want %d", len(f.Cells), f.W*f.H)
	}
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return err
	}
	return v.aw.AddFrame(v.buf.Bytes())
}

// Close finalizes the AVI index.
func (v *VideoWriter) Close() error { return v.aw.Close() }
