// Package glyph provides the bitmaps drawn on a paged monochrome panel and the
// arithmetic that maps them onto 8-pixel-high pages.
//
// A Glyph is stored in the panel's native layout: one byte per column for each
// 8-row band, bands stored one after the other. Bit 0 of a byte is the top row
// of its band.
//
// Memory layout example for a 3x10 glyph (2 bands):
//
//	Data[0:3] band 0, rows 0-7, columns 0-2
//	Data[3:6] band 1, rows 8-9 in bits 0-1, columns 0-2
//
// A glyph drawn at a page-aligned y lands in the framebuffer byte for byte.
package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalid is returned by Validate for glyphs whose data does not match
// their dimensions.
var ErrInvalid = errors.New("glyph: invalid glyph")

// Glyph is an immutable rectangular bitmap.
type Glyph struct {
	Width  int    // Columns
	Height int    // Pixel rows, any value, not only multiples of 8
	Data   []byte // Rows()*Width bytes, band-major
}

// Rows returns the number of 8-pixel bands needed to store the glyph.
func (g Glyph) Rows() int {
	return (g.Height + 7) / 8
}

// Row returns the column bytes of band k.
func (g Glyph) Row(k int) []byte {
	return g.Data[k*g.Width : (k+1)*g.Width]
}

// Pixel reports whether the pixel at (x, y) is set. Pixels outside the glyph
// are never set.
func (g Glyph) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	i := (y/8)*g.Width + x
	if i >= len(g.Data) {
		return false
	}
	return g.Data[i]&(1<<uint(y&7)) != 0
}

// Validate checks that the glyph has positive dimensions and enough data.
func (g Glyph) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, g.Width, g.Height)
	}
	if want := g.Rows() * g.Width; len(g.Data) < want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrInvalid, g.Width, g.Height, want, len(g.Data))
	}
	return nil
}

// FromImage converts an image into a glyph the size of its bounds.
//
// A pixel is set when it is dark and mostly opaque, so black ink on a white
// canvas turns into set bits.
func FromImage(img image.Image) Glyph {
	b := img.Bounds()
	g := Glyph{Width: b.Dx(), Height: b.Dy()}
	g.Data = make([]byte, g.Rows()*g.Width)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !dark(img.At(x, y)) {
				continue
			}
			gx, gy := x-b.Min.X, y-b.Min.Y
			g.Data[(gy/8)*g.Width+gx] |= 1 << uint(gy&7)
		}
	}
	return g
}

func dark(c color.Color) bool {
	r, gr, b, a := c.RGBA()
	if a < 0x8000 {
		return false
	}
	// Same weights as color.GrayModel.
	y := (19595*r + 38470*gr + 7471*b + 1<<15) >> 16
	return y < 0x8000
}
