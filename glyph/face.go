package glyph

import (
	"fmt"
	"image"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FromFace rasterizes the characters [first, last] of face into a monospace
// Table.
//
// The cell width is the advance of 'M' and the cell height is the face's
// ascent plus descent, both rounded up. Anti-aliased coverage of at least
// one half turns into a set pixel. Characters the face lacks are left blank.
func FromFace(face font.Face, first, last rune) (*Table, error) {
	if last < first {
		return nil, fmt.Errorf("%w: empty range %q-%q", ErrInvalid, first, last)
	}
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := ascent + m.Descent.Ceil()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv, _ = face.GlyphAdvance(first)
	}
	width := adv.Ceil()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: face cell %dx%d", ErrInvalid, width, height)
	}
	t := &Table{First: first, Last: last, Width: width, PixelHeight: height, Fallback: ' '}
	if t.Fallback < first || t.Fallback > last {
		t.Fallback = first
	}
	rows := (height + 7) / 8
	t.Data = make([]byte, 0, int(last-first+1)*rows*width)
	cell := image.NewAlpha(image.Rect(0, 0, width, height))
	d := font.Drawer{Dst: cell, Src: image.Opaque, Face: face}
	for r := first; r <= last; r++ {
		for i := range cell.Pix {
			cell.Pix[i] = 0
		}
		if _, ok := face.GlyphAdvance(r); ok {
			d.Dot = fixed.P(0, ascent)
			d.DrawString(string(r))
		}
		t.Data = append(t.Data, pack(cell)...)
	}
	return t, nil
}

// TrueType parses a TrueType font and rasterizes printable ASCII at the given
// size in points, at 72 DPI so that one point is one pixel.
func TrueType(ttf []byte, size float64) (*Table, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse truetype: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	return FromFace(face, ' ', '~')
}

func pack(a *image.Alpha) []byte {
	b := a.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, ((h+7)/8)*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a.AlphaAt(b.Min.X+x, b.Min.Y+y).A >= 0x80 {
				out[(y/8)*w+x] |= 1 << uint(y&7)
			}
		}
	}
	return out
}
