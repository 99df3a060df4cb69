package pcd8544

import (
	"fmt"

	"periph.io/x/devices/v3/pcd8544/glyph"
	"periph.io/x/devices/v3/pcd8544/image1bit"
)

// Print writes s straight to the panel with its top left corner at column x of
// page. Each glyph band is streamed to the next page down.
//
// The framebuffer is not updated, so a later Flush overwrites the text.
func (d *Dev) Print(s string, x, page int, f glyph.Font) error {
	if d.halted {
		return ErrHalted
	}
	glyphs, w, err := layout(s, f)
	if err != nil {
		return err
	}
	rows := (f.Height() + 7) / 8
	if x < 0 || page < 0 || x+w > Width || page+rows > Pages {
		return fmt.Errorf("%w: %q at column %d page %d", ErrOutOfRange, s, x, page)
	}
	for _, g := range glyphs {
		for k := 0; k < g.Rows(); k++ {
			if err := d.SetXY(x, page+k); err != nil {
				return err
			}
			if err := d.sendData(g.Row(k)); err != nil {
				return err
			}
		}
		x += g.Width
	}
	return nil
}

// PrintBuffered draws s into the framebuffer with its top left corner at
// (x, y). y does not need to be on a page boundary.
//
// With Invert on, the text is drawn light on dark.
func (d *Dev) PrintBuffered(s string, x, y int, f glyph.Font) error {
	glyphs, w, err := layout(s, f)
	if err != nil || len(glyphs) == 0 {
		return err
	}
	if err := d.fits(x, y, w, f.Height()); err != nil {
		return fmt.Errorf("%w: %q", err, s)
	}
	op := d.op(true)
	for _, g := range glyphs {
		if err := d.compose(g, x, y, op); err != nil {
			return err
		}
		x += g.Width
	}
	return nil
}

// PutChar draws a custom glyph, such as an icon, into the framebuffer with its
// top left corner at (x, y).
//
// With Invert on, the glyph's pixels are cleared instead of set.
func (d *Dev) PutChar(g glyph.Glyph, x, y int) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := d.fits(x, y, g.Width, g.Height); err != nil {
		return err
	}
	return d.compose(g, x, y, d.op(false))
}

// op returns the composition used for text or other glyphs.
func (d *Dev) op(text bool) image1bit.Op {
	switch {
	case d.invert && text:
		return image1bit.OpInvertText
	case d.invert:
		return image1bit.OpErase
	default:
		return image1bit.OpPaint
	}
}

func (d *Dev) compose(g glyph.Glyph, x, y int, op image1bit.Op) error {
	p := glyph.Place(g, x, y)
	for _, r := range p.Runs {
		if err := d.buf.ComposeRow(p.X, r.Page, r.Data, op); err != nil {
			return fmt.Errorf("pcd8544: %w", err)
		}
	}
	return nil
}

func (d *Dev) fits(x, y, w, h int) error {
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > Width || y+h > Height {
		return fmt.Errorf("%w: %dx%d at (%d, %d)", ErrOutOfRange, w, h, x, y)
	}
	return nil
}

// layout looks up the glyphs of s and returns them with their total width.
func layout(s string, f glyph.Font) ([]glyph.Glyph, int, error) {
	var out []glyph.Glyph
	w := 0
	for _, r := range s {
		g := f.Glyph(r)
		if err := g.Validate(); err != nil {
			return nil, 0, fmt.Errorf("pcd8544: glyph %q: %w", r, err)
		}
		out = append(out, g)
		w += g.Width
	}
	return out, w, nil
}
