package glyph

// Run is one band of shifted glyph data paired with the page it is written to.
type Run struct {
	Page int
	Data []byte // Width bytes
}

// Placement is a glyph realigned for drawing at a given position.
//
// Runs are ordered top page first. Runs[0] holds the shifted band 0, which
// contains the glyph's top row.
type Placement struct {
	X, Y  int
	Width int
	Mask  Mask
	Runs  []Run
}

// Place computes the pages touched by g drawn with its top left corner at
// (x, y) and the shifted data for each of them.
func Place(g Glyph, x, y int) Placement {
	p := Placement{X: x, Y: y, Width: g.Width, Mask: AffectedPages(y, g.Height)}
	n := p.Mask.Count()
	if n == 0 || g.Width <= 0 {
		return p
	}
	size := g.Rows() * g.Width
	data := g.Data
	if len(data) > size {
		data = data[:size]
	}
	if r := g.Height % PageHeight; r != 0 && len(data) == size {
		// Rows past Height in the last band are not part of the glyph.
		data = append([]byte(nil), data...)
		keep := byte(1)<<uint(r) - 1
		for i := size - g.Width; i < size; i++ {
			data[i] &= keep
		}
	}
	shifted := Shift(data, g.Width, y%PageHeight, n)
	first := p.Mask.First()
	p.Runs = make([]Run, n)
	for i := range p.Runs {
		p.Runs[i] = Run{Page: first + i, Data: shifted[i*g.Width : (i+1)*g.Width]}
	}
	return p
}
