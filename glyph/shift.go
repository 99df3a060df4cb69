package glyph

// Shift realigns band-major column data so that it starts shift pixel rows
// below a page boundary. data holds width bytes per band; the result holds
// exactly width*pages bytes.
//
// With shift 0 the first pages bands are copied as they are, zero filled when
// data is shorter. Otherwise bit r of input band k lands in bit (r+shift)%8 of
// output band k+(r+shift)/8. Bits that would land at or beyond band pages are
// dropped, so a single page glyph is moved within its page and never grows
// into the next one.
//
// shift must be in [0, 8).
func Shift(data []byte, width, shift, pages int) []byte {
	if width <= 0 || pages <= 0 {
		return nil
	}
	out := make([]byte, width*pages)
	if shift == 0 {
		copy(out, data)
		return out
	}
	s := uint(shift & 7)
	rows := len(data) / width
	for k := 0; k < rows && k < pages; k++ {
		in := data[k*width : (k+1)*width]
		lo := out[k*width : (k+1)*width]
		for c, b := range in {
			lo[c] |= b << s
		}
		if k+1 >= pages {
			continue
		}
		hi := out[(k+1)*width : (k+2)*width]
		for c, b := range in {
			hi[c] |= b >> (8 - s)
		}
	}
	return out
}

// Unshift is the inverse of Shift. It folds data, produced by Shift with the
// same shift, back into rows bands starting on a page boundary.
func Unshift(data []byte, width, shift, rows int) []byte {
	if width <= 0 || rows <= 0 {
		return nil
	}
	out := make([]byte, width*rows)
	if shift == 0 {
		copy(out, data)
		return out
	}
	s := uint(shift & 7)
	pages := len(data) / width
	for k := 0; k < rows && k < pages; k++ {
		dst := out[k*width : (k+1)*width]
		cur := data[k*width : (k+1)*width]
		for c := range dst {
			dst[c] = cur[c] >> s
		}
		if k+1 >= pages {
			continue
		}
		next := data[(k+1)*width : (k+2)*width]
		for c := range dst {
			dst[c] |= next[c] << (8 - s)
		}
	}
	return out
}
