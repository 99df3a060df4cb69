package glyph

import (
	"math/bits"
	"strings"
)

// PageHeight is the number of pixel rows stored in one page byte.
const PageHeight = 8

// Mask has bit i set when page i is touched by a glyph placement.
type Mask uint8

// AffectedPages returns the pages whose 8-row bands overlap the pixel rows
// [y, y+height).
//
// The result is a contiguous run of bits. Bands at index 8 or above cannot be
// represented and are left out. A non-positive height touches nothing.
func AffectedPages(y, height int) Mask {
	if height <= 0 || y < 0 {
		return 0
	}
	first := y / PageHeight
	last := (y + height - 1) / PageHeight
	var m Mask
	for p := first; p <= last && p < 8; p++ {
		m |= 1 << uint(p)
	}
	return m
}

// Count returns the number of pages set.
func (m Mask) Count() int {
	return bits.OnesCount8(uint8(m))
}

// Pages returns the page indexes set, top page first.
func (m Mask) Pages() []int {
	out := make([]int, 0, m.Count())
	for p := 0; p < 8; p++ {
		if m&(1<<uint(p)) != 0 {
			out = append(out, p)
		}
	}
	return out
}

// First returns the lowest page set, or -1 for an empty mask.
func (m Mask) First() int {
	if m == 0 {
		return -1
	}
	return bits.TrailingZeros8(uint8(m))
}

// Contiguous reports whether the set pages form a single run.
func (m Mask) Contiguous() bool {
	if m == 0 {
		return true
	}
	v := uint8(m) >> uint(m.First())
	return v&(v+1) == 0
}

func (m Mask) String() string {
	var sb strings.Builder
	sb.WriteString("0b")
	for p := 7; p >= 0; p-- {
		if m&(1<<uint(p)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
