package image1bit

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrOutOfRange is returned when a write does not fit in the image.
var ErrOutOfRange = errors.New("image1bit: out of range")

// Bit is a 1-bit color. On is a dark pixel on the LCD.
type Bit bool

const (
	Off Bit = false
	On  Bit = true
)

// RGBA converts the Bit to black for On and white for Off.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0, 0, 0, 0xFFFF
	}
	return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit.
// Dark, mostly opaque colors are On.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return Off
	}
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	return Bit(y < 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// Op selects how a source byte is merged into a framebuffer byte.
type Op int

const (
	// OpPaint sets the source bits: dst |= src.
	OpPaint Op = iota
	// OpInvertText paints the complement of the source: dst |= ^src.
	OpInvertText
	// OpErase clears the source bits: dst &^= src.
	OpErase
)

func (o Op) String() string {
	switch o {
	case OpPaint:
		return "Paint"
	case OpInvertText:
		return "InvertText"
	case OpErase:
		return "Erase"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

func (o Op) apply(dst, src byte) byte {
	switch o {
	case OpInvertText:
		return dst | ^src
	case OpErase:
		return dst &^ src
	default:
		return dst | src
	}
}

// VerticalLSB is a 1-bit image stored as pages of 8 rows, one byte per column
// per page, LSB at the top.
type VerticalLSB struct {
	Pix    []byte          // Pages()*Stride bytes
	Stride int             // Bytes per page, the image width
	Rect   image.Rectangle // Image bounds
}

// NewVerticalLSB creates a new image with the specified bounds. The height is
// rounded up to whole pages in memory.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &VerticalLSB{Rect: r}
	}
	pages := (h + 7) / 8
	return &VerticalLSB{
		Pix:    make([]byte, pages*w),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns BitModel.
func (p *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *VerticalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *VerticalLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit at (x, y). Pixels outside the image are Off.
func (p *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set implements draw.Image.
func (p *VerticalLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the pixel at (x, y). Pixels outside the image are ignored.
func (p *VerticalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Pages returns the number of 8-row pages.
func (p *VerticalLSB) Pages() int {
	if p.Stride == 0 {
		return 0
	}
	return len(p.Pix) / p.Stride
}

// Page returns the bytes of page n. The slice aliases Pix.
func (p *VerticalLSB) Page(n int) []byte {
	return p.Pix[n*p.Stride : (n+1)*p.Stride]
}

// Clear turns every pixel Off.
func (p *VerticalLSB) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0
	}
}

// ClearRect turns Off every pixel of r that lies inside the image.
func (p *VerticalLSB) ClearRect(r image.Rectangle) {
	r = r.Intersect(p.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			offset, mask := p.pixOffset(x, y)
			p.Pix[offset] &^= mask
		}
	}
}

// ComposeRow merges src into page page starting at column x, one byte per
// column, using op. Nothing is written unless the whole row fits.
func (p *VerticalLSB) ComposeRow(x, page int, src []byte, op Op) error {
	col := x - p.Rect.Min.X
	if page < 0 || page >= p.Pages() || col < 0 || col+len(src) > p.Stride {
		return fmt.Errorf("%w: %d bytes at column %d page %d", ErrOutOfRange, len(src), x, page)
	}
	dst := p.Pix[page*p.Stride+col:]
	for i, b := range src {
		dst[i] = op.apply(dst[i], b)
	}
	return nil
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
func (p *VerticalLSB) pixOffset(x, y int) (offset int, mask byte) {
	ry := y - p.Rect.Min.Y
	offset = (ry/8)*p.Stride + (x - p.Rect.Min.X)
	mask = 1 << uint(ry&7)
	return
}
