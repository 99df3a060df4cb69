package image1bit

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBitRGBA(t *testing.T) {
	tests := []struct {
		name string
		bit  Bit
		want uint32
	}{
		{"on is black", On, 0x0000},
		{"off is white", Off, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.bit.RGBA()
			if r != tt.want || g != tt.want || b != tt.want || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, ffff)", r, g, b, a, tt.want, tt.want, tt.want)
			}
		})
	}
}

func TestBitModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Bit
	}{
		{"bit passthrough", On, On},
		{"black", color.Black, On},
		{"white", color.White, Off},
		{"dark gray", color.Gray{Y: 0x30}, On},
		{"light gray", color.Gray{Y: 0xC0}, Off},
		{"transparent", color.Transparent, Off},
		{"dark red", color.RGBA{0x80, 0, 0, 0xFF}, On},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BitModel.Convert(tt.input).(Bit); got != tt.want {
				t.Errorf("BitModel.Convert(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewVerticalLSB(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantStride int
		wantPages  int
	}{
		{"84x48", image.Rect(0, 0, 84, 48), 84, 6},
		{"partial page", image.Rect(0, 0, 3, 10), 3, 2},
		{"offset rect", image.Rect(10, 20, 14, 28), 4, 1},
		{"empty", image.Rect(0, 0, 0, 8), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewVerticalLSB(tt.rect)
			if img.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
			}
			if img.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if got := img.Pages(); got != tt.wantPages {
				t.Errorf("Pages() = %d, want %d", got, tt.wantPages)
			}
			if len(img.Pix) != tt.wantStride*tt.wantPages {
				t.Errorf("len(Pix) = %d", len(img.Pix))
			}
		})
	}
}

func TestVerticalLSBLayout(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 3, 16))
	img.SetBit(0, 0, On)
	img.SetBit(1, 10, On)
	img.SetBit(2, 7, On)
	want := []byte{0x01, 0x00, 0x80, 0x00, 0x04, 0x00}
	if diff := cmp.Diff(want, img.Pix); diff != "" {
		t.Errorf("Pix mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0x00, 0x04, 0x00}, img.Page(1)); diff != "" {
		t.Errorf("Page(1) mismatch (-want +got):\n%s", diff)
	}
	img.SetBit(1, 10, Off)
	if img.BitAt(1, 10) != Off || img.Pix[4] != 0 {
		t.Errorf("SetBit(Off) left Pix[4] = %#x", img.Pix[4])
	}
}

func TestVerticalLSBOffsetRect(t *testing.T) {
	img := NewVerticalLSB(image.Rect(100, 50, 104, 58))
	img.SetBit(101, 53, On)
	if img.BitAt(101, 53) != On {
		t.Error("BitAt(101, 53) = Off, want On")
	}
	if img.Pix[1] != 0x08 {
		t.Errorf("Pix[1] = %#x, want 0x08", img.Pix[1])
	}
}

func TestVerticalLSBOutOfBounds(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 4, 8))
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 8}} {
		img.SetBit(p.X, p.Y, On)
		if img.BitAt(p.X, p.Y) != Off {
			t.Errorf("BitAt(%v) = On, want Off", p)
		}
	}
	if diff := cmp.Diff(make([]byte, 4), img.Pix); diff != "" {
		t.Errorf("out of bounds write changed Pix (-want +got):\n%s", diff)
	}
}

func TestVerticalLSBDraw(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 4, 8))
	draw.Draw(img, image.Rect(1, 2, 3, 4), image.Black, image.Point{}, draw.Src)
	want := []byte{0x00, 0x0C, 0x0C, 0x00}
	if diff := cmp.Diff(want, img.Pix); diff != "" {
		t.Errorf("Pix mismatch (-want +got):\n%s", diff)
	}
	if img.At(1, 2) != On {
		t.Errorf("At(1, 2) = %v, want On", img.At(1, 2))
	}
	if img.ColorModel() != BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
}

func TestComposeRow(t *testing.T) {
	tests := []struct {
		name string
		dst  byte
		src  byte
		op   Op
		want byte
	}{
		{"paint", 0x0F, 0x30, OpPaint, 0x3F},
		{"paint keeps existing", 0xFF, 0x00, OpPaint, 0xFF},
		{"invert text", 0x00, 0x7E, OpInvertText, 0x81},
		{"invert text keeps existing", 0x01, 0xFF, OpInvertText, 0x01},
		{"erase", 0xFF, 0x7E, OpErase, 0x81},
		{"erase nothing set", 0x00, 0xFF, OpErase, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewVerticalLSB(image.Rect(0, 0, 2, 16))
			img.Pix[3] = tt.dst
			if err := img.ComposeRow(1, 1, []byte{tt.src}, tt.op); err != nil {
				t.Fatal(err)
			}
			if img.Pix[3] != tt.want {
				t.Errorf("%v: got %#x, want %#x", tt.op, img.Pix[3], tt.want)
			}
		})
	}
}

func TestComposeRowPaintIdempotent(t *testing.T) {
	src := []byte{0x7e, 0x11, 0x11, 0x11, 0x7e}
	img := NewVerticalLSB(image.Rect(0, 0, 84, 48))
	for i := 0; i < 2; i++ {
		if err := img.ComposeRow(10, 3, src, OpPaint); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(src, img.Page(3)[10:15]); diff != "" {
			t.Errorf("pass %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestComposeRowOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		x, page int
		n       int
	}{
		{"negative page", 0, -1, 1},
		{"page past end", 0, 6, 1},
		{"negative column", -1, 0, 1},
		{"row overflows", 80, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewVerticalLSB(image.Rect(0, 0, 84, 48))
			err := img.ComposeRow(tt.x, tt.page, make([]byte, tt.n), OpInvertText)
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("ComposeRow() = %v, want ErrOutOfRange", err)
			}
			for i, b := range img.Pix {
				if b != 0 {
					t.Fatalf("Pix[%d] = %#x after failed compose", i, b)
				}
			}
		})
	}
}

func TestClearRect(t *testing.T) {
	img := NewVerticalLSB(image.Rect(0, 0, 4, 16))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.ClearRect(image.Rect(1, 6, 10, 10))
	want := []byte{0xFF, 0x3F, 0x3F, 0x3F, 0xFF, 0xFC, 0xFC, 0xFC}
	if diff := cmp.Diff(want, img.Pix); diff != "" {
		t.Errorf("Pix mismatch (-want +got):\n%s", diff)
	}
	img.Clear()
	if diff := cmp.Diff(make([]byte, 8), img.Pix); diff != "" {
		t.Errorf("Clear() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpString(t *testing.T) {
	for op, want := range map[Op]string{OpPaint: "Paint", OpInvertText: "InvertText", OpErase: "Erase", Op(9): "Op(9)"} {
		if got := op.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
