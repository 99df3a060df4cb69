package glyph

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

func TestGlyphValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       Glyph
		wantErr bool
	}{
		{"single band", Glyph{Width: 2, Height: 8, Data: make([]byte, 2)}, false},
		{"partial band", Glyph{Width: 2, Height: 12, Data: make([]byte, 4)}, false},
		{"short data", Glyph{Width: 2, Height: 12, Data: make([]byte, 3)}, true},
		{"zero width", Glyph{Width: 0, Height: 8}, true},
		{"zero height", Glyph{Width: 3, Height: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestGlyphPixel(t *testing.T) {
	g := Glyph{Width: 2, Height: 10, Data: []byte{0x01, 0x80, 0x02, 0x00}}
	set := map[image.Point]bool{{0, 0}: true, {1, 7}: true, {0, 9}: true}
	for y := -1; y <= g.Height; y++ {
		for x := -1; x <= g.Width; x++ {
			if got, want := g.Pixel(x, y), set[image.Pt(x, y)]; got != want {
				t.Errorf("Pixel(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDefaultFont(t *testing.T) {
	if got := Default.Height(); got != 8 {
		t.Fatalf("Height() = %d, want 8", got)
	}
	a := Default.Glyph('A')
	want := Glyph{Width: 6, Height: 8, Data: []byte{0x7e, 0x11, 0x11, 0x11, 0x7e, 0x00}}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("Glyph('A') mismatch (-want +got):\n%s", diff)
	}
	for r := Default.First; r <= Default.Last; r++ {
		if err := Default.Glyph(r).Validate(); err != nil {
			t.Fatalf("Glyph(%q): %v", r, err)
		}
	}
	space := Default.Glyph(' ')
	for _, r := range []rune{0, '\n', 0x7f, 'é', '€'} {
		if diff := cmp.Diff(space, Default.Glyph(r)); diff != "" {
			t.Errorf("Glyph(%q) is not the fallback (-want +got):\n%s", r, diff)
		}
	}
}

func TestTableBadFallback(t *testing.T) {
	tbl := &Table{First: 'a', Last: 'b', Width: 1, PixelHeight: 8, Data: []byte{0xff, 0xff}, Fallback: '?'}
	got := tbl.Glyph('z')
	if diff := cmp.Diff(Glyph{Width: 1, Height: 8, Data: []byte{0}}, got); diff != "" {
		t.Errorf("Glyph('z') mismatch (-want +got):\n%s", diff)
	}
}

func TestPlace(t *testing.T) {
	a := Default.Glyph('A')
	tests := []struct {
		name string
		g    Glyph
		x, y int
		want Placement
	}{
		{
			name: "page aligned",
			g:    a, x: 0, y: 0,
			want: Placement{X: 0, Y: 0, Width: 6, Mask: 0b1, Runs: []Run{
				{Page: 0, Data: []byte{0x7e, 0x11, 0x11, 0x11, 0x7e, 0x00}},
			}},
		},
		{
			name: "half page down",
			g:    a, x: 10, y: 12,
			want: Placement{X: 10, Y: 12, Width: 6, Mask: 0b110, Runs: []Run{
				{Page: 1, Data: []byte{0xe0, 0x10, 0x10, 0x10, 0xe0, 0x00}},
				{Page: 2, Data: []byte{0x07, 0x01, 0x01, 0x01, 0x07, 0x00}},
			}},
		},
		{
			name: "tall glyph",
			g:    Glyph{Width: 1, Height: 12, Data: []byte{0x01, 0x08}}, x: 3, y: 17,
			want: Placement{X: 3, Y: 17, Width: 1, Mask: 0b1100, Runs: []Run{
				{Page: 2, Data: []byte{0x02}},
				{Page: 3, Data: []byte{0x10}},
			}},
		},
		{
			name: "rows past height dropped",
			g:    Glyph{Width: 1, Height: 3, Data: []byte{0xff}}, x: 0, y: 6,
			want: Placement{X: 0, Y: 6, Width: 1, Mask: 0b11, Runs: []Run{
				{Page: 0, Data: []byte{0xc0}},
				{Page: 1, Data: []byte{0x01}},
			}},
		},
		{
			name: "empty glyph",
			g:    Glyph{Width: 2, Height: 0}, x: 0, y: 0,
			want: Placement{Width: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.g, tt.x, tt.y)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Place() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlaceKeepsGlyphRows(t *testing.T) {
	for h := 1; h <= 27; h++ {
		for y := 0; y+h <= 48; y += 3 {
			g := Glyph{Width: 9, Height: h, Data: make([]byte, ((h+7)/8)*9)}
			for i := range g.Data {
				g.Data[i] = 0xff
			}
			p := Place(g, 2, y)
			set := 0
			for _, r := range p.Runs {
				for _, b := range r.Data {
					for bit := 0; bit < 8; bit++ {
						if b&(1<<uint(bit)) == 0 {
							continue
						}
						set++
						if row := r.Page*PageHeight + bit; row < y || row >= y+h {
							t.Fatalf("%dx%d at y=%d: row %d set", g.Width, h, y, row)
						}
					}
				}
			}
			if set != g.Width*h {
				t.Fatalf("%dx%d at y=%d: %d pixels set, want %d", g.Width, h, y, set, g.Width*h)
			}
			if g.Data[len(g.Data)-1] != 0xff {
				t.Fatal("Place modified the glyph data")
			}
		}
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 15))
	for y := 5; y < 15; y++ {
		for x := 5; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(5, 5, color.Black)
	img.Set(7, 14, color.Black)
	img.Set(6, 6, color.RGBA{0x20, 0x20, 0x20, 0x10}) // transparent
	img.Set(6, 8, color.Gray{0x40})
	got := FromImage(img)
	want := Glyph{Width: 3, Height: 10, Data: []byte{0x01, 0x08, 0x00, 0x00, 0x00, 0x02}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromImage() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromFace(t *testing.T) {
	tbl, err := FromFace(basicfont.Face7x13, ' ', '~')
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Width != 7 || tbl.Height() != 13 {
		t.Fatalf("cell = %dx%d, want 7x13", tbl.Width, tbl.Height())
	}
	if n := setPixels(tbl.Glyph(' ')); n != 0 {
		t.Errorf("' ' has %d pixels set", n)
	}
	if n := setPixels(tbl.Glyph('H')); n == 0 {
		t.Error("'H' is blank")
	}
	if diff := cmp.Diff(tbl.Glyph(' '), tbl.Glyph('\t')); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
	if _, err := FromFace(basicfont.Face7x13, 'z', 'a'); !errors.Is(err, ErrInvalid) {
		t.Errorf("inverted range: got %v, want ErrInvalid", err)
	}
}

func TestTrueType(t *testing.T) {
	tbl, err := TrueType(gomono.TTF, 12)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Width <= 0 || tbl.Height() <= 8 {
		t.Fatalf("cell = %dx%d", tbl.Width, tbl.Height())
	}
	if n := setPixels(tbl.Glyph('M')); n == 0 {
		t.Error("'M' is blank")
	}
	if _, err := TrueType([]byte("not a font"), 12); err == nil {
		t.Error("expected parse error")
	}
}

func setPixels(g Glyph) int {
	n := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}
