// Package emulator is a software PCD8544 controller.
//
// Panel implements pcd8544.Bus. It decodes the instruction set, keeps the
// display RAM with the controller's address counter and renders what the LCD
// would show to a terminal, so the driver can run without hardware.
package emulator

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"periph.io/x/devices/v3/pcd8544"
	"periph.io/x/devices/v3/pcd8544/image1bit"
)

// ErrUnknownCommand is returned for bytes that are not part of the active
// instruction set.
var ErrUnknownCommand = errors.New("emulator: unknown command")

// Opts is the configuration of the terminal rendering.
type Opts struct {
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// On and Off are the colors of dark and clear pixels. They default to
	// the panel's dark gray on green.
	On, Off color.Color
}

// Panel emulates the controller and its 84x48 RAM.
type Panel struct {
	ram *image1bit.VerticalLSB

	x, page   int
	extended  bool
	vertical  bool
	powerDown bool
	mode      pcd8544.DisplayMode
	vop       byte
	tempCoeff byte
	bias      byte
	resets    int

	palette ansi256.Palette
	on, off color.NRGBA
	buf     bytes.Buffer
}

// New returns a Panel in its power-on state.
func New(opts *Opts) *Panel {
	if opts == nil {
		opts = &Opts{}
	}
	p := &Panel{
		ram:     image1bit.NewVerticalLSB(image.Rect(0, 0, pcd8544.Width, pcd8544.Height)),
		palette: *ansi256.Default,
		on:      color.NRGBA{0x43, 0x52, 0x3D, 0xFF},
		off:     color.NRGBA{0xC7, 0xF0, 0xD8, 0xFF},
	}
	if opts.Palette != nil {
		p.palette = *opts.Palette
	}
	if opts.On != nil {
		p.on = color.NRGBAModel.Convert(opts.On).(color.NRGBA)
	}
	if opts.Off != nil {
		p.off = color.NRGBAModel.Convert(opts.Off).(color.NRGBA)
	}
	p.powerOn()
	return p
}

func (p *Panel) powerOn() {
	p.ram.Clear()
	p.x, p.page = 0, 0
	p.extended, p.vertical = false, false
	p.powerDown = true
	p.mode = pcd8544.Blank
	p.vop, p.tempCoeff, p.bias = 0, 0, 0
}

// Send implements pcd8544.Bus.
func (p *Panel) Send(m pcd8544.Mode, data []byte) error {
	if m == pcd8544.Data {
		for _, b := range data {
			p.write(b)
		}
		return nil
	}
	for _, b := range data {
		if err := p.command(b); err != nil {
			return err
		}
	}
	return nil
}

// Reset implements pcd8544.Bus.
func (p *Panel) Reset() error {
	p.resets++
	p.powerOn()
	return nil
}

func (p *Panel) String() string {
	return "emulator"
}

func (p *Panel) command(b byte) error {
	switch {
	case b == 0x00:
		// NOP
	case b&0xF8 == 0x20:
		p.powerDown = b&0x04 != 0
		p.vertical = b&0x02 != 0
		p.extended = b&0x01 != 0
	case !p.extended && b&0xF8 == 0x08:
		p.mode = pcd8544.DisplayMode(b & 0x0D)
	case !p.extended && b&0xF8 == 0x40:
		page := int(b & 0x07)
		if page >= pcd8544.Pages {
			return fmt.Errorf("%w: %#02x sets page %d", ErrUnknownCommand, b, page)
		}
		p.page = page
	case !p.extended && b&0x80 != 0:
		x := int(b & 0x7F)
		if x >= pcd8544.Width {
			return fmt.Errorf("%w: %#02x sets column %d", ErrUnknownCommand, b, x)
		}
		p.x = x
	case p.extended && b&0xFC == 0x04:
		p.tempCoeff = b & 0x03
	case p.extended && b&0xF8 == 0x10:
		p.bias = b & 0x07
	case p.extended && b&0x80 != 0:
		p.vop = b & 0x7F
	default:
		return fmt.Errorf("%w: %#02x", ErrUnknownCommand, b)
	}
	return nil
}

// write stores b at the address counter and advances it.
func (p *Panel) write(b byte) {
	p.ram.Page(p.page)[p.x] = b
	if p.vertical {
		p.page++
		if p.page == pcd8544.Pages {
			p.page = 0
			p.x = (p.x + 1) % pcd8544.Width
		}
		return
	}
	p.x++
	if p.x == pcd8544.Width {
		p.x = 0
		p.page = (p.page + 1) % pcd8544.Pages
	}
}

// RAM returns a copy of the display RAM, page by page.
func (p *Panel) RAM() []byte {
	return append([]byte(nil), p.ram.Pix...)
}

// Cursor returns the address counter.
func (p *Panel) Cursor() (x, page int) {
	return p.x, p.page
}

// Mode returns the display control setting.
func (p *Panel) Mode() pcd8544.DisplayMode {
	return p.mode
}

// PoweredDown reports whether the controller is in power-down mode.
func (p *Panel) PoweredDown() bool {
	return p.powerDown
}

// Contrast returns the last Vop set.
func (p *Panel) Contrast() byte {
	return p.vop
}

// TempCoeff returns the last temperature coefficient set.
func (p *Panel) TempCoeff() byte {
	return p.tempCoeff
}

// Bias returns the last bias system set.
func (p *Panel) Bias() byte {
	return p.bias
}

// Resets returns how many times RST was pulsed.
func (p *Panel) Resets() int {
	return p.resets
}

// Pixel reports whether the LCD shows (x, y) as dark, taking the display mode
// into account.
func (p *Panel) Pixel(x, y int) bool {
	if p.powerDown {
		return false
	}
	switch p.mode {
	case pcd8544.AllOn:
		return true
	case pcd8544.Inverse:
		return !bool(p.ram.BitAt(x, y))
	case pcd8544.Normal:
		return bool(p.ram.BitAt(x, y))
	default:
		return false
	}
}

// Snapshot returns what the LCD shows as a 1-bit image.
func (p *Panel) Snapshot() *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(p.ram.Rect)
	for y := 0; y < pcd8544.Height; y++ {
		for x := 0; x < pcd8544.Width; x++ {
			img.SetBit(x, y, image1bit.Bit(p.Pixel(x, y)))
		}
	}
	return img
}

// Render writes what the LCD shows to w, one terminal cell per pixel.
func (p *Panel) Render(w io.Writer) error {
	p.buf.Reset()
	on, off := p.palette.Block(p.on), p.palette.Block(p.off)
	for y := 0; y < pcd8544.Height; y++ {
		_, _ = p.buf.WriteString("\033[0m")
		for x := 0; x < pcd8544.Width; x++ {
			if p.Pixel(x, y) {
				_, _ = p.buf.WriteString(on)
			} else {
				_, _ = p.buf.WriteString(off)
			}
		}
		_, _ = p.buf.WriteString("\033[0m\n")
	}
	_, err := p.buf.WriteTo(w)
	return err
}

var _ pcd8544.Bus = &Panel{}
