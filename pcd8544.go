package pcd8544

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/pcd8544/image1bit"
)

// Panel geometry.
const (
	Width  = 84
	Height = 48
	Pages  = Height / 8
)

var (
	// ErrOutOfRange is returned when a drawing or addressing call does not fit
	// on the panel. Nothing is drawn in that case.
	ErrOutOfRange = errors.New("pcd8544: out of range")
	// ErrUnknownRole is returned by Pins.Set for an undefined Role.
	ErrUnknownRole = errors.New("pcd8544: unknown pin role")
	// ErrMissingPin is returned when a required pin is not configured.
	ErrMissingPin = errors.New("pcd8544: missing pin")
	// ErrHalted is returned by calls that talk to the panel after Halt.
	ErrHalted = errors.New("pcd8544: halted")
)

// Instruction set.
const (
	cmdFunctionSet = 0x20 // | flags below
	fnExtended     = 0x01
	fnVertical     = 0x02
	fnPowerDown    = 0x04
	cmdSetY        = 0x40 // | page
	cmdSetX        = 0x80 // | column

	// Extended instruction set.
	cmdTempCoeff = 0x04 // | 0-3
	cmdBias      = 0x10 // | 0-7
	cmdSetVop    = 0x80 // | 0-127
)

// DisplayMode is the display control setting.
type DisplayMode byte

const (
	Blank   DisplayMode = 0x08
	Normal  DisplayMode = 0x0C
	AllOn   DisplayMode = 0x09
	Inverse DisplayMode = 0x0D
)

func (m DisplayMode) String() string {
	switch m {
	case Blank:
		return "Blank"
	case Normal:
		return "Normal"
	case AllOn:
		return "AllOn"
	case Inverse:
		return "Inverse"
	default:
		return fmt.Sprintf("DisplayMode(%#x)", byte(m))
	}
}

// Opts is the configuration for the PCD8544 display.
type Opts struct {
	// Contrast is the operating voltage Vop, 1-127 (default: 0x38).
	Contrast byte
	// TempCoeff is the temperature coefficient, 0-3 (default: 0).
	TempCoeff byte
	// Bias is the bias system, 1-7 (default: 2, a 1:48 mux rate).
	Bias byte
	// ResetPulse is how long RST is held low (default: 10ms).
	ResetPulse time.Duration
	// Logger receives debug entries. Defaults to a discarding logger.
	Logger logrus.FieldLogger
}

// DefaultOpts is the configuration used when nil Opts are passed.
var DefaultOpts = Opts{
	Contrast:   0x38,
	TempCoeff:  0,
	Bias:       2,
	ResetPulse: 10 * time.Millisecond,
}

// withDefaults returns a copy of o with zero fields replaced by defaults.
func (o *Opts) withDefaults() Opts {
	out := DefaultOpts
	if o != nil {
		out = *o
	}
	if out.Contrast == 0 {
		out.Contrast = DefaultOpts.Contrast
	}
	if out.Bias == 0 {
		out.Bias = DefaultOpts.Bias
	}
	if out.ResetPulse == 0 {
		out.ResetPulse = DefaultOpts.ResetPulse
	}
	if out.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		out.Logger = l
	}
	out.Contrast &= 0x7F
	out.TempCoeff &= 0x03
	out.Bias &= 0x07
	return out
}

// Dev is the device handle for a PCD8544 display.
//
// Drawing calls only change the framebuffer. Flush sends it to the panel.
// A Dev must not be used concurrently.
type Dev struct {
	bus  Bus
	log  logrus.FieldLogger
	opts Opts
	rect image.Rectangle

	buf    *image1bit.VerticalLSB
	invert bool
	cur    cursor
	halted bool
}

// cursor mirrors the controller's address counter.
type cursor struct {
	x, page int
	valid   bool
}

// advance moves the cursor by n data bytes with horizontal addressing.
func (c *cursor) advance(n int) {
	if !c.valid {
		return
	}
	pos := (c.page*Width + c.x + n) % (Width * Pages)
	c.page, c.x = pos/Width, pos%Width
}

// New returns a Dev driving the panel over bus, and initializes the panel.
//
// opts can be nil to use DefaultOpts.
func New(bus Bus, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	d := &Dev{
		bus:  bus,
		log:  o.Logger.WithField("dev", "pcd8544"),
		opts: o,
		rect: image.Rect(0, 0, Width, Height),
		buf:  image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height)),
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewGPIO returns a Dev that bit-bangs the serial bus over pins. Every Role
// must be assigned.
func NewGPIO(pins *Pins, opts *Opts) (*Dev, error) {
	if pins == nil {
		return nil, fmt.Errorf("%w: no pins", ErrMissingPin)
	}
	if err := pins.validate(); err != nil {
		return nil, err
	}
	o := opts.withDefaults()
	b := &gpioBus{
		rst:   pins.Get(Reset),
		ce:    pins.Get(ChipEnable),
		dc:    pins.Get(DataCommand),
		din:   pins.Get(DataIn),
		clk:   pins.Get(Clock),
		pulse: o.ResetPulse,
	}
	return New(b, &o)
}

// NewSPI returns a Dev connected through a hardware SPI port.
//
// The port is configured for 4MHz, Mode0, 8-bit transfers. dc is required.
// rst can be nil when the reset line is handled elsewhere.
func NewSPI(p spi.Port, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	b, err := newSPIBus(p, dc, rst, o.ResetPulse)
	if err != nil {
		return nil, err
	}
	return New(b, &o)
}

// Init resets the panel, sends the initialization sequence and clears it.
//
// It also clears the invert flag and brings back a halted Dev.
func (d *Dev) Init() error {
	d.halted = false
	d.invert = false
	d.cur = cursor{}
	d.log.WithField("bus", d.bus.String()).Debug("init")
	if err := d.bus.Reset(); err != nil {
		return fmt.Errorf("pcd8544: reset: %w", err)
	}
	cmds := []byte{
		cmdFunctionSet | fnExtended,
		cmdSetVop | d.opts.Contrast,
		cmdTempCoeff | d.opts.TempCoeff,
		cmdBias | d.opts.Bias,
		cmdFunctionSet, // Basic instruction set, horizontal addressing
		byte(Normal),
	}
	if err := d.sendCommand(cmds...); err != nil {
		return err
	}
	return d.Clear()
}

// Clear turns every pixel off and sends the blank frame to the panel.
func (d *Dev) Clear() error {
	d.buf.Clear()
	return d.Flush()
}

// Flush sends the whole framebuffer to the panel, page by page.
func (d *Dev) Flush() error {
	if err := d.SetXY(0, 0); err != nil {
		return err
	}
	d.log.Debug("flush")
	return d.sendData(d.buf.Pix)
}

// SetXY moves the panel's address counter to column x of page. Nothing is
// sent when the counter is already there.
func (d *Dev) SetXY(x, page int) error {
	if x < 0 || x >= Width || page < 0 || page >= Pages {
		return fmt.Errorf("%w: column %d page %d", ErrOutOfRange, x, page)
	}
	if d.cur.valid && d.cur.x == x && d.cur.page == page {
		return nil
	}
	if err := d.sendCommand(cmdSetY|byte(page), cmdSetX|byte(x)); err != nil {
		return err
	}
	d.cur = cursor{x: x, page: page, valid: true}
	return nil
}

// SetContrast sets the operating voltage Vop (0-127).
func (d *Dev) SetContrast(vop byte) error {
	vop &= 0x7F
	if err := d.sendCommand(cmdFunctionSet|fnExtended, cmdSetVop|vop, cmdFunctionSet); err != nil {
		return err
	}
	d.opts.Contrast = vop
	return nil
}

// SetDisplayMode changes the display control setting.
func (d *Dev) SetDisplayMode(m DisplayMode) error {
	switch m {
	case Blank, Normal, AllOn, Inverse:
	default:
		return fmt.Errorf("pcd8544: invalid display mode %s", m)
	}
	return d.sendCommand(byte(m))
}

// Invert sets how later drawing calls merge into the framebuffer.
//
// When on, text is drawn as light characters on a dark band and other
// glyphs clear the pixels they cover instead of setting them. It does not
// change what is already drawn; see SetDisplayMode for panel-wide inversion.
func (d *Dev) Invert(on bool) {
	d.invert = on
}

// Inverted reports the current invert setting.
func (d *Dev) Inverted() bool {
	return d.invert
}

// Halt puts the panel in power-down mode. Init wakes it up.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.log.Debug("halt")
	if err := d.sendCommand(cmdFunctionSet | fnPowerDown); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("pcd8544.Dev{%dx%d, %s}", d.rect.Dx(), d.rect.Dy(), d.bus)
}

// ColorModel returns image1bit.BitModel.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the panel bounds.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw converts src to 1 bit into the framebuffer region r, then flushes.
//
// Dark pixels of src are turned on. r is clipped to the panel.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	r = r.Intersect(d.rect)
	if !r.Empty() {
		draw.Draw(d.buf, r, src, sp, draw.Src)
	}
	return d.Flush()
}

// Write replaces the framebuffer with a raw frame and flushes it.
//
// pixels must be Width*Pages bytes in panel order: page by page, one byte
// per column, bit 0 at the top.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if len(pixels) != len(d.buf.Pix) {
		return 0, fmt.Errorf("pcd8544: invalid buffer size %d, want %d", len(pixels), len(d.buf.Pix))
	}
	copy(d.buf.Pix, pixels)
	if err := d.Flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

func (d *Dev) sendCommand(cmds ...byte) error {
	return d.send(Command, cmds)
}

func (d *Dev) sendData(data []byte) error {
	if err := d.send(Data, data); err != nil {
		return err
	}
	d.cur.advance(len(data))
	return nil
}

func (d *Dev) send(m Mode, b []byte) error {
	if d.halted {
		return ErrHalted
	}
	if err := d.bus.Send(m, b); err != nil {
		// The controller state is unknown after a failed transfer.
		d.cur = cursor{}
		return fmt.Errorf("pcd8544: send %s: %w", m, err)
	}
	return nil
}

var _ display.Drawer = &Dev{}
