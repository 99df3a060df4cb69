package pcd8544

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Mode selects how the controller interprets the bytes on the bus.
type Mode int

const (
	// Command bytes are sent with DC low.
	Command Mode = iota
	// Data bytes are written to display RAM, with DC high.
	Data
)

func (m Mode) String() string {
	if m == Data {
		return "data"
	}
	return "command"
}

// Bus transfers bytes to the controller.
//
// Send must drive DC for m, hold the chip enabled for the whole transfer and
// shift every byte out MSB first.
type Bus interface {
	Send(m Mode, data []byte) error
	// Reset pulses the controller's RST line.
	Reset() error
	String() string
}

// Role is the signal a pin carries on the 5-wire serial bus.
type Role int

const (
	Reset Role = iota
	ChipEnable
	DataCommand
	DataIn
	Clock

	roleCount
)

var roleNames = [roleCount]string{"RST", "CE", "DC", "DIN", "CLK"}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// Pins assigns a pin to each Role of the bit-banged bus.
type Pins struct {
	pins [roleCount]gpio.PinOut
}

// Set assigns p to role r.
func (s *Pins) Set(r Role, p gpio.PinOut) error {
	if r < 0 || r >= roleCount {
		return fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	if p == nil || p == gpio.INVALID {
		return fmt.Errorf("%w: %s", ErrMissingPin, r)
	}
	s.pins[r] = p
	return nil
}

// Get returns the pin assigned to r, nil if none.
func (s *Pins) Get(r Role) gpio.PinOut {
	if r < 0 || r >= roleCount {
		return nil
	}
	return s.pins[r]
}

func (s *Pins) validate() error {
	var missing []string
	for r := Role(0); r < roleCount; r++ {
		if s.pins[r] == nil {
			missing = append(missing, r.String())
		}
	}
	if len(missing) != 0 {
		return fmt.Errorf("%w: %s", ErrMissingPin, strings.Join(missing, ", "))
	}
	return nil
}

// gpioBus bit-bangs the serial protocol over five GPIO pins.
type gpioBus struct {
	rst, ce, dc, din, clk gpio.PinOut
	pulse                 time.Duration
}

func (b *gpioBus) Send(m Mode, data []byte) error {
	if err := b.dc.Out(gpio.Level(m == Data)); err != nil {
		return err
	}
	if err := b.ce.Out(gpio.Low); err != nil {
		return err
	}
	for _, v := range data {
		if err := b.shiftOut(v); err != nil {
			return errors.Join(err, b.ce.Out(gpio.High))
		}
	}
	return b.ce.Out(gpio.High)
}

// shiftOut clocks v out MSB first. DIN is sampled on the rising edge of CLK.
func (b *gpioBus) shiftOut(v byte) error {
	for i := 7; i >= 0; i-- {
		if err := b.clk.Out(gpio.Low); err != nil {
			return err
		}
		if err := b.din.Out(gpio.Level(v&(1<<uint(i)) != 0)); err != nil {
			return err
		}
		if err := b.clk.Out(gpio.High); err != nil {
			return err
		}
	}
	return nil
}

func (b *gpioBus) Reset() error {
	return pulseReset(b.rst, b.pulse)
}

func (b *gpioBus) String() string {
	return fmt.Sprintf("gpio(RST=%s CE=%s DC=%s DIN=%s CLK=%s)", b.rst, b.ce, b.dc, b.din, b.clk)
}

// spiBus uses a hardware SPI port for CLK, DIN and CE, and GPIOs for DC and
// RST.
type spiBus struct {
	c     spi.Conn
	dc    gpio.PinOut
	rst   gpio.PinOut // Optional
	maxTx int
	pulse time.Duration
}

func newSPIBus(p spi.Port, dc, rst gpio.PinOut, pulse time.Duration) (*spiBus, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, fmt.Errorf("%w: %s", ErrMissingPin, DataCommand)
	}
	if rst == gpio.INVALID {
		rst = nil
	}
	// The PCD8544 accepts up to 4MHz in SPI mode 0.
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("pcd8544: connect spi: %w", err)
	}
	b := &spiBus{c: c, dc: dc, rst: rst, pulse: pulse}
	if l, ok := c.(conn.Limits); ok {
		b.maxTx = l.MaxTxSize()
	}
	return b, nil
}

func (b *spiBus) Send(m Mode, data []byte) error {
	if err := b.dc.Out(gpio.Level(m == Data)); err != nil {
		return err
	}
	for len(data) != 0 {
		n := len(data)
		if b.maxTx > 0 && n > b.maxTx {
			n = b.maxTx
		}
		if err := b.c.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (b *spiBus) Reset() error {
	if b.rst == nil {
		return nil
	}
	return pulseReset(b.rst, b.pulse)
}

func (b *spiBus) String() string {
	return fmt.Sprintf("spi(%s DC=%s)", b.c, b.dc)
}

func pulseReset(rst gpio.PinOut, pulse time.Duration) error {
	if err := rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("pcd8544: failed to pull RST low: %w", err)
	}
	time.Sleep(pulse)
	if err := rst.Out(gpio.High); err != nil {
		return fmt.Errorf("pcd8544: failed to pull RST high: %w", err)
	}
	return nil
}
