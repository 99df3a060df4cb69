package pcd8544

import (
	"fmt"
	"image"

	"periph.io/x/devices/v3/pcd8544/image1bit"
)

// SetPixel turns the pixel at (x, y) on or off in the framebuffer.
func (d *Dev) SetPixel(x, y int, on bool) error {
	if !(image.Point{X: x, Y: y}.In(d.rect)) {
		return fmt.Errorf("%w: pixel (%d, %d)", ErrOutOfRange, x, y)
	}
	d.buf.SetBit(x, y, image1bit.Bit(on))
	return nil
}

// DrawHLine turns on l pixels going right from (x, y). Nothing is drawn when
// (x, y) is off the panel; the line stops at the right edge.
func (d *Dev) DrawHLine(x, y, l int) {
	if !(image.Point{X: x, Y: y}.In(d.rect)) {
		return
	}
	for i := x; i < x+l && i < Width; i++ {
		d.buf.SetBit(i, y, image1bit.On)
	}
}

// DrawVLine turns on l pixels going down from (x, y). Nothing is drawn when
// (x, y) is off the panel; the line stops at the bottom edge.
func (d *Dev) DrawVLine(x, y, l int) {
	if !(image.Point{X: x, Y: y}.In(d.rect)) {
		return
	}
	for i := y; i < y+l && i < Height; i++ {
		d.buf.SetBit(x, i, image1bit.On)
	}
}

// ClearArea turns off the w by h pixels with their top left corner at (x, y).
// The part of the area off the panel is ignored.
func (d *Dev) ClearArea(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	d.buf.ClearRect(image.Rect(x, y, x+w, y+h))
}
