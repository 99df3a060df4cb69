// Package image1bit provides a 1-bit image in the paged layout used by the
// PCD8544 LCD controller.
//
// The image is split into pages of 8 pixel rows. Each byte holds one column of
// a page, with bit 0 as the top row. Pages are stored one after the other.
//
// Memory layout example for a 3x16 image:
//
//	Pix[0:3]  page 0, rows 0-7,  columns 0-2
//	Pix[3:6]  page 1, rows 8-15, columns 0-2
//	Pix[4]    bit 2 is pixel (1, 10)
//
// This is the byte order the controller expects with horizontal addressing, so
// Pix can be written to the panel as is.
//
// This package provides:
//
// - Bit: A color type, On being a dark pixel
// - BitModel: A color model converting standard Go colors to Bit
// - VerticalLSB: An image.Image and draw.Image over the paged buffer, with
// byte level composition for glyph drawing
//
// Example usage:
//
//	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 84, 48))
//	img.SetBit(10, 20, image1bit.On)
//	_ = img.ComposeRow(0, 0, []byte{0x7e, 0x11, 0x11, 0x11, 0x7e}, image1bit.OpPaint)
//	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
package image1bit
