// Package pcd8544 controls a PCD8544 monochrome LCD, as found on the Nokia 5110
// and 3310, over a 5-wire serial bus.
//
// The panel is 84x48 pixels. Its memory is organized in 6 pages of 8 pixel
// rows, one byte per column per page, bit 0 at the top. The driver keeps a
// framebuffer in the same layout and sends it to the panel on Flush.
//
// # Drawing paths
//
// PrintBuffered, PutChar, SetPixel, DrawHLine, DrawVLine, ClearArea and Draw
// change the framebuffer. Glyphs can be placed at any y: they are shifted
// across the pages they cover.
//
// Print streams text straight to the panel at a page boundary, without
// touching the framebuffer. It is cheaper for labels that are redrawn often,
// but the next Flush replaces what it wrote.
//
// # Invert
//
// Invert(true) changes how the framebuffer paths draw: text comes out light
// on a dark band and icons clear their pixels. SetDisplayMode(Inverse) inverts
// the whole panel instead.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	CLK         → GPIO or SPI Clock (SCLK)
//	DIN         → GPIO or SPI Data (MOSI)
//	CE          → GPIO or SPI Chip Select
//	DC          → GPIO
//	RST         → GPIO
//
// # Basic Usage
//
//	var pins pcd8544.Pins
//	pins.Set(pcd8544.Reset, gpioreg.ByName("GPIO5"))
//	pins.Set(pcd8544.ChipEnable, gpioreg.ByName("GPIO6"))
//	pins.Set(pcd8544.DataCommand, gpioreg.ByName("GPIO13"))
//	pins.Set(pcd8544.DataIn, gpioreg.ByName("GPIO19"))
//	pins.Set(pcd8544.Clock, gpioreg.ByName("GPIO26"))
//	dev, err := pcd8544.NewGPIO(&pins, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Halt()
//	dev.PrintBuffered("Hello", 0, 4, glyph.Default)
//	dev.DrawHLine(0, 14, 84)
//	dev.Flush()
//
// See examples/pcd8544_demo for a complete program.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/Monochrome/Nokia5110.pdf
package pcd8544
