// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1309

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1309/image1bit"
)

// Commands. Each byte of a command, parameters included, is transmitted as
// its own chip-select framed write with the D/C line low.
const (
	setCommandLock     byte = 0xFD
	displayOff         byte = 0xAE
	displayOn          byte = 0xAF
	setDisplayClockDiv byte = 0xD5
	setMultiplexRatio  byte = 0xA8
	setDisplayOffset   byte = 0xD3
	setStartLine       byte = 0x40
	setMemoryMode      byte = 0x20
	segRemapNormal     byte = 0xA0
	segRemapReverse    byte = 0xA1
	comScanInc         byte = 0xC0
	comScanDec         byte = 0xC8
	setComPins         byte = 0xDA
	setContrast        byte = 0x81
	setPrecharge       byte = 0xD9
	setVcomDeselect    byte = 0xDB
	displayAllOnResume byte = 0xA4
	normalDisplay      byte = 0xA6
	invertDisplay      byte = 0xA7
	deactivateScroll   byte = 0x2E
	setColumnAddr      byte = 0x21
	setPageAddr        byte = 0x22
)

// Parameter values used by the initialization sequence.
const (
	commandUnlock        byte = 0x12
	memoryModeHorizontal byte = 0x00
	defaultClockDiv      byte = 0x80
	defaultContrast      byte = 0xCF
	defaultPrecharge     byte = 0xF1
	defaultVcomDeselect  byte = 0x30
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	W: 128,
	H: 64,
}

// Opts defines the options for the device.
//
// The SSD1309 drives up to 128x64 pixels; panels in this family are either
// 128x64 or 128x32.
type Opts struct {
	W int
	H int
	// MirrorVertical corresponds to the COM scan direction in the OLED panel
	// hardware. Try toggling this if the display is flipped vertically.
	MirrorVertical bool
	// MirrorHorizontal corresponds to the SEG remap configuration in the OLED
	// panel hardware. Try toggling this if the display is flipped
	// horizontally.
	MirrorHorizontal bool
	// Sequential corresponds to the Sequential/Alternative COM pin
	// configuration in the OLED panel hardware. Try toggling this if half the
	// rows appear to be missing on your display.
	Sequential bool
}

// New returns a Dev object that communicates over 4-wire SPI to a SSD1309
// display controller.
//
// The SSD1309 operates at up to 10MHz in SPI mode 0.
//
// # Wiring
//
// Connect SDA to SPI_MOSI and SCK to SPI_CLK. The dc, cs and rst control
// lines each need a GPIO output. The bus is write-only; the controller's
// MISO line, if any, is left unconnected.
//
// The reset line is pulsed and the initialization sequence is sent before
// New returns, so the display is ready to accept frames.
func New(p spi.Port, dc, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.W != 128 {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("invalid width %d; must be 128", opts.W)}
	}
	if opts.H != 32 && opts.H != 64 {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("invalid height %d; must be 32 or 64", opts.H)}
	}

	// Idle levels before the first transaction: deselected, command mode.
	if err := cs.Out(gpio.High); err != nil {
		return nil, err
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}

	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	frame := opts.W * opts.H / 8
	if limits, ok := c.(conn.Limits); ok {
		if max := limits.MaxTxSize(); max != 0 && max < frame {
			return nil, &ConfigurationError{Msg: fmt.Sprintf("transport limited to %d bytes per transaction; a %d byte frame must be written in one", max, frame)}
		}
	}

	d := &Dev{
		c:      c,
		dc:     dc,
		cs:     cs,
		rst:    rst,
		rect:   image.Rect(0, 0, opts.W, opts.H),
		opts:   *opts,
		buffer: image1bit.NewVerticalLSB(image.Rect(0, 0, opts.W, opts.H)),
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Dev is an open handle to the display controller.
type Dev struct {
	// Communication.
	c   conn.Conn
	dc  gpio.PinOut
	cs  gpio.PinOut
	rst gpio.PinOut

	// Display size controlled by the SSD1309.
	rect image.Rectangle
	opts Opts

	// buffer is the frame streamed to the controller RAM on every update.
	// One byte covers 8 vertically stacked pixels, matching the GDDRAM page
	// layout. 128x64 is 8 pages of 128 bytes, 1024 bytes total.
	buffer *image1bit.VerticalLSB
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1309.Dev{%s, %s, %s}", d.c, d.dc, d.rect.Max)
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Init resets the controller and runs the initialization sequence.
//
// It is called by New. Calling it again is the only way back to a known
// good state after a suspected transport fault: the protocol is write-only,
// so a desynchronized controller cannot be detected, only reset.
func (d *Dev) Init() error {
	if err := d.reset(); err != nil {
		return err
	}
	eh := errorHandler{d: d}
	initDisplay(&eh, &d.opts)
	return eh.err
}

// Draw implements display.Drawer.
//
// It draws synchronously; once this function returns the display is updated.
// The full frame is transferred regardless of how much of it changed.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, image1bit encoding: fast path!
		copy(d.buffer.Pix, img.Pix)
	} else {
		draw.Src.Draw(d.buffer, r.Intersect(d.rect), src, sp)
	}
	return d.flush()
}

// Write writes a frame of pixels to the display.
//
// The format is unusual as each byte represents 8 vertical pixels at a
// time; the frame is horizontal bands of 8 pixels high. This function
// accepts the content of image1bit.VerticalLSB.Pix.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer.Pix) {
		return 0, fmt.Errorf("ssd1309: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buffer.Pix), len(pixels))
	}
	copy(d.buffer.Pix, pixels)
	if err := d.flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// SetContrast changes the screen brightness. level is clamped to [0, 255].
//
// The pixel buffer is unaffected.
func (d *Dev) SetContrast(level int) error {
	if level < 0 {
		level = 0
	} else if level > 255 {
		level = 255
	}
	return d.sendCommand([]byte{setContrast, byte(level)})
}

// Invert the display (black on white vs white on black).
//
// This changes how the controller reads its RAM; the pixel buffer is
// unaffected.
func (d *Dev) Invert(blackOnWhite bool) error {
	b := []byte{normalDisplay}
	if blackOnWhite {
		b[0] = invertDisplay
	}
	return d.sendCommand(b)
}

// Halt turns the display off.
//
// The controller RAM and the pixel buffer both survive; Wake turns the
// panel back on with the same content. Halt also implements conn.Resource.
func (d *Dev) Halt() error {
	return d.sendCommand([]byte{displayOff})
}

// Wake turns the display back on after Halt.
func (d *Dev) Wake() error {
	return d.sendCommand([]byte{displayOn})
}

// flush re-establishes the addressing window and streams the whole buffer.
//
// The window is re-sent before every transfer on purpose: the controller's
// internal address pointer advances as bytes arrive, and an interrupted
// transfer leaves it at an unknown offset. Forcing the window back to the
// origin makes every frame land at (0, 0) regardless of history.
func (d *Dev) flush() error {
	eh := errorHandler{d: d}
	setAddressWindow(&eh, d.rect.Dx(), d.rect.Dy()/8)
	eh.sendData(d.buffer.Pix)
	return eh.err
}

// sendCommand sends each byte as an independently framed command write.
func (d *Dev) sendCommand(c []byte) error {
	for _, b := range c {
		if err := d.writeFramed([]byte{b}, gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

// sendData sends the whole run as one framed data write.
func (d *Dev) sendData(c []byte) error {
	return d.writeFramed(c, gpio.High)
}

// writeFramed brackets one bus transaction with the chip-select line. The
// deassert runs on every exit path, a failed transfer included, so the
// device is never left selected.
func (d *Dev) writeFramed(b []byte, mode gpio.Level) error {
	if err := d.dc.Out(mode); err != nil {
		return err
	}
	if err := d.cs.Out(gpio.Low); err != nil {
		return err
	}
	txErr := d.c.Tx(b, nil)
	csErr := d.cs.Out(gpio.High)
	if txErr != nil {
		return txErr
	}
	return csErr
}

// reset pulses the RES line.
//
// The line is held high first to guarantee a clean falling edge, then low
// well above the controller's minimum reset pulse, then high again to let
// the charge-up settle before the first command byte. The delays are real
// time; nothing else may touch the bus while this runs.
func (d *Dev) reset() error {
	eh := errorHandler{d: d}

	eh.rstOut(gpio.High)
	time.Sleep(1 * time.Millisecond)
	eh.rstOut(gpio.Low)
	time.Sleep(10 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(10 * time.Millisecond)

	return eh.err
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
