// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D monochrome display.Drawer that outputs to
// terminal (stdout) using ANSI color codes.
//
// It accepts the same frames as the SSD1309 driver, one colored block per
// pixel. Useful while you are waiting for your OLED panel to come by mail.
package screen2d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1309/image1bit"
)

// Opts represents the options available for this display.
type Opts struct {
	W       int
	H       int
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is a monochrome OLED panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	rect    image.Rectangle
	palette ansi256.Palette

	frame    *image1bit.VerticalLSB
	buf      bytes.Buffer
	drawn    bool
	inverted bool
}

// New returns a Dev that displays at the console.
//
// Permits to do local testing of display animations.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	r := image.Rect(0, 0, opts.W, opts.H)
	d := &Dev{
		w:       colorable.NewColorableStdout(),
		rect:    r,
		palette: *p,
		frame:   image1bit.NewVerticalLSB(r),
	}
	return d
}

func (d *Dev) String() string {
	return "Screen2D"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the shell prompt is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	if err != nil {
		return err
	}
	return nil
}

// Invert the display (black on white vs white on black).
//
// The frame is unaffected, only how it is rendered.
func (d *Dev) Invert(blackOnWhite bool) error {
	d.inverted = blackOnWhite
	_, err := d.refresh()
	return err
}

// Write accepts a frame in the same vertical byte layout as the SSD1309 and
// renders it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.frame.Pix) {
		return 0, errors.New("invalid pixel stream length")
	}
	copy(d.frame.Pix, pixels)
	return d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
		copy(d.frame.Pix, img.Pix)
	} else {
		draw.Src.Draw(d.frame, r.Intersect(d.rect), src, sp)
	}
	_, err := d.refresh()
	return err
}

func (d *Dev) refresh() (int, error) {
	// This code is designed to minimize the amount of memory allocated per
	// call.
	on := d.palette.Block(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	off := d.palette.Block(color.NRGBA{A: 255})
	if d.inverted {
		on, off = off, on
	}
	d.buf.Reset()
	if d.drawn {
		// Redraw over the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA", d.rect.Dy())
	}
	for y := 0; y < d.rect.Dy(); y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < d.rect.Dx(); x++ {
			if d.frame.BitAt(x, y) == image1bit.On {
				_, _ = d.buf.WriteString(on)
			} else {
				_, _ = d.buf.WriteString(off)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	d.drawn = true
	return len(d.frame.Pix), err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
