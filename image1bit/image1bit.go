// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image1bit implements black and white (1 bit per pixel) 2D graphics.
//
// It is compatible with package image/draw, so anything that can draw into a
// draw.Image can draw into a VerticalLSB without knowing the byte packing.
//
// VerticalLSB is the packing used by the SSD1309 display controller RAM: each
// byte covers 8 vertically stacked pixels of one column, lowest bit on top.
package image1bit

import (
	"image"
	"image/color"
	"image/draw"
)

// Bit implements a 1 bit color.
type Bit bool

// RGBA returns either all white or all black.
//
// The panel could be yellow or blue just as well, but that information is not
// available here. To render on a colored panel, use the 1 bit image as a mask
// for a color.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 65535, 65535, 65535, 65535
	}
	return 0, 0, 0, 65535
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// Possible bitness.
const (
	On  Bit = true
	Off Bit = false
)

// BitModel is the color model for 1 bit color.
var BitModel = color.ModelFunc(convert)

// VerticalLSB is a 1 bit (black and white) image.
//
// Each byte is 8 vertical pixels. Each stride is an horizontal band of 8
// pixels high with the lowest bit being the top pixel of the band:
//
//	x x x x x x x x
//	0 . . . . . . .
//	1 . . . . . . .
//	2 . . . . . . .
//	3 . . . . . . .
//	4 . . . . . . .
//	5 . . . . . . .
//	6 . . . . . . .
//	7 . . . . . . .
//
// This matches the GDDRAM organization of the SSD1309, so Pix can be streamed
// to the controller without transformation.
type VerticalLSB struct {
	// Pix holds the image's pixels as a vertically packed, LSB first bitmap.
	// It can be passed directly to ssd1309.Dev.Write().
	Pix []byte
	// Stride is the Pix stride (in bytes) between vertically adjacent 8 pixel
	// high bands.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewVerticalLSB returns an initialized VerticalLSB instance.
//
// The vertical range is rounded to whole 8 pixel bands; partial bands at the
// top or bottom are backed by storage but masked out of the image bounds.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w := r.Dx()
	// Round down.
	minY := r.Min.Y &^ 7
	// Round up.
	maxY := (r.Max.Y + 7) &^ 7
	bands := (maxY - minY) / 8
	return &VerticalLSB{Pix: make([]byte, w*bands), Stride: w, Rect: r}
}

// ColorModel implements image.Image.
func (i *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds implements image.Image.
func (i *VerticalLSB) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *VerticalLSB) At(x, y int) color.Color {
	return i.BitAt(x, y)
}

// BitAt is the optimized version of At().
func (i *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return Off
	}
	offset, mask := i.PixOffset(x, y)
	return Bit(i.Pix[offset]&mask != 0)
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (i *VerticalLSB) Opaque() bool {
	return true
}

// PixOffset returns the index into Pix and the bit mask for the pixel at
// (x, y).
func (i *VerticalLSB) PixOffset(x, y int) (int, byte) {
	minY := i.Rect.Min.Y &^ 7
	pY := y - minY
	offset := pY/8*i.Stride + (x - i.Rect.Min.X)
	return offset, byte(1 << uint(pY&7))
}

// Set implements draw.Image.
func (i *VerticalLSB) Set(x, y int, c color.Color) {
	i.SetBit(x, y, convertBit(c))
}

// SetBit is the optimized version of Set().
func (i *VerticalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return
	}
	offset, mask := i.PixOffset(x, y)
	if b {
		i.Pix[offset] |= mask
	} else {
		i.Pix[offset] &^= mask
	}
}

// Fill sets every pixel to b.
func (i *VerticalLSB) Fill(b Bit) {
	v := byte(0x00)
	if b {
		v = 0xFF
	}
	for j := range i.Pix {
		i.Pix[j] = v
	}
}

// DrawHLine draws an horizontal line from (x1, y) to (x2-1, y).
func (i *VerticalLSB) DrawHLine(x1, x2, y int, b Bit) {
	for x := x1; x < x2; x++ {
		i.SetBit(x, y, b)
	}
}

// DrawVLine draws a vertical line from (x, y1) to (x, y2-1).
func (i *VerticalLSB) DrawVLine(y1, y2, x int, b Bit) {
	for y := y1; y < y2; y++ {
		i.SetBit(x, y, b)
	}
}

var _ draw.Image = &VerticalLSB{}

func convert(c color.Color) color.Color {
	return convertBit(c)
}

// convertBit returns a Bit from a generic color.
func convertBit(c color.Color) Bit {
	switch t := c.(type) {
	case Bit:
		return t
	default:
		r, g, b, _ := c.RGBA()
		return Bit((r | g | b) >= 0x8000)
	}
}
