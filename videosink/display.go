// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package videosink provides a monochrome display driver implementing an
// HTTP request handler. Client requests get an initial snapshot of the
// pixel frame and are updated further on every change.
//
// The primary use case is the development of display outputs on a host
// machine. Additionally devices with network connectivity can use this
// driver to provide a copy of their local OLED frame via a web interface.
//
// The protocol used is "MJPEG" (https://en.wikipedia.org/wiki/Motion_JPEG)
// which is often used by IP cameras. Because of its better suitability for
// computer-drawn graphics the PNG image format is used by default. JPEG as
// a format can be selected via Options.Format or using the "format" URL
// parameter.
package videosink

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1309/image1bit"
)

// Options for videosink devices.
type Options struct {
	// W and H are the frame dimensions in pixels.
	W, H int

	// Format specifies the image format to send to clients.
	Format ImageFormat
}

// Display mirrors a 1-bit frame to any number of HTTP clients.
type Display struct {
	defaultFormat ImageFormat

	mu       sync.Mutex
	frame    *image1bit.VerticalLSB
	inverted bool
	clients  map[*client]struct{}
	snapshot map[imageConfig][]byte
}

var _ display.Drawer = (*Display)(nil)
var _ http.Handler = (*Display)(nil)

// New creates a new videosink device instance.
func New(opt *Options) *Display {
	return &Display{
		frame:         image1bit.NewVerticalLSB(image.Rect(0, 0, opt.W, opt.H)),
		clients:       map[*client]struct{}{},
		snapshot:      map[imageConfig][]byte{},
		defaultFormat: opt.Format,
	}
}

// String returns the name of the device.
func (d *Display) String() string {
	return "VideoSink"
}

// Halt implements conn.Resource and terminates all running client requests
// asynchronously.
func (d *Display) Halt() error {
	d.mu.Lock()
	d.terminateClientsLocked()
	d.mu.Unlock()

	return nil
}

// ColorModel implements display.Drawer.
func (d *Display) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Display) Bounds() image.Rectangle {
	return d.frame.Bounds()
}

// Draw implements display.Drawer.
func (d *Display) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.frame.Bounds() && img.Rect == d.frame.Bounds() && sp.X == 0 && sp.Y == 0 {
		copy(d.frame.Pix, img.Pix)
	} else {
		draw.Src.Draw(d.frame, r.Intersect(d.frame.Bounds()), src, sp)
	}
	d.bufferChangedLocked()
	d.mu.Unlock()

	return nil
}

// Write accepts a frame in the same vertical byte layout as the SSD1309 and
// publishes it to all connected clients.
func (d *Display) Write(pixels []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(pixels) != len(d.frame.Pix) {
		return 0, errors.New("invalid pixel stream length")
	}
	copy(d.frame.Pix, pixels)
	d.bufferChangedLocked()
	return len(pixels), nil
}

// Invert the display (black on white vs white on black).
//
// The frame is unaffected, only how it is rendered.
func (d *Display) Invert(blackOnWhite bool) error {
	d.mu.Lock()
	d.inverted = blackOnWhite
	d.bufferChangedLocked()
	d.mu.Unlock()
	return nil
}

// renderLocked expands the 1-bit frame to RGBA for the image encoders.
func (d *Display) renderLocked() *image.RGBA {
	b := d.frame.Bounds()
	img := image.NewRGBA(b)
	on := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	off := color.RGBA{A: 255}
	if d.inverted {
		on, off = off, on
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if d.frame.BitAt(x, y) == image1bit.On {
				img.SetRGBA(x, y, on)
			} else {
				img.SetRGBA(x, y, off)
			}
		}
	}
	return img
}
