// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package videosink

import (
	"image"
	"testing"

	"periph.io/x/devices/v3/ssd1309/image1bit"
)

func TestNewHalt(t *testing.T) {
	d := New(&Options{W: 128, H: 64})

	if got := d.Bounds(); got != image.Rect(0, 0, 128, 64) {
		t.Errorf("Bounds() = %v", got)
	}
	if d.ColorModel() != image1bit.BitModel {
		t.Error("ColorModel() is not image1bit.BitModel")
	}
	if err := d.Halt(); err != nil {
		t.Errorf("Halt() failed: %v", err)
	}
}

func TestWrite(t *testing.T) {
	d := New(&Options{W: 4, H: 8})

	if _, err := d.Write(make([]byte, 3)); err == nil {
		t.Fatal("Write() must reject a short pixel stream")
	}

	n, err := d.Write([]byte{0x01, 0x00, 0x80, 0xFF})
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if n != 4 {
		t.Fatalf("Write() = %d, want 4", n)
	}
	if d.frame.BitAt(0, 0) != image1bit.On {
		t.Error("(0, 0) must be on")
	}
	if d.frame.BitAt(1, 0) != image1bit.Off {
		t.Error("(1, 0) must be off")
	}
	if d.frame.BitAt(2, 7) != image1bit.On {
		t.Error("(2, 7) must be on")
	}
}

func TestWriteDropsSnapshots(t *testing.T) {
	d := New(&Options{W: 4, H: 8})

	// Force an encoded snapshot into the cache, then invalidate it.
	payload := d.grabSnapshot(imageConfig{format: PNG})
	if len(payload) == 0 {
		t.Fatal("expected an encoded frame")
	}
	if len(d.snapshot) != 1 {
		t.Fatalf("expected 1 cached snapshot, got %d", len(d.snapshot))
	}
	if _, err := d.Write(make([]byte, 4)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if len(d.snapshot) != 0 {
		t.Errorf("a new frame must drop cached snapshots, %d left", len(d.snapshot))
	}
}

func TestDrawFastPath(t *testing.T) {
	d := New(&Options{W: 8, H: 8})
	img := image1bit.NewVerticalLSB(d.Bounds())
	img.SetBit(3, 3, image1bit.On)

	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	if d.frame.BitAt(3, 3) != image1bit.On {
		t.Error("(3, 3) must be on")
	}
}

func TestInvertRendering(t *testing.T) {
	d := New(&Options{W: 4, H: 8})
	if _, err := d.Write([]byte{0x01, 0x00, 0x00, 0x00}); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	d.mu.Lock()
	img := d.renderLocked()
	d.mu.Unlock()
	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0xFFFF || g != 0xFFFF || b != 0xFFFF {
		t.Errorf("a set pixel renders white, got %04x %04x %04x", r, g, b)
	}

	if err := d.Invert(true); err != nil {
		t.Fatalf("Invert() failed: %v", err)
	}
	d.mu.Lock()
	img = d.renderLocked()
	d.mu.Unlock()
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0 {
		t.Errorf("a set pixel renders black when inverted, got red %04x", r)
	}
	if d.frame.BitAt(0, 0) != image1bit.On {
		t.Error("the frame itself is untouched by inversion")
	}
}
