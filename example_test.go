// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1309_test

import (
	"image"
	"log"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1309"
	"periph.io/x/devices/v3/ssd1309/image1bit"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI port registry to find the first available SPI port.
	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dc := gpioreg.ByName("24")
	cs := gpioreg.ByName("8")
	rst := gpioreg.ByName("25")

	dev, err := ssd1309.New(b, dc, cs, rst, &ssd1309.DefaultOpts)
	if err != nil {
		log.Fatalf("failed to initialize display: %v", err)
	}

	// Draw on it. White text on a black background.
	img := image1bit.NewVerticalLSB(dev.Bounds())
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: f,
		Dot:  fixed.P(0, img.Bounds().Dy()-1-f.Descent),
	}
	drawer.DrawString("Hello from periph!")

	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		log.Fatal(err)
	}
	time.Sleep(5 * time.Second)

	if err := dev.Halt(); err != nil {
		log.Fatal(err)
	}
}

func Example_gg() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI port registry to find the first available SPI port.
	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dcPin := gpioreg.ByName("24")
	csPin := gpioreg.ByName("8")
	rstPin := gpioreg.ByName("25")

	dev, err := ssd1309.New(b, dcPin, csPin, rstPin, &ssd1309.DefaultOpts)
	if err != nil {
		log.Fatalf("failed to initialize display: %v", err)
	}

	// Render an anti-aliased scene with gg; Draw thresholds it to 1 bit.
	bounds := dev.Bounds()
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 16})
	dc.SetFontFace(face)
	text := "Hello from periph!"
	tw, th := dc.MeasureString(text)
	padding := 4.0
	dc.DrawRoundedRectangle(padding, padding, tw+padding*2, th+padding, 6)
	dc.Stroke()
	dc.DrawString(text, padding*2, padding+th)
	for i := 0; i < 10; i++ {
		dc.DrawCircle(float64(10+(11*i)), 50, 4)
	}
	dc.Fill()

	if err := dev.Draw(bounds, dc.Image(), image.Point{}); err != nil {
		log.Fatal(err)
	}
	time.Sleep(5 * time.Second)

	if err := dev.Halt(); err != nil {
		log.Fatal(err)
	}
}
