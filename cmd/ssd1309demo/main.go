// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package main demonstrates the SSD1309 OLED display driver.
//
// It runs the classics: shapes, text, inversion, contrast, a bouncing ball,
// a checkerboard and a progress bar, on a real panel over SPI, in the
// terminal with -terminal, or in the browser with -video.
//
// Hardware setup (Raspberry Pi defaults):
//
//	Display    Raspberry Pi
//	GND        GND
//	VCC        3.3V
//	SCL       GPIO11 (SPI0 CLK)
//	SDA       GPIO10 (SPI0 MOSI)
//	DC        GPIO24
//	RES       GPIO25
//	CS        GPIO8 (SPI0 CE0)
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1309"
	"periph.io/x/devices/v3/ssd1309/image1bit"
	"periph.io/x/devices/v3/ssd1309/screen2d"
	"periph.io/x/devices/v3/ssd1309/videosink"
	"periph.io/x/host/v3"
)

var (
	spiBus      = flag.String("spi", "", "SPI port name (empty for the first available)")
	dcPin       = flag.String("dc", "24", "data/command pin name")
	csPin       = flag.String("cs", "8", "chip select pin name")
	rstPin      = flag.String("rst", "25", "reset pin name")
	height      = flag.Int("height", 64, "display height in pixels: 32 or 64")
	demoMode    = flag.String("demo", "all", "demo to run: all, shapes, text, invert, contrast, animation, checkerboard, progress, rate")
	iterations  = flag.Int("iterations", 100, "refresh cycles measured by the rate demo")
	useTerminal = flag.Bool("terminal", false, "render to the terminal instead of a panel")
	videoAddr   = flag.String("video", "", "serve the frame over HTTP at this address (e.g. :8080) instead of a panel")
)

// oled is the surface shared by the real panel and the emulators. Halt and
// Bounds come with display.Drawer.
type oled interface {
	display.Drawer
	Invert(blackOnWhite bool) error
}

func main() {
	flag.Parse()

	var dev oled
	if *videoAddr != "" {
		d := videosink.New(&videosink.Options{W: 128, H: *height})
		go func() {
			log.Fatal(http.ListenAndServe(*videoAddr, d))
		}()
		fmt.Printf("Serving display at http://localhost%s\n", *videoAddr)
		dev = d
	} else if *useTerminal {
		dev = screen2d.New(&screen2d.Opts{W: 128, H: *height})
	} else {
		if _, err := host.Init(); err != nil {
			log.Fatalf("failed to initialize periph: %v", err)
		}
		b, err := spireg.Open(*spiBus)
		if err != nil {
			log.Fatalf("failed to open SPI port: %v", err)
		}
		defer b.Close()

		dc := gpioreg.ByName(*dcPin)
		if dc == nil {
			log.Fatalf("GPIO pin %s not found", *dcPin)
		}
		cs := gpioreg.ByName(*csPin)
		if cs == nil {
			log.Fatalf("GPIO pin %s not found", *csPin)
		}
		rst := gpioreg.ByName(*rstPin)
		if rst == nil {
			log.Fatalf("GPIO pin %s not found", *rstPin)
		}

		opts := ssd1309.DefaultOpts
		opts.H = *height
		if opts.H == 32 {
			opts.Sequential = true
		}
		d, err := ssd1309.New(b, dc, cs, rst, &opts)
		if err != nil {
			log.Fatalf("failed to initialize display: %v", err)
		}
		fmt.Printf("Display initialized: %s\n", d)
		dev = d
	}
	defer dev.Halt()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	go func() {
		<-quit
		_ = dev.Halt()
		os.Exit(1)
	}()

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 11})

	if err := run(dev, face, *demoMode); err != nil {
		log.Fatalf("demo failed: %v", err)
	}
	fmt.Println("Demo complete")
}

func run(dev oled, face font.Face, mode string) error {
	switch mode {
	case "all":
		return runAll(dev, face)
	case "shapes":
		return demoShapes(dev)
	case "text":
		return demoText(dev, face)
	case "invert":
		return demoInvert(dev, face)
	case "contrast":
		return demoContrast(dev)
	case "animation":
		return demoAnimation(dev)
	case "checkerboard":
		return demoCheckerboard(dev)
	case "progress":
		return demoProgress(dev, face)
	case "rate":
		return measureRefreshRate(dev, *iterations)
	default:
		return fmt.Errorf("unknown demo %q", mode)
	}
}

func runAll(dev oled, face font.Face) error {
	demos := []func() error{
		func() error { return demoShapes(dev) },
		func() error { return demoText(dev, face) },
		func() error { return demoInvert(dev, face) },
		func() error { return demoContrast(dev) },
		func() error { return demoAnimation(dev) },
		func() error { return demoCheckerboard(dev) },
		func() error { return demoProgress(dev, face) },
	}
	for i, demo := range demos {
		if err := demo(); err != nil {
			return err
		}
		if i < len(demos)-1 {
			time.Sleep(500 * time.Millisecond)
		}
	}
	return nil
}

func demoShapes(dev oled) error {
	fmt.Println("Demo 1: basic shapes")
	b := dev.Bounds()
	w, h := b.Dx(), b.Dy()
	img := image1bit.NewVerticalLSB(b)
	drawBorder(img)
	fillRect(img, 5, 5, 30, h/3)
	drawRect(img, w-35, 5, 30, h/3)
	fillCircle(img, 25, h-16, h/5)
	drawCircle(img, w-25, h-16, h/5)
	drawLine(img, w/2-14, 10, w/2+14, h-9)
	drawLine(img, w/2+14, 10, w/2-14, h-9)
	if err := dev.Draw(b, img, image.Point{}); err != nil {
		return err
	}
	time.Sleep(2 * time.Second)
	return nil
}

func demoText(dev oled, face font.Face) error {
	fmt.Println("Demo 2: text")
	b := dev.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(face)
	dc.DrawStringAnchored("SSD1309 TEST", w/2, h/6, 0.5, 0.5)
	dc.DrawLine(10, h/3, w-10, h/3)
	dc.SetLineWidth(1)
	dc.Stroke()
	dc.DrawStringAnchored(fmt.Sprintf("%dx%d OLED", b.Dx(), b.Dy()), w/2, h*0.55, 0.5, 0.5)
	dc.DrawStringAnchored("driven by periph.io", w/2, h*0.8, 0.5, 0.5)
	if err := dev.Draw(b, dc.Image(), image.Point{}); err != nil {
		return err
	}
	time.Sleep(2 * time.Second)
	return nil
}

func demoInvert(dev oled, face font.Face) error {
	fmt.Println("Demo 3: inversion")
	b := dev.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0.5, 0.5, w-1, h-1)
	dc.Stroke()
	dc.SetFontFace(face)
	dc.DrawStringAnchored("INVERT TEST", w/2, h/2, 0.5, 0.5)
	if err := dev.Draw(b, dc.Image(), image.Point{}); err != nil {
		return err
	}
	time.Sleep(time.Second)
	if err := dev.Invert(true); err != nil {
		return err
	}
	time.Sleep(time.Second)
	if err := dev.Invert(false); err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)
	return nil
}

func demoContrast(dev oled) error {
	fmt.Println("Demo 4: contrast")
	c, ok := dev.(interface{ SetContrast(level int) error })
	if !ok {
		fmt.Println("  contrast is not adjustable on this output, skipping")
		return nil
	}
	img := image1bit.NewVerticalLSB(dev.Bounds())
	checkerboard(img, 8)
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		return err
	}
	for _, level := range []int{0, 32, 64, 128, 192, 255} {
		fmt.Printf("  contrast %d\n", level)
		if err := c.SetContrast(level); err != nil {
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}
	// Back to the initialization default.
	if err := c.SetContrast(0xCF); err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)
	return nil
}

func demoAnimation(dev oled) error {
	fmt.Println("Demo 5: animation (bouncing ball)")
	b := dev.Bounds()
	x, y := b.Dx()/2, b.Dy()/2
	dx, dy := 3, 2
	const radius = 5
	img := image1bit.NewVerticalLSB(b)
	for frame := 0; frame < 60; frame++ {
		img.Fill(image1bit.Off)
		drawBorder(img)
		fillCircle(img, x, y, radius)
		x += dx
		y += dy
		if x <= radius+1 || x >= b.Dx()-radius-2 {
			dx = -dx
		}
		if y <= radius+1 || y >= b.Dy()-radius-2 {
			dy = -dy
		}
		if err := dev.Draw(b, img, image.Point{}); err != nil {
			return err
		}
		time.Sleep(15 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)
	return nil
}

func demoCheckerboard(dev oled) error {
	fmt.Println("Demo 6: checkerboard")
	img := image1bit.NewVerticalLSB(dev.Bounds())
	checkerboard(img, 8)
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		return err
	}
	time.Sleep(2 * time.Second)
	return nil
}

func demoProgress(dev oled, face font.Face) error {
	fmt.Println("Demo 7: progress bar")
	b := dev.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	barW, barH := w-20, h/4
	barX, barY := 10.0, h/2+3
	for progress := 0; progress <= 100; progress += 5 {
		dc := gg.NewContext(b.Dx(), b.Dy())
		dc.SetRGB(0, 0, 0)
		dc.Clear()
		dc.SetRGB(1, 1, 1)
		dc.SetFontFace(face)
		dc.DrawRectangle(0.5, 0.5, w-1, h-1)
		dc.Stroke()
		dc.DrawStringAnchored("Loading...", w/2, h/5, 0.5, 0.5)
		dc.DrawRectangle(barX, barY, barW, barH)
		dc.Stroke()
		if fill := (barW - 4) * float64(progress) / 100; fill > 0 {
			dc.DrawRectangle(barX+2, barY+2, fill, barH-4)
			dc.Fill()
		}
		dc.DrawStringAnchored(fmt.Sprintf("%d%%", progress), w/2, h-10, 0.5, 0.5)
		if err := dev.Draw(b, dc.Image(), image.Point{}); err != nil {
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}
	time.Sleep(time.Second)
	return nil
}

func measureRefreshRate(dev oled, iterations int) error {
	fmt.Println("Measuring refresh rate...")
	b := dev.Bounds()
	img := image1bit.NewVerticalLSB(b)
	img.Fill(image1bit.On)
	if err := dev.Draw(b, img, image.Point{}); err != nil {
		return err
	}
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := dev.Draw(b, img, image.Point{}); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)
	avg := elapsed / time.Duration(iterations)
	fmt.Printf("Iterations:         %d\n", iterations)
	fmt.Printf("Buffer size:        %d bytes\n", b.Dx()*b.Dy()/8)
	fmt.Printf("Total time:         %s\n", elapsed.Round(time.Microsecond))
	fmt.Printf("Average frame time: %s\n", avg.Round(time.Microsecond))
	fmt.Printf("Maximum FPS:        %.1f\n", float64(time.Second)/float64(avg))
	return nil
}

func drawBorder(img *image1bit.VerticalLSB) {
	b := img.Bounds()
	drawRect(img, b.Min.X, b.Min.Y, b.Dx(), b.Dy())
}

func drawRect(img *image1bit.VerticalLSB, x, y, w, h int) {
	img.DrawHLine(x, x+w, y, image1bit.On)
	img.DrawHLine(x, x+w, y+h-1, image1bit.On)
	img.DrawVLine(y, y+h, x, image1bit.On)
	img.DrawVLine(y, y+h, x+w-1, image1bit.On)
}

func fillRect(img *image1bit.VerticalLSB, x, y, w, h int) {
	for row := y; row < y+h; row++ {
		img.DrawHLine(x, x+w, row, image1bit.On)
	}
}

func drawCircle(img *image1bit.VerticalLSB, cx, cy, r int) {
	x, y, e := r, 0, 0
	for x >= y {
		img.SetBit(cx+x, cy+y, image1bit.On)
		img.SetBit(cx+y, cy+x, image1bit.On)
		img.SetBit(cx-y, cy+x, image1bit.On)
		img.SetBit(cx-x, cy+y, image1bit.On)
		img.SetBit(cx-x, cy-y, image1bit.On)
		img.SetBit(cx-y, cy-x, image1bit.On)
		img.SetBit(cx+y, cy-x, image1bit.On)
		img.SetBit(cx+x, cy-y, image1bit.On)
		y++
		e += 1 + 2*y
		if 2*(e-x)+1 > 0 {
			x--
			e += 1 - 2*x
		}
	}
}

func fillCircle(img *image1bit.VerticalLSB, cx, cy, r int) {
	for y := -r; y <= r; y++ {
		half := int(math.Sqrt(float64(r*r - y*y)))
		img.DrawHLine(cx-half, cx+half+1, cy+y, image1bit.On)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func drawLine(img *image1bit.VerticalLSB, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		img.SetBit(x0, y0, image1bit.On)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func checkerboard(img *image1bit.VerticalLSB, square int) {
	b := img.Bounds()
	for row := 0; row < b.Dy()/square; row++ {
		for col := 0; col < b.Dx()/square; col++ {
			if (row+col)%2 == 0 {
				fillRect(img, col*square, row*square, square, square)
			}
		}
	}
}
