// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1309 controls a monochrome OLED display via a SSD1309
// controller over 4-wire SPI.
//
// The driver pushes the full frame on every update: it re-asserts the
// column and page addressing window, then streams the whole pixel buffer in
// one transaction. There is no partial update mode. Re-windowing every time
// keeps the controller's internal address pointer deterministic even after
// an interrupted transfer, at the cost of six command bytes per frame.
//
// The SSD1309 is driven by an external boost converter and, unlike the
// SSD1306, has no internal charge pump. The SSD1306 charge pump command
// (0x8D) must never be sent to it; this driver does not emit it.
//
// The RES (reset) pin is required and owned by this driver: the hardware
// reset and initialization sequence runs during New and again on every call
// to Init.
//
// # Datasheet
//
// https://www.hpinfotech.ro/SSD1309.pdf
package ssd1309
