// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1309

// controller is the command/data surface of the display, one command group
// or one data run at a time.
type controller interface {
	sendCommand([]byte)
	sendData([]byte)
}

// initDisplay runs the power-up sequence. The order is load-bearing: the
// command lock must be released before anything else is accepted, and the
// panel is switched on only after every drive parameter is programmed.
func initDisplay(ctrl controller, opts *Opts) {
	segRemap := segRemapReverse
	if opts.MirrorHorizontal {
		segRemap = segRemapNormal
	}
	comScan := comScanDec
	if opts.MirrorVertical {
		comScan = comScanInc
	}
	comPins := byte(0x02)
	if !opts.Sequential {
		comPins |= 0x10
	}

	ctrl.sendCommand([]byte{setCommandLock, commandUnlock})
	ctrl.sendCommand([]byte{displayOff})
	ctrl.sendCommand([]byte{setDisplayClockDiv, defaultClockDiv})
	ctrl.sendCommand([]byte{setMultiplexRatio, byte(opts.H - 1)})
	ctrl.sendCommand([]byte{setDisplayOffset, 0x00})
	ctrl.sendCommand([]byte{setStartLine})
	ctrl.sendCommand([]byte{setMemoryMode, memoryModeHorizontal})
	ctrl.sendCommand([]byte{segRemap})
	ctrl.sendCommand([]byte{comScan})
	ctrl.sendCommand([]byte{setComPins, comPins})
	ctrl.sendCommand([]byte{setContrast, defaultContrast})
	ctrl.sendCommand([]byte{setPrecharge, defaultPrecharge})
	ctrl.sendCommand([]byte{setVcomDeselect, defaultVcomDeselect})
	ctrl.sendCommand([]byte{displayAllOnResume})
	ctrl.sendCommand([]byte{normalDisplay})
	ctrl.sendCommand([]byte{deactivateScroll})
	ctrl.sendCommand([]byte{displayOn})
}

// setAddressWindow resets the addressing window to cover the whole panel,
// forcing the controller's write pointer back to the origin.
func setAddressWindow(ctrl controller, w, pages int) {
	ctrl.sendCommand([]byte{setColumnAddr, 0x00, byte(w - 1)})
	ctrl.sendCommand([]byte{setPageAddr, 0x00, byte(pages - 1)})
}
