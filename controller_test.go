// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1309

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type record struct {
	cmd  byte
	args []byte
	data []byte
}

type fakeController []record

func (r *fakeController) sendCommand(c []byte) {
	*r = append(*r, record{
		cmd:  c[0],
		args: append([]byte(nil), c[1:]...),
	})
}

func (r *fakeController) sendData(data []byte) {
	cur := &(*r)[len(*r)-1]
	cur.data = append(cur.data, data...)
}

func TestInitDisplay(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
		want []record
	}{
		{
			name: "128x64",
			opts: Opts{W: 128, H: 64},
			want: []record{
				{cmd: setCommandLock, args: []byte{commandUnlock}},
				{cmd: displayOff},
				{cmd: setDisplayClockDiv, args: []byte{0x80}},
				{cmd: setMultiplexRatio, args: []byte{0x3F}},
				{cmd: setDisplayOffset, args: []byte{0x00}},
				{cmd: setStartLine},
				{cmd: setMemoryMode, args: []byte{0x00}},
				{cmd: segRemapReverse},
				{cmd: comScanDec},
				{cmd: setComPins, args: []byte{0x12}},
				{cmd: setContrast, args: []byte{0xCF}},
				{cmd: setPrecharge, args: []byte{0xF1}},
				{cmd: setVcomDeselect, args: []byte{0x30}},
				{cmd: displayAllOnResume},
				{cmd: normalDisplay},
				{cmd: deactivateScroll},
				{cmd: displayOn},
			},
		},
		{
			name: "128x32 sequential",
			opts: Opts{W: 128, H: 32, Sequential: true},
			want: []record{
				{cmd: setCommandLock, args: []byte{commandUnlock}},
				{cmd: displayOff},
				{cmd: setDisplayClockDiv, args: []byte{0x80}},
				{cmd: setMultiplexRatio, args: []byte{0x1F}},
				{cmd: setDisplayOffset, args: []byte{0x00}},
				{cmd: setStartLine},
				{cmd: setMemoryMode, args: []byte{0x00}},
				{cmd: segRemapReverse},
				{cmd: comScanDec},
				{cmd: setComPins, args: []byte{0x02}},
				{cmd: setContrast, args: []byte{0xCF}},
				{cmd: setPrecharge, args: []byte{0xF1}},
				{cmd: setVcomDeselect, args: []byte{0x30}},
				{cmd: displayAllOnResume},
				{cmd: normalDisplay},
				{cmd: deactivateScroll},
				{cmd: displayOn},
			},
		},
		{
			name: "128x64 mirrored",
			opts: Opts{W: 128, H: 64, MirrorHorizontal: true, MirrorVertical: true},
			want: []record{
				{cmd: setCommandLock, args: []byte{commandUnlock}},
				{cmd: displayOff},
				{cmd: setDisplayClockDiv, args: []byte{0x80}},
				{cmd: setMultiplexRatio, args: []byte{0x3F}},
				{cmd: setDisplayOffset, args: []byte{0x00}},
				{cmd: setStartLine},
				{cmd: setMemoryMode, args: []byte{0x00}},
				{cmd: segRemapNormal},
				{cmd: comScanInc},
				{cmd: setComPins, args: []byte{0x12}},
				{cmd: setContrast, args: []byte{0xCF}},
				{cmd: setPrecharge, args: []byte{0xF1}},
				{cmd: setVcomDeselect, args: []byte{0x30}},
				{cmd: displayAllOnResume},
				{cmd: normalDisplay},
				{cmd: deactivateScroll},
				{cmd: displayOn},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController

			initDisplay(&got, &tc.opts)

			if diff := cmp.Diff([]record(got), tc.want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
				t.Errorf("initDisplay() difference (-got +want):\n%s", diff)
			}
			if got[0].cmd != setCommandLock {
				t.Errorf("initDisplay() must start with the command unlock, got %#02x", got[0].cmd)
			}
			if got[len(got)-1].cmd != displayOn {
				t.Errorf("initDisplay() must end with display on, got %#02x", got[len(got)-1].cmd)
			}
			for _, r := range got {
				// The SSD1306 charge pump command. The SSD1309 uses an
				// external boost converter and must never receive it.
				if r.cmd == 0x8D {
					t.Error("initDisplay() must not emit the charge pump command")
				}
			}
		})
	}
}

func TestSetAddressWindow(t *testing.T) {
	for _, tc := range []struct {
		name  string
		w     int
		pages int
		want  []record
	}{
		{
			name:  "128x64",
			w:     128,
			pages: 8,
			want: []record{
				{cmd: setColumnAddr, args: []byte{0x00, 0x7F}},
				{cmd: setPageAddr, args: []byte{0x00, 0x07}},
			},
		},
		{
			name:  "128x32",
			w:     128,
			pages: 4,
			want: []record{
				{cmd: setColumnAddr, args: []byte{0x00, 0x7F}},
				{cmd: setPageAddr, args: []byte{0x00, 0x03}},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController

			setAddressWindow(&got, tc.w, tc.pages)

			if diff := cmp.Diff([]record(got), tc.want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
				t.Errorf("setAddressWindow() difference (-got +want):\n%s", diff)
			}
		})
	}
}
