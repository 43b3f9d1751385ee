// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package videosink

import (
	"bytes"
	"io/ioutil"
	"mime/multipart"
	"net/textproto"
	"regexp"
	"testing"
)

var boundaryRe = regexp.MustCompile(`^[a-f0-9]{60,70}$`)

func TestRandomBoundary(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := randomBoundary(); !boundaryRe.MatchString(got) {
			t.Errorf("Boundary must match the expression %q: %s", boundaryRe.String(), got)
		}
	}
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	pw := makePartWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", "image/png")

	bodies := [][]byte{
		[]byte("first frame"),
		[]byte("second frame"),
	}
	for _, body := range bodies {
		if err := pw.writeFrame(header, body); err != nil {
			t.Fatalf("writeFrame() failed: %v", err)
		}
	}

	mr := multipart.NewReader(&buf, pw.boundary)
	for i, want := range bodies {
		part, err := mr.NextPart()
		if err != nil {
			t.Fatalf("NextPart() #%d failed: %v", i, err)
		}
		if got := part.Header.Get("Content-Type"); got != "image/png" {
			t.Errorf("part #%d Content-Type = %q", i, got)
		}
		got, err := ioutil.ReadAll(part)
		if err != nil {
			t.Fatalf("reading part #%d failed: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("part #%d = %q, want %q", i, got, want)
		}
	}
}
