// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1677

import (
	"errors"
	"image"
	"testing"
)

func smallConfig(t *testing.T, rotation Rotation) *Config {
	t.Helper()

	opts := DefaultOpts()
	opts.Dimensions = Dimensions{Rows: 16, Cols: 16}
	opts.Rotation = rotation

	cfg, err := NewConfig(opts)
	if err != nil {
		t.Fatalf("NewConfig() failed: %v", err)
	}
	return cfg
}

func TestPixelBufferPos(t *testing.T) {
	for _, tc := range []struct {
		name     string
		rotation Rotation
		x, y     int
		wantIdx  int
		wantMask byte
	}{
		{name: "native origin", rotation: Rotation0, x: 0, y: 0, wantIdx: 0, wantMask: 0x80},
		{name: "native second pixel", rotation: Rotation0, x: 1, y: 0, wantIdx: 0, wantMask: 0x40},
		{name: "native last bit of byte", rotation: Rotation0, x: 7, y: 0, wantIdx: 0, wantMask: 0x01},
		{name: "native second byte", rotation: Rotation0, x: 8, y: 0, wantIdx: 1, wantMask: 0x80},
		{name: "native second row", rotation: Rotation0, x: 0, y: 1, wantIdx: 2, wantMask: 0x80},
		{name: "native last pixel", rotation: Rotation0, x: 15, y: 15, wantIdx: 31, wantMask: 0x01},
		{name: "90 origin", rotation: Rotation90, x: 0, y: 0, wantIdx: 1, wantMask: 0x01},
		{name: "90 bottom left", rotation: Rotation90, x: 0, y: 15, wantIdx: 0, wantMask: 0x80},
		{name: "180 origin", rotation: Rotation180, x: 0, y: 0, wantIdx: 31, wantMask: 0x01},
		{name: "180 last pixel", rotation: Rotation180, x: 15, y: 15, wantIdx: 0, wantMask: 0x80},
		{name: "270 origin", rotation: Rotation270, x: 0, y: 0, wantIdx: 30, wantMask: 0x80},
		{name: "270 bottom left", rotation: Rotation270, x: 15, y: 0, wantIdx: 0, wantMask: 0x80},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := NewPixelBuffer(smallConfig(t, tc.rotation))

			idx, mask, ok := buf.pos(tc.x, tc.y)
			if !ok {
				t.Fatalf("pos(%d, %d) reported out of range", tc.x, tc.y)
			}
			if idx != tc.wantIdx || mask != tc.wantMask {
				t.Errorf("pos(%d, %d) = (%d, %#02x), want (%d, %#02x)", tc.x, tc.y, idx, mask, tc.wantIdx, tc.wantMask)
			}
		})
	}
}

func TestPixelBufferSetPixel(t *testing.T) {
	buf := NewPixelBuffer(smallConfig(t, Rotation0))

	if buf.Dirty() {
		t.Error("fresh buffer reported dirty")
	}

	buf.SetPixel(0, 0, Black)
	if got := buf.bw[0]; got != 0x7F {
		t.Errorf("bw[0] = %#02x after black pixel, want 0x7f", got)
	}
	if got := buf.red[0]; got != 0x00 {
		t.Errorf("red[0] = %#02x after black pixel, want 0x00", got)
	}

	buf.SetPixel(8, 0, Red)
	if got := buf.bw[1]; got != 0xFF {
		t.Errorf("bw[1] = %#02x after red pixel, want 0xff", got)
	}
	if got := buf.red[1]; got != 0x80 {
		t.Errorf("red[1] = %#02x after red pixel, want 0x80", got)
	}

	buf.SetPixel(0, 0, White)
	if got := buf.bw[0]; got != 0xFF {
		t.Errorf("bw[0] = %#02x after white pixel, want 0xff", got)
	}

	if !buf.Dirty() {
		t.Error("buffer not dirty after pixel writes")
	}
}

func TestPixelBufferOutOfRange(t *testing.T) {
	buf := NewPixelBuffer(smallConfig(t, Rotation0))

	for _, pt := range []image.Point{
		image.Pt(-1, 0),
		image.Pt(0, -1),
		image.Pt(16, 0),
		image.Pt(0, 16),
	} {
		buf.SetPixel(pt.X, pt.Y, Black)
	}

	if buf.Dirty() {
		t.Error("out of range writes marked the buffer dirty")
	}
	for i, b := range buf.bw {
		if b != 0xFF {
			t.Fatalf("bw[%d] = %#02x after out of range writes, want 0xff", i, b)
		}
	}
}

func TestPixelBufferFill(t *testing.T) {
	buf := NewPixelBuffer(smallConfig(t, Rotation0))

	buf.Fill(Red)
	for i := range buf.bw {
		if buf.bw[i] != 0xFF || buf.red[i] != 0xFF {
			t.Fatalf("plane bytes at %d = (%#02x, %#02x) after red fill, want (0xff, 0xff)", i, buf.bw[i], buf.red[i])
		}
	}
	if !buf.Dirty() {
		t.Error("buffer not dirty after fill")
	}
}

func TestPixelBufferBounds(t *testing.T) {
	for _, tc := range []struct {
		rotation Rotation
		want     image.Rectangle
	}{
		{rotation: Rotation0, want: image.Rect(0, 0, 800, 480)},
		{rotation: Rotation90, want: image.Rect(0, 0, 480, 800)},
		{rotation: Rotation180, want: image.Rect(0, 0, 800, 480)},
		{rotation: Rotation270, want: image.Rect(0, 0, 480, 800)},
	} {
		buf := NewPixelBuffer(testConfig(t, func(opts *Opts) {
			opts.Rotation = tc.rotation
		}))
		if got := buf.Bounds(); got != tc.want {
			t.Errorf("Bounds() with rotation %d = %v, want %v", tc.rotation, got, tc.want)
		}
	}
}

func TestFlushClean(t *testing.T) {
	cfg := smallConfig(t, Rotation0)
	d := &Dev{cfg: cfg}
	buf := NewPixelBuffer(cfg)

	// A clean buffer never touches the bus, even on an uninitialized device.
	if err := d.Flush(buf, Partial, true); err != nil {
		t.Errorf("Flush() on clean buffer failed: %v", err)
	}
}

func TestFlushKeepsDirtyOnError(t *testing.T) {
	cfg := smallConfig(t, Rotation0)
	d := &Dev{cfg: cfg}
	buf := NewPixelBuffer(cfg)
	buf.SetPixel(0, 0, Black)

	if err := d.Flush(buf, Partial, true); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Flush() = %v, want ErrNotInitialized", err)
	}
	if !buf.Dirty() {
		t.Error("failed flush cleared the dirty flag")
	}
}
