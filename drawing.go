// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1677

import "image"

// PixelBuffer accumulates pixel writes into the two bit-packed planes the
// controller RAM expects. Coordinates are logical: the configured rotation is
// applied while packing, so the planes are always in the panel's native
// scanning order and can be passed to Dev.Update as-is.
type PixelBuffer struct {
	cfg   *Config
	bw    []byte
	red   []byte
	dirty bool
}

// NewPixelBuffer returns a buffer with both planes filled with the configured
// clear values.
func NewPixelBuffer(cfg *Config) *PixelBuffer {
	b := &PixelBuffer{
		cfg: cfg,
		bw:  make([]byte, cfg.BufferSize()),
		red: make([]byte, cfg.BufferSize()),
	}
	for i := range b.bw {
		b.bw[i] = cfg.clearBW
	}
	for i := range b.red {
		b.red[i] = cfg.clearRed
	}
	return b
}

// Bounds returns the drawable area in logical coordinates; 90 and 270 degree
// rotations swap width and height.
func (b *PixelBuffer) Bounds() image.Rectangle {
	dims := b.cfg.rotatedDimensions()
	return image.Rect(0, 0, dims.Cols, dims.Rows)
}

// Dirty reports whether the buffer changed since the last Flush.
func (b *PixelBuffer) Dirty() bool {
	return b.dirty
}

// SetPixel sets the pixel at the logical coordinate (x, y). Out of range
// coordinates are ignored, following the image/draw convention.
func (b *PixelBuffer) SetPixel(x, y int, c Color) {
	idx, mask, ok := b.pos(x, y)
	if !ok {
		return
	}

	if c == Black {
		b.bw[idx] &^= mask
	} else {
		b.bw[idx] |= mask
	}
	if c == Red {
		b.red[idx] |= mask
	} else {
		b.red[idx] &^= mask
	}
	b.dirty = true
}

// Fill sets every pixel to the given color.
func (b *PixelBuffer) Fill(c Color) {
	bw, red := c.bwFill(), c.redFill()
	for i := range b.bw {
		b.bw[i] = bw
	}
	for i := range b.red {
		b.red[i] = red
	}
	b.dirty = true
}

// pos maps a logical coordinate to the native byte index and bit mask.
func (b *PixelBuffer) pos(x, y int) (int, byte, bool) {
	bounds := b.cfg.rotatedDimensions()
	if x < 0 || x >= bounds.Cols || y < 0 || y >= bounds.Rows {
		return 0, 0, false
	}

	stride := b.cfg.dims.BytesPerRow()
	cols := b.cfg.dims.Cols
	rows := b.cfg.dims.Rows

	switch b.cfg.rotation {
	case Rotation90:
		return (cols-1-y)/8 + stride*x, 0x01 << (y % 8), true
	case Rotation180:
		return (stride*rows - 1) - (x/8 + stride*y), 0x01 << (x % 8), true
	case Rotation270:
		return y/8 + (rows-1-x)*stride, 0x80 >> (y % 8), true
	default:
		return x/8 + stride*y, 0x80 >> (x % 8), true
	}
}

// Flush forwards both planes to the controller when the buffer is dirty and
// does nothing otherwise. The dirty flag clears only after a successful
// update.
func (d *Dev) Flush(b *PixelBuffer, mode RefreshMode, wait bool) error {
	if !b.dirty {
		return nil
	}
	if err := d.Update(b.bw, b.red, mode, wait); err != nil {
		return err
	}
	b.dirty = false
	return nil
}
