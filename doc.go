// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1677 controls e-paper panels driven by the Solomon Systech
// SSD1677 controller, supporting tri-color (black/white/red) displays up to
// 960x680 pixels.
//
// Datasheet:
// https://www.solomon-systech.com.hk/wp-content/uploads/SSD1677.pdf
//
// The controller is driven over SPI with three auxiliary GPIO lines: DC
// (data/command select), RST (reset, active low) and BUSY (active high while
// the controller executes an internal operation). A chip select line brackets
// every bus transaction.
//
// Pixel data is transferred as two bit-packed planes of cols/8 bytes per row,
// most significant bit first. A pixel is black when its black/white plane bit
// is 0, white when it is 1, and red when the red plane bit is additionally 1.
//
// Rotation contract: 0 and 180 degree rotations are realized in hardware by
// flipping the data entry mode scan directions and the RAM address window;
// buffers always cross the bus in the panel's native packing. 90 and 270
// degree rotations are a software transform applied by PixelBuffer before
// packing, never by the addressing registers.
//
// The driver is synchronous and not safe for concurrent use; callers in
// multi-goroutine hosts must serialize access to a Dev.
package ssd1677
