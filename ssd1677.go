// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1677

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"
)

var (
	// ErrNotInitialized is returned when an operation requires a prior
	// successful Init.
	ErrNotInitialized = errors.New("ssd1677: display not initialized")

	// ErrBufferSize is returned when a pixel plane does not match the
	// configured buffer size exactly.
	ErrBufferSize = errors.New("ssd1677: buffer size mismatch")

	// ErrLUTSize is returned when a waveform table does not have the exact
	// length an operation requires.
	ErrLUTSize = errors.New("ssd1677: invalid LUT length")

	// ErrInvalidRegion is returned when a partial update region is empty, not
	// byte aligned on the X axis, or extends beyond the panel.
	ErrInvalidRegion = errors.New("ssd1677: invalid region")
)

// LUT contains a waveform table that is used to program the display. The
// SSD1677 expects exactly 112 bytes.
type LUT []byte

// RefreshMode selects the display update control sequence used for a refresh.
type RefreshMode int

// Valid RefreshMode.
const (
	// Full is the slow, flicker clearing, highest fidelity refresh.
	Full RefreshMode = iota
	// Partial refreshes without the clearing flash; may leave ghosting.
	Partial
	// Fast trades contrast for the quickest update.
	Fast
)

// Region is a rectangular panel area for partial updates, in native pixel
// coordinates. X and W must be multiples of 8 because RAM writes are byte
// packed.
type Region struct {
	X, Y, W, H int
}

// BufferSize returns the size in bytes of one pixel plane covering the
// region.
func (r Region) BufferSize() int {
	return r.W / 8 * r.H
}

// SleepMode selects what the controller retains in deep sleep.
type SleepMode byte

// Valid SleepMode.
const (
	SleepNormal               SleepMode = 0x00
	SleepPreserveRAM          SleepMode = 0x01
	SleepPreserveRAMAndAnalog SleepMode = 0x03
)

// Dev is the handler to control an SSD1677 based panel. It exclusively owns
// the bus and control lines; no other entity may issue commands on them.
type Dev struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	cfg *Config

	// initialized is false until Init completes and after a transport failure
	// during Init, because hardware state after a partial sequence is
	// unknown.
	initialized bool
}

// New creates a handler for a panel connected over the given SPI port and
// control lines.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, cfg *Config) (*Dev, error) {
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	// The BUSY line is polled, not edge driven.
	if err := busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, err
	}

	return &Dev{
		c:    c,
		dc:   dc,
		cs:   cs,
		rst:  rst,
		busy: busy,
		cfg:  cfg,
	}, nil
}

// NewHat creates a handler using the default Waveshare e-paper HAT wiring on
// a Raspberry Pi.
func NewHat(p spi.Port, cfg *Config) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return New(p, dc, cs, rst, busy, cfg)
}

// Init performs a hardware reset followed by the configuration derived
// initialization sequence. It must complete successfully before any refresh
// operation; after a failure the panel state is unknown and Init is the only
// recovery path.
func (d *Dev) Init() error {
	d.initialized = false

	eh := errorHandler{d: *d}
	eh.hardwareReset()
	initDisplay(&eh, d.cfg)
	if eh.err != nil {
		return eh.err
	}

	d.initialized = true
	return nil
}

// LoadLUT programs a custom waveform table. It overrides the controller's
// OTP waveform until the next Init. The table must be exactly 112 bytes;
// nothing is transmitted otherwise.
func (d *Dev) LoadLUT(lut LUT) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if len(lut) != lutSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrLUTSize, len(lut), lutSize)
	}

	eh := errorHandler{d: *d}
	loadLUT(&eh, lut)
	return eh.err
}

// LoadLUTWithVoltages programs a shortened 105 byte waveform table together
// with the gate driving voltage, the three source driving voltages and VCOM.
// Some panels ship waveforms in this split form instead of the full table.
func (d *Dev) LoadLUTWithVoltages(lut LUT, gate byte, source [3]byte, vcom byte) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if len(lut) != lutShortSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrLUTSize, len(lut), lutShortSize)
	}

	eh := errorHandler{d: *d}
	loadLUTWithVoltages(&eh, lut, gate, source, vcom)
	return eh.err
}

// FullRefresh triggers a full refresh cycle from the current RAM contents.
// Callers should expect multi-second blocking while wait is true.
func (d *Dev) FullRefresh(wait bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}

	eh := errorHandler{d: *d}
	updateDisplay(&eh, d.cfg.updateCtrl2Full, wait)
	return eh.err
}

// Update uploads both pixel planes and triggers a refresh with the given
// mode. Each plane must be exactly Config.BufferSize bytes in native packing;
// no partial write is attempted on a size mismatch.
func (d *Dev) Update(black, red []byte, mode RefreshMode, wait bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	want := d.cfg.BufferSize()
	if len(black) != want {
		return fmt.Errorf("%w: black plane is %d bytes, want %d", ErrBufferSize, len(black), want)
	}
	if len(red) != want {
		return fmt.Errorf("%w: red plane is %d bytes, want %d", ErrBufferSize, len(red), want)
	}

	eh := errorHandler{d: *d}
	writeImage(&eh, d.cfg, black, red)
	updateDisplay(&eh, d.cfg.ctrl2For(mode), wait)
	return eh.err
}

// UpdateRegion uploads both pixel planes of a panel region and triggers a
// refresh with the given mode. The region must be byte aligned on the X axis
// and within the panel; each plane must be exactly Region.BufferSize bytes
// holding only the region rows. Nothing is transmitted when validation fails.
func (d *Dev) UpdateRegion(r Region, black, red []byte, mode RefreshMode, wait bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if err := d.cfg.validateRegion(r); err != nil {
		return err
	}
	want := r.BufferSize()
	if len(black) != want {
		return fmt.Errorf("%w: black plane is %d bytes, want %d", ErrBufferSize, len(black), want)
	}
	if len(red) != want {
		return fmt.Errorf("%w: red plane is %d bytes, want %d", ErrBufferSize, len(red), want)
	}

	eh := errorHandler{d: *d}
	writeRegion(&eh, d.cfg, r, black, red)
	updateDisplay(&eh, d.cfg.ctrl2For(mode), wait)
	return eh.err
}

// ClearRAM fills both RAM planes with the configured clear values without
// triggering a refresh.
func (d *Dev) ClearRAM() error {
	if !d.initialized {
		return ErrNotInitialized
	}

	eh := errorHandler{d: *d}
	clearRAM(&eh, d.cfg)
	return eh.err
}

// Sleep makes the controller enter deep sleep mode. It can be woken up by
// calling Init again.
func (d *Dev) Sleep(mode SleepMode) error {
	eh := errorHandler{d: *d}
	sleep(&eh, mode)
	if eh.err != nil {
		return eh.err
	}

	d.initialized = false
	return nil
}

// Halt implements conn.Resource. It puts the controller in deep sleep with
// RAM retained.
func (d *Dev) Halt() error {
	return d.Sleep(SleepPreserveRAM)
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1677.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.cfg.dims.Cols, d.cfg.dims.Rows)
}

var _ conn.Resource = &Dev{}
