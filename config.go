// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1677

import (
	"errors"
	"fmt"
)

// Gate and source driver limits of the SSD1677.
const (
	MaxGateOutputs   = 680
	MaxSourceOutputs = 960
)

var (
	// ErrInvalidDimensions is returned when the requested panel size exceeds
	// the driver limits or the column count is not byte aligned.
	ErrInvalidDimensions = errors.New("ssd1677: invalid dimensions")

	// ErrMissingDimensions is returned by NewConfig when Opts.Dimensions was
	// left at its zero value.
	ErrMissingDimensions = errors.New("ssd1677: dimensions not set")
)

// Dimensions describes the panel size in pixels. Rows correspond to gate
// outputs (height), Cols to source outputs (width).
type Dimensions struct {
	Rows int
	Cols int
}

// NewDimensions validates a panel size. Rows must be in [1, 680], Cols in
// [8, 960] and a multiple of 8, because RAM writes are byte packed.
func NewDimensions(rows, cols int) (Dimensions, error) {
	if rows < 1 || rows > MaxGateOutputs {
		return Dimensions{}, fmt.Errorf("%w: %dx%d (rows must be 1..%d)", ErrInvalidDimensions, cols, rows, MaxGateOutputs)
	}
	if cols < 8 || cols > MaxSourceOutputs || cols%8 != 0 {
		return Dimensions{}, fmt.Errorf("%w: %dx%d (cols must be 8..%d and a multiple of 8)", ErrInvalidDimensions, cols, rows, MaxSourceOutputs)
	}
	return Dimensions{Rows: rows, Cols: cols}, nil
}

// BytesPerRow returns the packed row stride in bytes.
func (d Dimensions) BytesPerRow() int {
	return d.Cols / 8
}

// BufferSize returns the size in bytes of one pixel plane.
func (d Dimensions) BufferSize() int {
	return d.BytesPerRow() * d.Rows
}

// Rotation of the displayed image relative to the panel's native scanning
// orientation.
type Rotation int

// Valid Rotation values, clockwise.
const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// RAMXAddressing selects the unit of the RAM X address registers. Most
// SSD1677 panels address X in pixels; some older gate arrays use bytes.
type RAMXAddressing int

// Valid RAMXAddressing values.
const (
	XAddressPixels RAMXAddressing = iota
	XAddressBytes
)

// Opts holds the panel tuning parameters accepted by NewConfig. Dimensions is
// the only required field; start from DefaultOpts and override what the panel
// datasheet calls for.
type Opts struct {
	// Dimensions is the panel size in pixels. Required.
	Dimensions Dimensions

	// Rotation of the displayed image.
	Rotation Rotation

	// GateScanning is the third byte of the driver output control command,
	// selecting the gate scanning sequence and direction.
	GateScanning byte

	// DataEntryMode sets the address counter auto-increment directions
	// (bit 0: X increment, bit 1: Y increment, bit 2: counter axis).
	DataEntryMode byte

	// RAMXAddressing selects pixel or byte units for the X address registers.
	RAMXAddressing RAMXAddressing

	// RAMYInverted swaps the Y window start/end pair for panels wired with a
	// reversed gate scan.
	RAMYInverted bool

	// ClearBW and ClearRed are the fill values used to clear the two RAM
	// planes.
	ClearBW  byte
	ClearRed byte

	// UpdateCtrl2Full, UpdateCtrl2Partial and UpdateCtrl2Fast are the display
	// update control 2 sequences for the three refresh modes.
	UpdateCtrl2Full    byte
	UpdateCtrl2Partial byte
	UpdateCtrl2Fast    byte

	// VCOM is the common electrode voltage register value.
	VCOM byte

	// BorderWaveform controls the border color and transition behavior.
	BorderWaveform byte

	// TempSensor selects the temperature sensor (0x80 internal, 0x48
	// external).
	TempSensor byte

	// BoosterSoftStart is the 5 byte booster soft start sequence.
	BoosterSoftStart [5]byte
}

// DefaultOpts returns the documented default tuning values. Dimensions is
// left unset and must be filled in by the caller.
func DefaultOpts() Opts {
	return Opts{
		GateScanning:       0x02,
		DataEntryMode:      0x01,
		RAMXAddressing:     XAddressPixels,
		ClearBW:            0xFF,
		ClearRed:           0x00,
		UpdateCtrl2Full:    0xF7,
		UpdateCtrl2Partial: 0xC7,
		UpdateCtrl2Fast:    0xC7,
		VCOM:               0x3C,
		BorderWaveform:     0x01,
		TempSensor:         0x80,
		BoosterSoftStart:   [5]byte{0xAE, 0xC7, 0xC3, 0xC0, 0x40},
	}
}

// Config is an immutable snapshot of the panel tuning parameters. It is
// shared by reference with the Dev for its entire lifetime and must not be
// mutated after NewConfig returns.
type Config struct {
	dims             Dimensions
	rotation         Rotation
	gateScanning     byte
	dataEntryMode    byte
	ramXAddressing   RAMXAddressing
	ramYInverted     bool
	clearBW          byte
	clearRed         byte
	updateCtrl2Full  byte
	updateCtrl2Part  byte
	updateCtrl2Fast  byte
	vcom             byte
	borderWaveform   byte
	tempSensor       byte
	boosterSoftStart [5]byte
}

// NewConfig validates opts and returns an immutable configuration.
func NewConfig(opts Opts) (*Config, error) {
	if opts.Dimensions == (Dimensions{}) {
		return nil, ErrMissingDimensions
	}
	dims, err := NewDimensions(opts.Dimensions.Rows, opts.Dimensions.Cols)
	if err != nil {
		return nil, err
	}
	return &Config{
		dims:             dims,
		rotation:         opts.Rotation,
		gateScanning:     opts.GateScanning,
		dataEntryMode:    opts.DataEntryMode,
		ramXAddressing:   opts.RAMXAddressing,
		ramYInverted:     opts.RAMYInverted,
		clearBW:          opts.ClearBW,
		clearRed:         opts.ClearRed,
		updateCtrl2Full:  opts.UpdateCtrl2Full,
		updateCtrl2Part:  opts.UpdateCtrl2Partial,
		updateCtrl2Fast:  opts.UpdateCtrl2Fast,
		vcom:             opts.VCOM,
		borderWaveform:   opts.BorderWaveform,
		tempSensor:       opts.TempSensor,
		boosterSoftStart: opts.BoosterSoftStart,
	}, nil
}

// Dimensions returns the native panel size.
func (c *Config) Dimensions() Dimensions {
	return c.dims
}

// Rotation returns the configured rotation.
func (c *Config) Rotation() Rotation {
	return c.rotation
}

// BufferSize returns the size in bytes of one pixel plane.
func (c *Config) BufferSize() int {
	return c.dims.BufferSize()
}

// rotatedDimensions returns the panel size as seen through the configured
// rotation; 90 and 270 degrees swap rows and columns.
func (c *Config) rotatedDimensions() Dimensions {
	if c.rotation == Rotation90 || c.rotation == Rotation270 {
		return Dimensions{Rows: c.dims.Cols, Cols: c.dims.Rows}
	}
	return c.dims
}

// dataEntryByte returns the data entry mode with the scan directions flipped
// for a 180 degree rotation. 90/270 never change the hardware addressing;
// they are handled by PixelBuffer.
func (c *Config) dataEntryByte() byte {
	if c.rotation == Rotation180 {
		return c.dataEntryMode ^ 0x03
	}
	return c.dataEntryMode
}

// validateRegion checks that r is non-empty, byte aligned on the X axis and
// within the panel bounds.
func (c *Config) validateRegion(r Region) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("%w: %dx%d at (%d, %d) is empty", ErrInvalidRegion, r.W, r.H, r.X, r.Y)
	}
	if r.X%8 != 0 || r.W%8 != 0 {
		return fmt.Errorf("%w: %dx%d at (%d, %d) is not byte aligned", ErrInvalidRegion, r.W, r.H, r.X, r.Y)
	}
	if r.X < 0 || r.Y < 0 || r.X+r.W > c.dims.Cols || r.Y+r.H > c.dims.Rows {
		return fmt.Errorf("%w: %dx%d at (%d, %d) exceeds the %dx%d panel", ErrInvalidRegion, r.W, r.H, r.X, r.Y, c.dims.Cols, c.dims.Rows)
	}
	return nil
}

func (c *Config) ctrl2For(mode RefreshMode) byte {
	switch mode {
	case Partial:
		return c.updateCtrl2Part
	case Fast:
		return c.updateCtrl2Fast
	default:
		return c.updateCtrl2Full
	}
}
