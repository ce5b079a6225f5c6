// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1677

import "encoding/binary"

// Commands
const (
	driverOutputControl            byte = 0x01
	gateDrivingVoltageControl      byte = 0x03
	sourceDrivingVoltageControl    byte = 0x04
	boosterSoftStartControl        byte = 0x0C
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	tempSensorSelect               byte = 0x18
	masterActivation               byte = 0x20
	displayUpdateControl1          byte = 0x21
	displayUpdateControl2          byte = 0x22
	writeRAMBW                     byte = 0x24
	writeRAMRed                    byte = 0x26
	vcomRegisterWrite              byte = 0x2C
	writeLutRegister               byte = 0x32
	borderWaveformControl          byte = 0x3C
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	autoWriteRedRAMRegPattern      byte = 0x46
	autoWriteBWRAMRegPattern       byte = 0x47
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
)

// lutSize is the exact waveform table length the SSD1677 expects. Some panels
// use a shortened table with the voltage registers programmed separately.
const (
	lutSize      = 112
	lutShortSize = 105
)

// controller is the capability set the protocol sequences require from the
// physical bus. errorHandler implements it against real hardware; tests use
// a recording fake.
type controller interface {
	sendCommand(byte)
	sendData([]byte)
	sendByte(byte)
	waitUntilIdle()
}

// initDisplay issues the initialization sequence after a hardware reset. The
// command order is register-sequence dependent; do not reorder.
func initDisplay(ctrl controller, cfg *Config) {
	ctrl.waitUntilIdle()
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	rows := cfg.dims.Rows - 1
	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData([]byte{byte(rows), byte(rows >> 8), cfg.gateScanning})

	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendByte(cfg.dataEntryByte())

	setRAMWindow(ctrl, cfg)

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendByte(cfg.borderWaveform)

	ctrl.sendCommand(vcomRegisterWrite)
	ctrl.sendByte(cfg.vcom)

	booster := cfg.boosterSoftStart
	ctrl.sendCommand(boosterSoftStartControl)
	ctrl.sendData(booster[:])

	ctrl.sendCommand(tempSensorSelect)
	ctrl.sendByte(cfg.tempSensor)

	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(cfg.updateCtrl2Full)

	ctrl.waitUntilIdle()
}

// setRAMWindow programs the address window spanning the full panel.
func setRAMWindow(ctrl controller, cfg *Config) {
	setRAMRegion(ctrl, cfg, Region{W: cfg.dims.Cols, H: cfg.dims.Rows})
}

// setRAMRegion programs the address window covering r and resets both address
// counters to the window origin. The start/end order of each axis follows the
// data entry mode increment bits, so a 180 degree rotation flips both axes.
// RAM Y inversion translates the window to the mirrored gate range and swaps
// the Y pair for panels wired with a reversed gate scan. r must have been
// validated.
func setRAMRegion(ctrl controller, cfg *Config, r Region) {
	id := cfg.dataEntryByte()
	incX := id&0x01 != 0
	incY := id&0x02 != 0

	xStart, xEnd := r.X, r.X+r.W-1
	if cfg.ramXAddressing == XAddressBytes {
		xStart, xEnd = r.X/8, (r.X+r.W-1)/8
	}
	if !incX {
		xStart, xEnd = xEnd, xStart
	}

	yBase := r.Y
	if cfg.ramYInverted {
		yBase = cfg.dims.Rows - r.Y - r.H
	}
	yStart, yEnd := yBase, yBase+r.H-1
	if !incY {
		yStart, yEnd = yEnd, yStart
	}
	if cfg.ramYInverted {
		yStart, yEnd = yEnd, yStart
	}

	var xRange, yRange [4]byte
	binary.LittleEndian.PutUint16(xRange[0:], uint16(xStart))
	binary.LittleEndian.PutUint16(xRange[2:], uint16(xEnd))
	binary.LittleEndian.PutUint16(yRange[0:], uint16(yStart))
	binary.LittleEndian.PutUint16(yRange[2:], uint16(yEnd))

	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData(xRange[:])

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData(yRange[:])

	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendData(xRange[:2])

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData(yRange[:2])
}

// writeImage uploads both full pixel planes to the controller RAM. Buffers
// are in native packing; len validation happens before this is called.
func writeImage(ctrl controller, cfg *Config, black, red []byte) {
	writeRegion(ctrl, cfg, Region{W: cfg.dims.Cols, H: cfg.dims.Rows}, black, red)
}

// writeRegion uploads both pixel planes of a panel region to the controller
// RAM. Buffers hold only the region rows, in native packing.
func writeRegion(ctrl controller, cfg *Config, r Region, black, red []byte) {
	setRAMRegion(ctrl, cfg, r)

	ctrl.sendCommand(writeRAMBW)
	ctrl.sendData(black)

	ctrl.sendCommand(writeRAMRed)
	ctrl.sendData(red)
}

// updateDisplay commits staged RAM contents by triggering a refresh cycle.
// When wait is false the caller is responsible for not reentering the driver
// until BUSY deasserts.
func updateDisplay(ctrl controller, ctrl2 byte, wait bool) {
	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(ctrl2)

	ctrl.sendCommand(masterActivation)

	if wait {
		ctrl.waitUntilIdle()
	}
}

// loadLUT writes a custom waveform table, overriding the OTP waveform until
// the next reset.
func loadLUT(ctrl controller, lut []byte) {
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut)
}

// loadLUTWithVoltages writes a shortened waveform table followed by the gate,
// source and VCOM voltage registers the table leaves unset.
func loadLUTWithVoltages(ctrl controller, lut []byte, gate byte, source [3]byte, vcom byte) {
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut)

	ctrl.sendCommand(gateDrivingVoltageControl)
	ctrl.sendByte(gate)

	ctrl.sendCommand(sourceDrivingVoltageControl)
	ctrl.sendData(source[:])

	ctrl.sendCommand(vcomRegisterWrite)
	ctrl.sendByte(vcom)
}

// clearRAM fills both planes with the configured clear values using the
// controller's auto-write pattern commands.
func clearRAM(ctrl controller, cfg *Config) {
	ctrl.sendCommand(autoWriteBWRAMRegPattern)
	ctrl.sendByte(cfg.clearBW)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(autoWriteRedRAMRegPattern)
	ctrl.sendByte(cfg.clearRed)
	ctrl.waitUntilIdle()
}

func sleep(ctrl controller, mode SleepMode) {
	ctrl.sendCommand(deepSleepMode)
	ctrl.sendByte(byte(mode))
}
