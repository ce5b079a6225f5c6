// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1677

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// ErrBusyTimeout is returned when the BUSY line stays asserted longer than
// busyTimeout. The panel state must be assumed inconsistent; the recovery
// path is Init.
var ErrBusyTimeout = errors.New("ssd1677: timeout waiting for busy to deassert")

const (
	// busyTimeout bounds a single busy wait. A full refresh of a large panel
	// takes several seconds; anything beyond this is a wedged controller.
	busyTimeout = 30 * time.Second

	busyPollInterval = 10 * time.Millisecond
)

// errorHandler is a wrapper for error management. The first failure sticks
// and suppresses every following bus operation, so a command sequence is
// never continued past an error.
type errorHandler struct {
	d   Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) cTx(w []byte, r []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, r)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	deadline := time.Now().Add(busyTimeout)
	for eh.d.busy.Read() == gpio.High {
		if time.Now().After(deadline) {
			eh.err = ErrBusyTimeout
			return
		}
		time.Sleep(busyPollInterval)
	}
}

// hardwareReset pulses the RST line low and waits for the controller to come
// out of reset.
func (eh *errorHandler) hardwareReset() {
	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)
	eh.rstOut(gpio.Low)
	time.Sleep(2 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)

	eh.waitUntilIdle()
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	eh.cTx([]byte{cmd}, nil)
	eh.csOut(gpio.High)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	eh.cTx(data, nil)
	eh.csOut(gpio.High)
}

func (eh *errorHandler) sendByte(b byte) {
	eh.sendData([]byte{b})
}
