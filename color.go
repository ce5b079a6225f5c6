// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1677

import "fmt"

// Color is one of the three colors a tri-color panel can show. A pixel is
// encoded across the two RAM planes: black as BW=0, white as BW=1, red as
// BW=1 plus RED=1.
type Color int

// Valid Color.
const (
	Black Color = iota
	White
	Red
)

// Set sets the Color to a value represented by the string s. Set implements
// the flag.Value interface.
func (c *Color) Set(s string) error {
	switch s {
	case "black":
		*c = Black
	case "white":
		*c = White
	case "red":
		*c = Red
	default:
		return fmt.Errorf("unknown color %q: expected either black, white or red", s)
	}
	return nil
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// bwFill returns the byte that fills a black/white plane with this color.
func (c Color) bwFill() byte {
	if c == Black {
		return 0x00
	}
	return 0xFF
}

// redFill returns the byte that fills a red plane with this color.
func (c Color) redFill() byte {
	if c == Red {
		return 0xFF
	}
	return 0x00
}
