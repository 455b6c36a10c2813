// Package io provides the console attachments for the MARIE emulator.
// It converts user typed input into plain 16-bit values, formats output
// values for display, and implements a line oriented Tape console.
package io

import (
	"strings"
)

// Radix selects how values are written and read.
type Radix int

//go:generate go tool stringer -linecomment -type=Radix
const (
	RADIX_DEC   = Radix(0) // dec
	RADIX_HEX   = Radix(1) // hex
	RADIX_BIN   = Radix(2) // bin
	RADIX_ASCII = Radix(3) // ascii
)

// ParseRadix returns the radix for a name, such as "hex".
func ParseRadix(name string) (radix Radix, err error) {
	name = strings.ToLower(name)
	for radix = RADIX_DEC; radix <= RADIX_ASCII; radix++ {
		if radix.String() == name {
			return
		}
	}

	radix = RADIX_DEC
	err = ErrRadixInvalid
	return
}

// Base returns the numeric base of the radix, or 0 for characters.
func (radix Radix) Base() int {
	switch radix {
	case RADIX_HEX:
		return 16
	case RADIX_BIN:
		return 2
	case RADIX_DEC:
		return 10
	default:
		return 0
	}
}
