package io

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseValue converts user typed text into a 16-bit value.
//
// A '0x' or '0b' prefix, or a quoted character, overrides the radix.
// Negative decimal values are stored as 16-bit two's complement.
func ParseValue(text string, radix Radix) (value uint16, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = ErrValueSyntax(text)
		return
	}

	lower := strings.ToLower(text)
	digits := text
	switch {
	case len(text) >= 3 && text[0] == '\'' && text[len(text)-1] == '\'':
		radix = RADIX_ASCII
		digits = text[1 : len(text)-1]
	case strings.HasPrefix(lower, "0x"):
		radix = RADIX_HEX
		digits = text[2:]
	case strings.HasPrefix(lower, "0b"):
		radix = RADIX_BIN
		digits = text[2:]
	}

	if radix == RADIX_ASCII {
		r, size := utf8.DecodeRuneInString(digits)
		if r == utf8.RuneError || size != len(digits) {
			err = ErrValueSyntax(text)
			return
		}
		if r > 0xffff {
			err = ErrValueRange
			return
		}
		value = uint16(r)
		return
	}

	base := radix.Base()
	if base == 0 {
		err = ErrRadixInvalid
		return
	}

	v64, perr := strconv.ParseInt(digits, base, 64)
	if perr != nil {
		var numErr *strconv.NumError
		if errors.As(perr, &numErr) && numErr.Err == strconv.ErrRange {
			err = ErrValueRange
		} else {
			err = ErrValueSyntax(text)
		}
		return
	}

	switch {
	case v64 > 0xffff:
		err = ErrValueRange
	case v64 < 0 && (radix != RADIX_DEC || v64 < -0x8000):
		err = ErrValueRange
	default:
		value = uint16(v64 & 0xffff)
	}

	return
}

// FormatValue formats a value for display. The value itself is unchanged.
func FormatValue(value uint16, radix Radix) string {
	switch radix {
	case RADIX_HEX:
		return fmt.Sprintf("%04X", value)
	case RADIX_BIN:
		return fmt.Sprintf("%016b", value)
	case RADIX_ASCII:
		return string(rune(value))
	default:
		return strconv.Itoa(int(value))
	}
}
