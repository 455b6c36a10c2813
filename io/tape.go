package io

import (
	"bufio"
	"io"
	"strings"
)

// Tape provides line oriented console I/O for the emulator.
// It reads values typed one line at a time from Input, and writes
// formatted output values to Output.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Radix  Radix // Radix of both input and output values.

	scanner *bufio.Scanner
}

// Rewind drops any buffered input.
func (tc *Tape) Rewind() {
	tc.scanner = nil
}

// Receive reads the next non-blank line of input as values.
// Values are separated by whitespace; in ASCII radix every character of
// the line is a value. Returns io.EOF at the end of input.
func (tc *Tape) Receive() (values []int, err error) {
	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
	}

	for tc.scanner.Scan() {
		text := tc.scanner.Text()
		if tc.Radix == RADIX_ASCII {
			for _, r := range text {
				if r > 0xffff {
					err = ErrValueRange
					return
				}
				values = append(values, int(r))
			}
			if len(values) > 0 {
				return
			}
			continue
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		for _, field := range fields {
			var value uint16
			value, err = ParseValue(field, tc.Radix)
			if err != nil {
				return
			}
			values = append(values, int(value))
		}
		return
	}

	err = tc.scanner.Err()
	if err == nil {
		err = io.EOF
	}
	return
}

// Send writes a value to the output stream. Characters are written as is,
// all other radixes are written one value per line.
func (tc *Tape) Send(value uint16) (err error) {
	text := FormatValue(value, tc.Radix)
	if tc.Radix != RADIX_ASCII {
		text += "\n"
	}

	_, err = io.WriteString(tc.Output, text)
	return
}
