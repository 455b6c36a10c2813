package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text     string
		radix    Radix
		expected uint16
		err      error
	}){
		{"0", RADIX_DEC, 0, nil},
		{"65535", RADIX_DEC, 0xffff, nil},
		{"-1", RADIX_DEC, 0xffff, nil},
		{"-32768", RADIX_DEC, 0x8000, nil},
		{" 12 ", RADIX_DEC, 12, nil},
		{"65536", RADIX_DEC, 0, ErrValueRange},
		{"-32769", RADIX_DEC, 0, ErrValueRange},
		{"99999999999999999999", RADIX_DEC, 0, ErrValueRange},
		{"12a", RADIX_DEC, 0, ErrValueSyntax("12a")},
		{"", RADIX_DEC, 0, ErrValueSyntax("")},
		{"ff", RADIX_HEX, 0xff, nil},
		{"FFFF", RADIX_HEX, 0xffff, nil},
		{"10000", RADIX_HEX, 0, ErrValueRange},
		{"-1", RADIX_HEX, 0, ErrValueRange},
		{"0x1F", RADIX_DEC, 0x1f, nil},
		{"0X1f", RADIX_BIN, 0x1f, nil},
		{"0b101", RADIX_DEC, 5, nil},
		{"1010", RADIX_BIN, 10, nil},
		{"102", RADIX_BIN, 0, ErrValueSyntax("102")},
		{"A", RADIX_ASCII, 65, nil},
		{"'A'", RADIX_DEC, 65, nil},
		{"AB", RADIX_ASCII, 0, ErrValueSyntax("AB")},
		{"é", RADIX_ASCII, 0xe9, nil},
		{"\U0001F600", RADIX_ASCII, 0, ErrValueRange},
		{"1", Radix(9), 0, ErrRadixInvalid},
	}

	for _, entry := range table {
		value, err := ParseValue(entry.text, entry.radix)
		if entry.err == nil {
			assert.NoError(err, entry.text)
			assert.Equal(entry.expected, value, entry.text)
		} else {
			assert.ErrorIs(err, entry.err, entry.text)
		}
	}
}

func TestFormatValue(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("42", FormatValue(42, RADIX_DEC))
	assert.Equal("65535", FormatValue(0xffff, RADIX_DEC))
	assert.Equal("002A", FormatValue(42, RADIX_HEX))
	assert.Equal("0000000000101010", FormatValue(42, RADIX_BIN))
	assert.Equal("*", FormatValue(42, RADIX_ASCII))
}

func TestParseRadix(t *testing.T) {
	assert := assert.New(t)

	for _, radix := range []Radix{RADIX_DEC, RADIX_HEX, RADIX_BIN, RADIX_ASCII} {
		found, err := ParseRadix(radix.String())
		assert.NoError(err)
		assert.Equal(radix, found)
	}

	radix, err := ParseRadix("HEX")
	assert.NoError(err)
	assert.Equal(RADIX_HEX, radix)
	assert.Equal(16, radix.Base())

	_, err = ParseRadix("octal")
	assert.ErrorIs(err, ErrRadixInvalid)
}
