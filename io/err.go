package io

import (
	"errors"

	"github.com/ezrec/marie/translate"
)

var f = translate.From

var (
	// Value errors
	ErrValueRange   = errors.New(f("value out of 16-bit range"))
	ErrRadixInvalid = errors.New(f("radix invalid"))
)

// ErrValueSyntax is text that is not a value in the requested radix.
type ErrValueSyntax string

func (err ErrValueSyntax) Error() string {
	return f("'%v' is not a value", string(err))
}
