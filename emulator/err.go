package emulator

import (
	"errors"

	"github.com/ezrec/marie/translate"
)

var f = translate.From

var (
	ErrNotRunning = errors.New(f("simulation is not running"))
	ErrNotPaused  = errors.New(f("simulation is not paused"))
	ErrStepLimit  = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo  int    // Source line, or 0 if unknown.
	Address uint16 // Address of the failing instruction.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("address %03x %v", err.Address, err.Err)
	}
	return f("line %d (address %03x) %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
