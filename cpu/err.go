package cpu

import (
	"errors"

	"github.com/ezrec/marie/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOverflow         = errors.New(f("arithmetic overflow"))
	ErrUnderflow        = errors.New(f("arithmetic underflow"))
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrConditionInvalid = errors.New(f("requires a valid condition"))
	ErrProgramTooLarge  = errors.New(f("program exceeds memory"))

	// Assembler errors
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeMissing      = errors.New(f("instruction missing"))
	ErrArgumentMissing    = errors.New(f("requires an argument"))
	ErrArgumentExtra      = errors.New(f("does not accept an argument"))
	ErrInstructionInvalid = errors.New(f("unknown instruction"))
	ErrValueRange         = errors.New(f("value out of range"))
)

// ErrRange is a register, memory address, or memory value outside of its
// bit width.
type ErrRange struct {
	Name  string
	Value int
	Limit int
}

func (err ErrRange) Error() string {
	return f("%v value %d is out of bounds (0-%d)", err.Name, err.Value, err.Limit)
}

func (err ErrRange) Is(target error) (ok bool) {
	_, ok = target.(ErrRange)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("undefined symbol '%v'", string(el))
}

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
