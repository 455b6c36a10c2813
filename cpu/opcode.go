package cpu

import (
	"fmt"
	"strings"
)

// CodeOp is the 4-bit operation field of an instruction word.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_JNS      = CodeOp(0)  // jns
	OP_LOAD     = CodeOp(1)  // load
	OP_STORE    = CodeOp(2)  // store
	OP_ADD      = CodeOp(3)  // add
	OP_SUBT     = CodeOp(4)  // subt
	OP_INPUT    = CodeOp(5)  // input
	OP_OUTPUT   = CodeOp(6)  // output
	OP_HALT     = CodeOp(7)  // halt
	OP_SKIPCOND = CodeOp(8)  // skipcond
	OP_JUMP     = CodeOp(9)  // jump
	OP_CLEAR    = CodeOp(10) // clear
	OP_ADDI     = CodeOp(11) // addi
	OP_JUMPI    = CodeOp(12) // jumpi
	OP_LOADI    = CodeOp(13) // loadi
	OP_STOREI   = CodeOp(14) // storei
)

// SKIPCOND condition operands. The condition lives in bits 10-11.
const (
	SKIP_NEGATIVE = 0x000 // Skip if AC sign bit is set.
	SKIP_ZERO     = 0x400 // Skip if AC is zero.
	SKIP_POSITIVE = 0x800 // Skip if AC is non-zero with sign bit clear.
)

// Mnemonic describes an assembly language instruction.
type Mnemonic struct {
	Op      CodeOp // Operation, for machine instructions.
	Operand bool   // Set if the instruction requires an operand.
	Radix   int    // Base of a literal operand, or 0 if only symbols are allowed.
	Data    bool   // Set if the operand itself is emitted, with no operation.
}

// mnemonicMap is the static mnemonic table.
var mnemonicMap = map[string]Mnemonic{
	"jns":      {Op: OP_JNS, Operand: true},
	"load":     {Op: OP_LOAD, Operand: true},
	"store":    {Op: OP_STORE, Operand: true},
	"add":      {Op: OP_ADD, Operand: true},
	"subt":     {Op: OP_SUBT, Operand: true},
	"input":    {Op: OP_INPUT},
	"output":   {Op: OP_OUTPUT},
	"halt":     {Op: OP_HALT},
	"skipcond": {Op: OP_SKIPCOND, Operand: true, Radix: 16},
	"jump":     {Op: OP_JUMP, Operand: true},
	"clear":    {Op: OP_CLEAR},
	"addi":     {Op: OP_ADDI, Operand: true},
	"jumpi":    {Op: OP_JUMPI, Operand: true},
	"loadi":    {Op: OP_LOADI, Operand: true},
	"storei":   {Op: OP_STOREI, Operand: true},
	"dec":      {Operand: true, Radix: 10, Data: true},
	"hex":      {Operand: true, Radix: 16, Data: true},
}

// LookupMnemonic finds an instruction by name, ignoring case.
func LookupMnemonic(name string) (mn Mnemonic, ok bool) {
	mn, ok = mnemonicMap[strings.ToLower(name)]
	return
}

// Operand returns true if the operation takes an address or condition.
func (op CodeOp) Operand() bool {
	mn, ok := mnemonicMap[op.String()]
	return ok && mn.Operand
}

// Code is a single 16-bit instruction word.
type Code uint16

// MakeCode creates an instruction word from an operation and a 12-bit operand.
func MakeCode(op CodeOp, operand uint16) Code {
	return Code((uint16(op) << 12) | (operand & ADDRESS_MASK))
}

// Op returns the operation from bits 12-15 of the instruction word.
func (code Code) Op() CodeOp {
	return CodeOp((uint16(code) >> 12) & 0xf)
}

// Address returns the operand from bits 0-11 of the instruction word.
func (code Code) Address() uint16 {
	return uint16(code) & ADDRESS_MASK
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	op := code.Op()
	switch {
	case op > OP_STOREI:
		return fmt.Sprintf("hex %04x", uint16(code))
	case op.Operand():
		return fmt.Sprintf("%v %03x", op, code.Address())
	default:
		return op.String()
	}
}
