package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert := assert.New(t)

	code := MakeCode(OP_LOAD, 0x003)
	assert.Equal(Code(0x1003), code)
	assert.Equal(OP_LOAD, code.Op())
	assert.Equal(uint16(0x003), code.Address())

	// Operands are truncated to 12 bits.
	code = MakeCode(OP_JUMP, 0xf123)
	assert.Equal(Code(0x9123), code)

	code = Code(0xfabc)
	assert.Equal(CodeOp(15), code.Op())
	assert.Equal(uint16(0xabc), code.Address())
}

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code     Code
		expected string
	}){
		{0x1003, "load 003"},
		{0x7000, "halt"},
		{0x6000, "output"},
		{0x8400, "skipcond 400"},
		{0xe0ff, "storei 0ff"},
		{0xf00d, "hex f00d"},
	}

	for _, entry := range table {
		assert.Equal(entry.expected, entry.code.String())
	}
}

func TestCodeOp_Operand(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []CodeOp{OP_INPUT, OP_OUTPUT, OP_HALT, OP_CLEAR} {
		assert.False(op.Operand(), op.String())
	}

	for _, op := range []CodeOp{OP_JNS, OP_LOAD, OP_STORE, OP_ADD, OP_SUBT,
		OP_SKIPCOND, OP_JUMP, OP_ADDI, OP_JUMPI, OP_LOADI, OP_STOREI} {
		assert.True(op.Operand(), op.String())
	}
}

func TestLookupMnemonic(t *testing.T) {
	assert := assert.New(t)

	mn, ok := LookupMnemonic("SkipCond")
	assert.True(ok)
	assert.Equal(OP_SKIPCOND, mn.Op)
	assert.Equal(16, mn.Radix)
	assert.False(mn.Data)

	mn, ok = LookupMnemonic("DEC")
	assert.True(ok)
	assert.True(mn.Data)
	assert.Equal(10, mn.Radix)

	mn, ok = LookupMnemonic("load")
	assert.True(ok)
	assert.Equal(0, mn.Radix)

	_, ok = LookupMnemonic("nop")
	assert.False(ok)
}
