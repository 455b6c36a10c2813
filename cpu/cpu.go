// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

const (
	MEMORY_SIZE  = 4096   // Words of memory.
	ADDRESS_MASK = 0xfff  // Largest 12-bit address.
	WORD_MASK    = 0xffff // Largest 16-bit word.
	SIGN_BIT     = 0x8000 // Sign bit of a 16-bit word.
)

// Register is an index into the register file.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_AC  = Register(0) // ac
	REG_IR  = Register(1) // ir
	REG_MBR = Register(2) // mbr
	REG_MAR = Register(3) // mar
	REG_PC  = Register(4) // pc
)

// Limit returns the largest value the register can hold.
func (reg Register) Limit() int {
	switch reg {
	case REG_MAR, REG_PC:
		return ADDRESS_MASK
	default:
		return WORD_MASK
	}
}

// Trap is the reason an instruction cycle handed control back to the caller.
type Trap int

//go:generate go tool stringer -linecomment -type=Trap
const (
	TRAP_NONE  = Trap(0) // none
	TRAP_INPUT = Trap(1) // input
	TRAP_HALT  = Trap(2) // halt
)

// Console is the I/O attachment serving the INPUT and OUTPUT instructions.
type Console interface {
	// Input returns the next pending input value, if any.
	Input() (value uint16, ok bool)
	// Output receives the accumulator of an OUTPUT instruction.
	Output(value uint16)
}

// Cpu is the simulation context for the MARIE processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register [5]uint16           // Register file, indexed by Register.
	Memory   [MEMORY_SIZE]uint16 // Main memory.

	Ticks int // Instructions executed since reset.

	console Console
}

// NewCpu creates a new CPU with cleared memory and registers.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// SetConsole attaches the console used by INPUT and OUTPUT.
func (cpu *Cpu) SetConsole(console Console) {
	cpu.console = console
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for reg := REG_AC; reg <= REG_PC; reg++ {
		val := cpu.Register[reg]
		var strval string
		if reg.Limit() == ADDRESS_MASK {
			strval = fmt.Sprintf("%03X", val)
		} else {
			strval = fmt.Sprintf("%04X", val)
		}
		text += fmt.Sprintf("% 5s: %v\n", strings.ToUpper(reg.String()), strval)
	}

	return
}

// Reset the CPU state.
// - Clears the registers and all of memory.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Memory[:])
	cpu.Ticks = 0
}

// Load resets the CPU, then copies words into memory starting at address 0.
func (cpu *Cpu) Load(words []uint16) (err error) {
	if len(words) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	cpu.Reset()
	copy(cpu.Memory[:], words)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(words))
	}

	return
}

// Get returns the value of a register.
func (cpu *Cpu) Get(reg Register) uint16 {
	return cpu.Register[reg]
}

// Set writes a register, failing if the value is outside its bit width.
// The register is unchanged on failure.
func (cpu *Cpu) Set(reg Register, value int) (err error) {
	limit := reg.Limit()
	if value < 0 || value > limit {
		err = ErrRange{Name: strings.ToUpper(reg.String()), Value: value, Limit: limit}
		return
	}

	cpu.Register[reg] = uint16(value)
	return
}

// checkAddress validates a 12-bit memory address.
func checkAddress(addr int) (err error) {
	if addr < 0 || addr > ADDRESS_MASK {
		err = ErrRange{Name: f("memory address"), Value: addr, Limit: ADDRESS_MASK}
	}
	return
}

// Read returns the memory word at an address.
func (cpu *Cpu) Read(addr int) (value uint16, err error) {
	err = checkAddress(addr)
	if err != nil {
		return
	}

	value = cpu.Memory[addr]
	return
}

// Write stores a 16-bit value at an address.
func (cpu *Cpu) Write(addr int, value int) (err error) {
	err = checkAddress(addr)
	if err != nil {
		return
	}

	if value < 0 || value > WORD_MASK {
		err = ErrRange{Name: f("memory"), Value: value, Limit: WORD_MASK}
		return
	}

	cpu.Memory[addr] = uint16(value)
	return
}

// indirect returns the memory word addressed by the word at addr.
func (cpu *Cpu) indirect(addr int) (target int, value uint16, err error) {
	ptr, err := cpu.Read(addr)
	if err != nil {
		return
	}

	target = int(ptr)
	value, err = cpu.Read(target)
	return
}

// Fetch loads the instruction at PC into IR, and advances PC.
func (cpu *Cpu) Fetch() (code Code, err error) {
	pc := int(cpu.Register[REG_PC])

	err = cpu.Set(REG_MAR, pc)
	if err != nil {
		return
	}

	word, err := cpu.Read(int(cpu.Register[REG_MAR]))
	if err != nil {
		return
	}

	err = cpu.Set(REG_MBR, int(word))
	if err != nil {
		return
	}

	err = cpu.Set(REG_IR, int(cpu.Register[REG_MBR]))
	if err != nil {
		return
	}

	err = cpu.Set(REG_PC, pc+1)
	if err != nil {
		return
	}

	code = Code(cpu.Register[REG_IR])
	return
}

// Tick executes a single fetch-decode-execute cycle.
func (cpu *Cpu) Tick() (trap Trap, err error) {
	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	trap, err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (trap Trap, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("cpu: %03x: %v", cpu.Register[REG_MAR], code)
	}

	addr := int(code.Address())
	ac := int(cpu.Register[REG_AC])
	pc := int(cpu.Register[REG_PC])

	var value uint16
	var target int

	switch code.Op() {
	case OP_JNS:
		err = cpu.Write(addr, pc)
		if err != nil {
			return
		}
		err = cpu.Set(REG_PC, addr+1)
	case OP_LOAD:
		value, err = cpu.Read(addr)
		if err != nil {
			return
		}
		err = cpu.Set(REG_AC, int(value))
	case OP_STORE:
		err = cpu.Write(addr, ac)
	case OP_ADD:
		value, err = cpu.Read(addr)
		if err != nil {
			return
		}
		err = cpu.add(ac, int(value))
	case OP_SUBT:
		value, err = cpu.Read(addr)
		if err != nil {
			return
		}
		result := ac - int(value)
		if result < 0 {
			if cpu.Verbose {
				log.Printf("cpu: subt underflow: %d - %d", ac, value)
			}
			err = ErrUnderflow
			return
		}
		err = cpu.Set(REG_AC, result)
	case OP_INPUT:
		var ok bool
		if cpu.console != nil {
			value, ok = cpu.console.Input()
		}
		if !ok {
			// Don't advance to next instruction.
			err = cpu.Set(REG_PC, pc-1)
			trap = TRAP_INPUT
			return
		}
		err = cpu.Set(REG_AC, int(value))
	case OP_OUTPUT:
		if cpu.console != nil {
			cpu.console.Output(uint16(ac))
		}
	case OP_HALT:
		trap = TRAP_HALT
	case OP_SKIPCOND:
		var skip bool
		switch (addr >> 10) & 0x3 {
		case 0:
			skip = (ac & SIGN_BIT) != 0
		case 1:
			skip = ac == 0
		case 2:
			skip = ac > 0 && (ac&SIGN_BIT) == 0
		default:
			err = ErrConditionInvalid
			return
		}
		if skip {
			err = cpu.Set(REG_PC, pc+1)
		}
	case OP_JUMP:
		err = cpu.Set(REG_PC, addr)
	case OP_CLEAR:
		err = cpu.Set(REG_AC, 0)
	case OP_ADDI:
		_, value, err = cpu.indirect(addr)
		if err != nil {
			return
		}
		err = cpu.add(ac, int(value))
	case OP_JUMPI:
		value, err = cpu.Read(addr)
		if err != nil {
			return
		}
		err = cpu.Set(REG_PC, int(value))
	case OP_LOADI:
		_, value, err = cpu.indirect(addr)
		if err != nil {
			return
		}
		err = cpu.Set(REG_AC, int(value))
	case OP_STOREI:
		value, err = cpu.Read(addr)
		if err != nil {
			return
		}
		target = int(value)
		err = cpu.Write(target, ac)
	default:
		err = ErrOpcodeInvalid
		return
	}

	return
}

// add stores a sum into AC, failing on 16-bit overflow.
func (cpu *Cpu) add(ac int, value int) (err error) {
	result := ac + value
	if result > WORD_MASK {
		if cpu.Verbose {
			log.Printf("cpu: add overflow: %d + %d", ac, value)
		}
		err = ErrOverflow
		return
	}

	err = cpu.Set(REG_AC, result)
	return
}
