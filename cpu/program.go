package cpu

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Opcode represents a line of assembled code with its source location and generated word.
type Opcode struct {
	LineNo  int      // Source line number, 1-based.
	Address int      // Memory address of the word.
	Words   []string // Tokens of the line, without the label.
	Code    Code     // Assembled word.
}

// Program is the output of the assembler.
type Program struct {
	Opcodes []Opcode
	Symbol  map[string]int // Label to address.
}

// Debug returns the opcode assembled at an address, or nil.
func (prog *Program) Debug(addr uint16) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Address == int(addr) {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []uint16) {
	bins = make([]uint16, 0, len(prog.Opcodes))
	for _, code := range prog.Codes() {
		bins = append(bins, uint16(code))
	}

	return
}

// Codes iterates over the address and word of every opcode.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint16(op.Address), op.Code) {
				return
			}
		}
	}
}

// Symbols iterates over the symbol table in address order.
func (prog *Program) Symbols() iter.Seq2[string, int] {
	return func(yield func(label string, addr int) bool) {
		labels := slices.SortedFunc(maps.Keys(prog.Symbol), func(a, b string) int {
			return cmp.Or(cmp.Compare(prog.Symbol[a], prog.Symbol[b]), cmp.Compare(a, b))
		})
		for _, label := range labels {
			if !yield(label, prog.Symbol[label]) {
				return
			}
		}
	}
}

// Listing writes an address, word, and source listing of the program.
func (prog *Program) Listing(out io.Writer) (err error) {
	labels := make(map[int]string, len(prog.Symbol))
	for label, addr := range prog.Symbols() {
		if _, ok := labels[addr]; !ok {
			labels[addr] = label
		}
	}

	for _, op := range prog.Opcodes {
		label := labels[op.Address]
		if len(label) > 0 {
			label += ","
		}
		_, err = fmt.Fprintf(out, "%03X %04X %4d  %-8s %v\n",
			op.Address, uint16(op.Code), op.LineNo, label, strings.Join(op.Words, " "))
		if err != nil {
			return
		}
	}

	return
}
