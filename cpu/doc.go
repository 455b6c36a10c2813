// Package cpu implements the processor and assembler for the MARIE system.
//
// The CPU consists of a 4096 word memory and five registers: the 16-bit
// accumulator (AC), instruction register (IR) and memory buffer register
// (MBR), and the 12-bit memory address register (MAR) and program counter
// (PC). Every register and memory write is range checked; values never
// wrap silently.
//
// The assembler is a two pass assembler for the MARIE instruction set,
// supporting labels, decimal and hexadecimal data words, and compile-time
// expression evaluation of operands.
package cpu
