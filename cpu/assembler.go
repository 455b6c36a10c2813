// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Line is a tokenized line of assembly text.
type Line struct {
	LineNo int      // Source line number, 1-based.
	Text   string   // Source text, without comments.
	Label  string   // Label bound to the line's address, if any.
	Words  []string // Mnemonic followed by any operands.
}

var (
	labelRe = regexp.MustCompile(`^\s*(\w+)\s*,`)
	wordRe  = regexp.MustCompile(`\$\([^\$]*\)|[^\s,]+`)
)

// splitLine tokenizes a line of text. Returns false for blank and comment
// only lines.
func splitLine(text string, lineno int) (line Line, ok bool) {
	if n := strings.Index(text, "//"); n >= 0 {
		text = text[:n]
	}
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	line = Line{LineNo: lineno, Text: text}

	rest := text
	if match := labelRe.FindStringSubmatchIndex(rest); match != nil {
		line.Label = rest[match[2]:match[3]]
		rest = rest[match[1]:]
	}

	line.Words = wordRe.FindAllString(rest, -1)
	ok = true

	return
}

// Assembler is a two pass assembler for the MARIE system.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Symbol map[string]int // Map of labels to addresses.
	Opcode []Opcode       // List of generated opcodes.
}

// Assemble assembles source text into a program.
func Assemble(source string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(source))
}

// Parse parses an input stream into a Program.
// The first error found aborts assembly, and no program is returned.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lines []Line
	var lineno int
	for scanner.Scan() {
		lineno += 1
		line, ok := splitLine(scanner.Text(), lineno)
		if ok {
			lines = append(lines, line)
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	asm.Symbol = make(map[string]int, 16)
	asm.Opcode = asm.Opcode[:0]

	err = asm.passLabels(lines)
	if err != nil {
		return
	}

	err = asm.passEncode(lines)
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
		Symbol:  asm.Symbol,
	}

	return
}

// passLabels binds every label to the address of its line.
func (asm *Assembler) passLabels(lines []Line) (err error) {
	for addr, line := range lines {
		if addr >= MEMORY_SIZE {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: ErrProgramTooLarge}
			return
		}

		if len(line.Label) == 0 {
			continue
		}

		_, ok := asm.Symbol[line.Label]
		if ok {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: ErrLabelDuplicate}
			return
		}

		if asm.Verbose {
			log.Printf("asm: %v = 0x%03x", line.Label, addr)
		}
		asm.Symbol[line.Label] = addr
	}

	return
}

// passEncode generates one opcode per line.
func (asm *Assembler) passEncode(lines []Line) (err error) {
	for addr, line := range lines {
		var code Code
		code, err = asm.encode(line.Words)
		if err != nil {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}

		if asm.Verbose {
			log.Printf("asm: %v: %03x %04x %v", line.LineNo, addr, uint16(code), line.Text)
		}

		asm.Opcode = append(asm.Opcode, Opcode{
			LineNo:  line.LineNo,
			Address: addr,
			Words:   line.Words,
			Code:    code,
		})
	}

	return
}

// encode assembles the words of a line.
func (asm *Assembler) encode(words []string) (code Code, err error) {
	if len(words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	mn, ok := LookupMnemonic(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := words[1:]
	if !mn.Operand {
		if len(args) != 0 {
			err = ErrArgumentExtra
			return
		}
		code = MakeCode(mn.Op, 0)
		return
	}

	if len(args) == 0 {
		err = ErrArgumentMissing
		return
	}
	if len(args) > 1 {
		err = ErrArgumentExtra
		return
	}

	value, err := asm.valueOf(mn, args[0])
	if err != nil {
		return
	}

	switch {
	case mn.Data:
		if value < -(SIGN_BIT) || value > WORD_MASK {
			err = ErrValueRange
			return
		}
		code = Code(uint16(value & WORD_MASK))
	case mn.Op == OP_SKIPCOND:
		if value != SKIP_NEGATIVE && value != SKIP_ZERO && value != SKIP_POSITIVE {
			err = ErrConditionInvalid
			return
		}
		code = MakeCode(mn.Op, uint16(value))
	default:
		if value < 0 || value > ADDRESS_MASK {
			err = ErrValueRange
			return
		}
		code = MakeCode(mn.Op, uint16(value))
	}

	return
}

// valueOf resolves an operand: a label, a $(...) expression, or a literal
// if the mnemonic accepts one.
func (asm *Assembler) valueOf(mn Mnemonic, word string) (value int, err error) {
	addr, ok := asm.Symbol[word]
	if ok {
		value = addr
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		value, err = asm.parenEval(word[2 : len(word)-1])
		return
	}

	if mn.Radix == 0 {
		err = ErrLabelMissing(word)
		return
	}

	digits := word
	if mn.Radix == 16 {
		digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
	}
	v64, err := strconv.ParseInt(digits, mn.Radix, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for label, addr := range asm.Symbol {
		pred[label] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -(1<<31) || st_int64 >= (1<<31) {
		err = ErrValueRange
		return
	}
	value = int(st_int64)
	return
}
