// Package asm assembles Hack assembly text into decoded instructions for the
// emulator. Symbols are resolved in two passes: labels first, then variables,
// which are allocated from RAM[16] upwards in order of first use.
package asm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"hackvm/pkg/cpu"
)

const (
	VariableBase = 16
	maxAddress   = 32767
)

var predefined = map[string]uint16{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": cpu.ScreenBase,
	"KBD":    cpu.KeyboardAddr,
}

func init() {
	for i := 0; i < 16; i++ {
		predefined["R"+strconv.Itoa(i)] = uint16(i)
	}
}

var jumps = map[string]cpu.Jump{
	"JGT": cpu.JGT,
	"JEQ": cpu.JEQ,
	"JGE": cpu.JGE,
	"JLT": cpu.JLT,
	"JNE": cpu.JNE,
	"JLE": cpu.JLE,
	"JMP": cpu.JMP,
}

var binaryOps = map[byte]cpu.ALUOp{
	'+': cpu.OpAdd,
	'-': cpu.OpSub,
	'&': cpu.OpAnd,
	'|': cpu.OpOr,
}

// Program is an assembled ROM image.
type Program struct {
	Instructions []cpu.Instruction
	// Symbols holds every label and variable the program defined.
	Symbols map[string]uint16
	// SourceMap maps a ROM address to the source line it came from.
	SourceMap map[uint16]int
}

// Address returns the ROM address of label.
func (p *Program) Address(label string) (uint16, bool) {
	addr, ok := p.Symbols[label]
	return addr, ok
}

type Assembler struct {
	labels    map[string]uint16
	variables map[string]uint16
	nextVar   uint16
}

type parsedLine struct {
	lineNo  int
	label   string
	address string // operand of an @ instruction
	dest    string
	comp    string
	jump    string
}

func (p parsedLine) empty() bool {
	return p.label == "" && p.address == "" && p.comp == ""
}

func NewAssembler() *Assembler {
	return &Assembler{
		labels:    make(map[string]uint16),
		variables: make(map[string]uint16),
		nextVar:   VariableBase,
	}
}

func Assemble(code string) (*Program, error) {
	return NewAssembler().Assemble(code)
}

func (a *Assembler) Assemble(code string) (*Program, error) {
	lines := strings.Split(code, "\n")

	parsed := make([]parsedLine, 0, len(lines))
	for i, raw := range lines {
		p, err := parseLine(raw, i+1)
		if err != nil {
			return nil, err
		}
		if !p.empty() {
			parsed = append(parsed, p)
		}
	}

	if err := a.pass1(parsed); err != nil {
		return nil, err
	}
	return a.pass2(parsed)
}

func (a *Assembler) pass1(lines []parsedLine) error {
	var address int

	for _, p := range lines {
		if p.label == "" {
			address++
			continue
		}
		if _, ok := predefined[p.label]; ok {
			return fmt.Errorf("label '%s' on line %d redefines a predefined symbol", p.label, p.lineNo)
		}
		if _, exists := a.labels[p.label]; exists {
			return fmt.Errorf("duplicate label '%s' on line %d", p.label, p.lineNo)
		}
		if address > maxAddress {
			return fmt.Errorf("label '%s' on line %d points past the end of ROM", p.label, p.lineNo)
		}
		a.labels[p.label] = uint16(address)
	}

	if address > maxAddress+1 {
		return fmt.Errorf("program too large: %d instructions", address)
	}
	return nil
}

func (a *Assembler) pass2(lines []parsedLine) (*Program, error) {
	prog := &Program{SourceMap: make(map[uint16]int)}

	for _, p := range lines {
		if p.label != "" {
			continue
		}
		prog.SourceMap[uint16(len(prog.Instructions))] = p.lineNo

		if p.address != "" {
			val, err := a.resolve(p.address, p.lineNo)
			if err != nil {
				return nil, err
			}
			prog.Instructions = append(prog.Instructions, cpu.LoadA(val))
			continue
		}

		in, err := decodeCompute(p)
		if err != nil {
			return nil, err
		}
		prog.Instructions = append(prog.Instructions, in)
	}

	prog.Symbols = make(map[string]uint16, len(a.labels)+len(a.variables))
	for k, v := range a.labels {
		prog.Symbols[k] = v
	}
	for k, v := range a.variables {
		prog.Symbols[k] = v
	}
	return prog, nil
}

// resolve turns the operand of an @ instruction into a value.
func (a *Assembler) resolve(token string, lineNo int) (uint16, error) {
	if unicode.IsDigit(rune(token[0])) {
		value, err := strconv.ParseUint(token, 10, 16)
		if err != nil || value > maxAddress {
			return 0, fmt.Errorf("constant out of range on line %d: %s", lineNo, token)
		}
		return uint16(value), nil
	}

	if !isSymbol(token) {
		return 0, fmt.Errorf("invalid symbol '%s' on line %d", token, lineNo)
	}
	if addr, ok := predefined[token]; ok {
		return addr, nil
	}
	if addr, ok := a.labels[token]; ok {
		return addr, nil
	}
	if addr, ok := a.variables[token]; ok {
		return addr, nil
	}
	if a.nextVar >= cpu.ScreenBase {
		return 0, fmt.Errorf("out of variable space at '%s' on line %d", token, lineNo)
	}
	addr := a.nextVar
	a.variables[token] = addr
	a.nextVar++
	return addr, nil
}

func parseLine(raw string, lineNo int) (parsedLine, error) {
	p := parsedLine{lineNo: lineNo}

	line := stripComments(raw)
	line = strings.Join(strings.Fields(line), "")
	if line == "" {
		return p, nil
	}

	switch line[0] {
	case '(':
		if !strings.HasSuffix(line, ")") {
			return p, fmt.Errorf("unterminated label on line %d", lineNo)
		}
		label := line[1 : len(line)-1]
		if !isSymbol(label) {
			return p, fmt.Errorf("invalid label '%s' on line %d", label, lineNo)
		}
		p.label = label
		return p, nil
	case '@':
		if len(line) == 1 {
			return p, fmt.Errorf("missing operand on line %d", lineNo)
		}
		p.address = line[1:]
		return p, nil
	}

	if eq := strings.IndexByte(line, '='); eq >= 0 {
		p.dest = line[:eq]
		line = line[eq+1:]
	}
	if semi := strings.IndexByte(line, ';'); semi >= 0 {
		p.jump = line[semi+1:]
		line = line[:semi]
	}
	p.comp = line
	if p.comp == "" {
		return p, fmt.Errorf("missing computation on line %d", lineNo)
	}
	return p, nil
}

func stripComments(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

func decodeCompute(p parsedLine) (cpu.Instruction, error) {
	in := cpu.Instruction{}

	dest, err := parseDest(p.dest, p.lineNo)
	if err != nil {
		return in, err
	}
	comp, err := parseComp(p.comp, p.lineNo)
	if err != nil {
		return in, err
	}
	jump := cpu.JumpNone
	if p.jump != "" {
		j, ok := jumps[p.jump]
		if !ok {
			return in, fmt.Errorf("invalid jump '%s' on line %d", p.jump, p.lineNo)
		}
		jump = j
	}

	in.Dest, in.Comp, in.Jump = dest, comp, jump
	return in, nil
}

func parseDest(s string, lineNo int) (cpu.Dest, error) {
	var d cpu.Dest
	for _, r := range s {
		var bit cpu.Dest
		switch r {
		case 'A':
			bit = cpu.DestA
		case 'D':
			bit = cpu.DestD
		case 'M':
			bit = cpu.DestM
		default:
			return 0, fmt.Errorf("invalid destination '%s' on line %d", s, lineNo)
		}
		if d&bit != 0 {
			return 0, fmt.Errorf("repeated destination '%s' on line %d", s, lineNo)
		}
		d |= bit
	}
	return d, nil
}

// parseComp decodes a computation. Besides the canonical Hack mnemonics it
// accepts commuted forms such as A+D and 1+M. A and M may not be combined.
func parseComp(s string, lineNo int) (cpu.Comp, error) {
	invalid := fmt.Errorf("invalid computation '%s' on line %d", s, lineNo)

	switch s {
	case "0":
		return cpu.Comp{Op: cpu.OpZero}, nil
	case "1":
		return cpu.Comp{Op: cpu.OpOne}, nil
	case "-1":
		return cpu.Comp{Op: cpu.OpMinusOne}, nil
	}

	if len(s) == 1 {
		r, ok := parseReg(s[0])
		if !ok {
			return cpu.Comp{}, invalid
		}
		return cpu.Comp{Op: cpu.OpIdent, X: r}, nil
	}

	if len(s) == 2 && (s[0] == '!' || s[0] == '-') {
		r, ok := parseReg(s[1])
		if !ok {
			return cpu.Comp{}, invalid
		}
		op := cpu.OpNot
		if s[0] == '-' {
			op = cpu.OpNeg
		}
		return cpu.Comp{Op: op, X: r}, nil
	}

	if len(s) == 3 {
		if r, ok := parseReg(s[0]); ok {
			switch s[1:] {
			case "<<":
				return cpu.Comp{Op: cpu.OpShl, X: r}, nil
			case ">>":
				return cpu.Comp{Op: cpu.OpShr, X: r}, nil
			case "+1":
				return cpu.Comp{Op: cpu.OpInc, X: r}, nil
			case "-1":
				return cpu.Comp{Op: cpu.OpDec, X: r}, nil
			}
		}
		if s[:2] == "1+" {
			if r, ok := parseReg(s[2]); ok {
				return cpu.Comp{Op: cpu.OpInc, X: r}, nil
			}
		}

		x, xok := parseReg(s[0])
		y, yok := parseReg(s[2])
		op, opok := binaryOps[s[1]]
		if !xok || !yok || !opok || x == y {
			return cpu.Comp{}, invalid
		}
		if x != cpu.RegD && y != cpu.RegD {
			return cpu.Comp{}, invalid
		}
		return cpu.Comp{Op: op, X: x, Y: y}, nil
	}

	return cpu.Comp{}, invalid
}

func parseReg(b byte) (cpu.Reg, bool) {
	switch b {
	case 'A':
		return cpu.RegA, true
	case 'D':
		return cpu.RegD, true
	case 'M':
		return cpu.RegM, true
	}
	return cpu.RegNone, false
}

// isSymbol reports whether s is a legal Hack symbol: letters, digits, '_',
// '.', '$' and ':', not starting with a digit.
func isSymbol(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("_.$:", r) {
			return false
		}
	}

	return true
}
