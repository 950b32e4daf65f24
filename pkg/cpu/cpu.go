// Package cpu emulates the Hack computer: a 16-bit CPU with A, D and PC
// registers, a program ROM of decoded instructions and 32K words of RAM with
// memory-mapped screen and keyboard.
package cpu

import (
	"errors"
	"fmt"
	"io"
)

const (
	MemorySize   = 32768
	ScreenBase   = 16384 // 8K words, 32 per row, LSB is the leftmost pixel
	ScreenWords  = 8192
	KeyboardAddr = 24576
	ScreenWidth  = 512
	ScreenHeight = 256
)

// Virtual registers at the bottom of RAM.
const (
	SP   = 0
	LCL  = 1
	ARG  = 2
	THIS = 3
	THAT = 4
)

type CPU struct {
	A, D uint16
	PC   uint16

	RAM [MemorySize]uint16
	ROM []Instruction

	// Halted is set when PC leaves the ROM, when the program parks itself in
	// a one-instruction loop, or on a fault.
	Halted bool
	// Fault is the reason execution stopped abnormally.
	Fault error

	Steps int

	// Trace, when set, receives one line per executed instruction.
	Trace io.Writer
	// Lines maps ROM addresses to assembly source lines. When set, trace
	// lines and faults name the line.
	Lines map[uint16]int
}

// NewCPU returns a CPU with rom loaded and all registers cleared.
func NewCPU(rom []Instruction) *CPU {
	return &CPU{ROM: rom}
}

// Peek returns RAM[addr] as a signed value.
func (c *CPU) Peek(addr uint16) int16 {
	return int16(c.RAM[addr])
}

// Poke stores a signed value at RAM[addr].
func (c *CPU) Poke(addr uint16, val int16) {
	c.RAM[addr] = uint16(val)
}

// SetKey sets the key currently held down; 0 releases it.
func (c *CPU) SetKey(code uint16) {
	c.RAM[KeyboardAddr] = code
}

func (c *CPU) fault(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if line, ok := c.Lines[c.PC]; ok {
		msg += fmt.Sprintf(" (line %d)", line)
	}
	c.Fault = errors.New(msg)
	c.Halted = true
}

func (c *CPU) read(addr uint16) (uint16, bool) {
	if int(addr) > KeyboardAddr {
		c.fault("read from unmapped address %d at PC=%d", addr, c.PC)
		return 0, false
	}
	return c.RAM[addr], true
}

func (c *CPU) write(addr uint16, val uint16) bool {
	if int(addr) > KeyboardAddr {
		c.fault("write to unmapped address %d at PC=%d", addr, c.PC)
		return false
	}
	if int(addr) == KeyboardAddr {
		return true // read-only
	}
	c.RAM[addr] = val
	return true
}

func (c *CPU) operand(r Reg, m uint16) uint16 {
	switch r {
	case RegA:
		return c.A
	case RegD:
		return c.D
	case RegM:
		return m
	}
	return 0
}

func (c *CPU) alu(comp Comp, m uint16) uint16 {
	x := c.operand(comp.X, m)
	y := c.operand(comp.Y, m)
	switch comp.Op {
	case OpZero:
		return 0
	case OpOne:
		return 1
	case OpMinusOne:
		return 0xFFFF
	case OpIdent:
		return x
	case OpNot:
		return ^x
	case OpNeg:
		return -x
	case OpInc:
		return x + 1
	case OpDec:
		return x - 1
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpAnd:
		return x & y
	case OpOr:
		return x | y
	case OpShl:
		return x << 1
	case OpShr:
		return uint16(int16(x) >> 1)
	}
	return 0
}

// Step executes one instruction.
func (c *CPU) Step() {
	if c.Halted {
		return
	}
	if int(c.PC) >= len(c.ROM) {
		c.Halted = true
		return
	}

	in := c.ROM[c.PC]
	if c.Trace != nil {
		fmt.Fprintf(c.Trace, "%5d  A=%-6d D=%-6d SP=%-5d %s", c.PC, c.A, int16(c.D), c.RAM[SP], in)
		if line, ok := c.Lines[c.PC]; ok {
			fmt.Fprintf(c.Trace, "  ; line %d", line)
		}
		fmt.Fprintln(c.Trace)
	}
	c.Steps++

	if in.Address {
		c.A = in.Value
		c.PC++
		return
	}

	addr := c.A
	var m uint16
	if in.Comp.UsesM() {
		var ok bool
		if m, ok = c.read(addr); !ok {
			return
		}
	}

	out := c.alu(in.Comp, m)

	if in.Dest&DestM != 0 && !c.write(addr, out) {
		return
	}
	if in.Dest&DestA != 0 {
		c.A = out
	}
	if in.Dest&DestD != 0 {
		c.D = out
	}

	if !in.Jump.Taken(out) {
		c.PC++
		return
	}

	if c.parked(addr, in) {
		c.Halted = true
	}
	c.PC = addr
}

// parked reports whether jumping to target from the current instruction is
// the idiomatic end-of-program loop "(L) @L 0;JMP".
func (c *CPU) parked(target uint16, in Instruction) bool {
	if in.Jump != JMP || in.Dest != 0 || c.PC == 0 || target != c.PC-1 {
		return false
	}
	prev := c.ROM[target]
	return prev.Address && prev.Value == target
}

// Run executes until the CPU halts.
func (c *CPU) Run() {
	for !c.Halted {
		c.Step()
	}
}

// RunFor executes at most limit instructions and reports whether the CPU
// halted within them.
func (c *CPU) RunFor(limit int) bool {
	for i := 0; i < limit && !c.Halted; i++ {
		c.Step()
	}
	return c.Halted
}

// RunUntil executes until PC reaches addr, the CPU halts, or limit
// instructions have run. It reports whether addr was reached.
func (c *CPU) RunUntil(addr uint16, limit int) bool {
	for i := 0; i < limit && !c.Halted; i++ {
		if c.PC == addr {
			return true
		}
		c.Step()
	}
	return c.PC == addr && c.Fault == nil
}
