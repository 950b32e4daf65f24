package cpu

import (
	"strconv"
	"strings"
)

// Reg names an ALU input.
type Reg uint8

const (
	RegNone Reg = iota
	RegA
	RegD
	RegM // RAM[A]
)

func (r Reg) String() string {
	switch r {
	case RegA:
		return "A"
	case RegD:
		return "D"
	case RegM:
		return "M"
	}
	return ""
}

// ALUOp is the operation of a compute instruction.
type ALUOp uint8

const (
	OpZero     ALUOp = iota // 0
	OpOne                   // 1
	OpMinusOne              // -1
	OpIdent                 // X
	OpNot                   // !X
	OpNeg                   // -X
	OpInc                   // X+1
	OpDec                   // X-1
	OpAdd                   // X+Y
	OpSub                   // X-Y
	OpAnd                   // X&Y
	OpOr                    // X|Y
	OpShl                   // X<<
	OpShr                   // X>>, arithmetic
)

// Comp is a decoded comp field.
type Comp struct {
	Op   ALUOp
	X, Y Reg
}

// UsesM reports whether the computation reads RAM[A].
func (c Comp) UsesM() bool {
	return c.X == RegM || c.Y == RegM
}

func (c Comp) String() string {
	x, y := c.X.String(), c.Y.String()
	switch c.Op {
	case OpZero:
		return "0"
	case OpOne:
		return "1"
	case OpMinusOne:
		return "-1"
	case OpIdent:
		return x
	case OpNot:
		return "!" + x
	case OpNeg:
		return "-" + x
	case OpInc:
		return x + "+1"
	case OpDec:
		return x + "-1"
	case OpAdd:
		return x + "+" + y
	case OpSub:
		return x + "-" + y
	case OpAnd:
		return x + "&" + y
	case OpOr:
		return x + "|" + y
	case OpShl:
		return x + "<<"
	case OpShr:
		return x + ">>"
	}
	return "?"
}

// Dest is a bit set of destination registers.
type Dest uint8

const (
	DestM Dest = 1 << iota
	DestD
	DestA
)

func (d Dest) String() string {
	var sb strings.Builder
	if d&DestA != 0 {
		sb.WriteByte('A')
	}
	if d&DestM != 0 {
		sb.WriteByte('M')
	}
	if d&DestD != 0 {
		sb.WriteByte('D')
	}
	return sb.String()
}

// Jump is the jump condition, encoded like the Hack j-bits (lt, eq, gt).
type Jump uint8

const (
	JumpNone Jump = iota
	JGT
	JEQ
	JGE
	JLT
	JNE
	JLE
	JMP
)

var jumpNames = [...]string{"", "JGT", "JEQ", "JGE", "JLT", "JNE", "JLE", "JMP"}

func (j Jump) String() string {
	if int(j) < len(jumpNames) {
		return jumpNames[j]
	}
	return "?"
}

// Taken reports whether the jump fires for an ALU result.
func (j Jump) Taken(out uint16) bool {
	v := int16(out)
	return (j&JLT != 0 && v < 0) || (j&JEQ != 0 && v == 0) || (j&JGT != 0 && v > 0)
}

// Instruction is one decoded Hack instruction. Address instructions load
// Value into A; compute instructions evaluate Comp, store to Dest and jump.
type Instruction struct {
	Address bool
	Value   uint16
	Dest    Dest
	Comp    Comp
	Jump    Jump
}

// LoadA returns the address instruction @value.
func LoadA(value uint16) Instruction {
	return Instruction{Address: true, Value: value}
}

func (in Instruction) String() string {
	if in.Address {
		return "@" + strconv.Itoa(int(in.Value))
	}
	s := in.Comp.String()
	if in.Dest != 0 {
		s = in.Dest.String() + "=" + s
	}
	if in.Jump != JumpNone {
		s += ";" + in.Jump.String()
	}
	return s
}
