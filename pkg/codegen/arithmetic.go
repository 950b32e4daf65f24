package codegen

import (
	"fmt"
	"strings"

	"hackvm/pkg/vm"
)

var binaryOps = map[vm.Op]string{
	vm.Add: "M=D+M",
	vm.Sub: "M=M-D",
	vm.And: "M=D&M",
	vm.Or:  "M=D|M",
}

var unaryOps = map[vm.Op]string{
	vm.Neg:        "M=-M",
	vm.Not:        "M=!M",
	vm.ShiftLeft:  "M=M<<",
	vm.ShiftRight: "M=M>>",
}

// WriteArithmetic emits an arithmetic or logical stack operation.
// Comparisons leave -1 for true and 0 for false.
func (w *Writer) WriteArithmetic(op vm.Op) error {
	w.comment("%s", op)

	if comp, ok := binaryOps[op]; ok {
		w.popD()
		w.emit("A=A-1", comp)
		return w.err
	}
	if comp, ok := unaryOps[op]; ok {
		w.emit("@SP", "A=M-1", comp)
		return w.err
	}

	switch op {
	case vm.Eq:
		w.writeEq()
	case vm.Gt, vm.Lt:
		w.writeOrdered(op)
	default:
		return fmt.Errorf("%w: arithmetic %v", ErrUnsupportedOperation, op)
	}
	return w.err
}

// Comparison labels start with '$', which no VM label or function name may,
// so they cannot collide with user labels.

// writeEq subtracts and tests for zero. x-y wraps modulo 2^16 and is zero
// exactly when x == y, so no sign handling is needed.
func (w *Writer) writeEq() {
	n := w.ctx.NextLabel()
	trueLabel := fmt.Sprintf("$EQ_%d_TRUE", n)
	endLabel := fmt.Sprintf("$EQ_%d_END", n)

	w.popD()
	w.emit("@SP", "AM=M-1", "D=M-D")
	w.emit("@"+trueLabel, "D;JEQ")
	w.setTop("0")
	w.emit("@"+endLabel, "0;JMP")
	w.emit("(" + trueLabel + ")")
	w.setTop("-1")
	w.emit("("+endLabel+")", "@SP", "M=M+1")
}

// writeOrdered emits gt or lt. Operands of different signs are ordered by
// sign alone; x-y is only computed when both have the same sign and so
// cannot overflow.
func (w *Writer) writeOrdered(op vm.Op) {
	n := w.ctx.NextLabel()
	prefix := fmt.Sprintf("$%s_%d_", strings.ToUpper(op.String()), n)
	xNeg := prefix + "X_NEG"
	sameSign := prefix + "SAME_SIGN"
	xPosYNeg := prefix + "X_POS_Y_NEG"
	xNegYPos := prefix + "X_NEG_Y_POS"
	trueLabel := prefix + "TRUE"
	endLabel := prefix + "END"

	// R13 = y, R14 = x; SP ends up at x's cell.
	w.popD()
	w.emit("@R13", "M=D")
	w.popD()
	w.emit("@R14", "M=D")

	// D holds x.
	w.emit("@"+xNeg, "D;JLT")
	w.emit("@R13", "D=M", "@"+xPosYNeg, "D;JLT")
	w.emit("@"+sameSign, "0;JMP")

	w.emit("(" + xNeg + ")")
	w.emit("@R13", "D=M", "@"+xNegYPos, "D;JGE")
	w.emit("@"+sameSign, "0;JMP")

	xGreater, xLess := "-1", "0"
	jump := "D;JGT"
	if op == vm.Lt {
		xGreater, xLess = "0", "-1"
		jump = "D;JLT"
	}

	w.emit("(" + xPosYNeg + ")")
	w.setTop(xGreater)
	w.emit("@"+endLabel, "0;JMP")

	w.emit("(" + xNegYPos + ")")
	w.setTop(xLess)
	w.emit("@"+endLabel, "0;JMP")

	w.emit("(" + sameSign + ")")
	w.emit("@R14", "D=M", "@R13", "D=D-M")
	w.emit("@"+trueLabel, jump)
	w.setTop("0")
	w.emit("@"+endLabel, "0;JMP")
	w.emit("(" + trueLabel + ")")
	w.setTop("-1")
	w.emit("("+endLabel+")", "@SP", "M=M+1")
}

// setTop stores a constant comp (0 or -1) at RAM[SP].
func (w *Writer) setTop(value string) {
	w.emit("@SP", "A=M", "M="+value)
}
