package codegen

import (
	"fmt"

	"hackvm/pkg/vm"
)

// baseRegisters holds the pointer register of each indirectly addressed segment.
var baseRegisters = map[vm.Segment]string{
	vm.Local:    "LCL",
	vm.Argument: "ARG",
	vm.This:     "THIS",
	vm.That:     "THAT",
}

// WritePushPop emits push or pop of segment[index].
func (w *Writer) WritePushPop(t vm.CommandType, seg vm.Segment, index int) error {
	w.comment("%s %s %d", t, seg, index)

	switch t {
	case vm.Push:
		if err := w.push(seg, index); err != nil {
			return err
		}
	case vm.Pop:
		if err := w.pop(seg, index); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %v is not push or pop", ErrUnsupportedOperation, t)
	}
	return w.err
}

func (w *Writer) push(seg vm.Segment, index int) error {
	switch seg {
	case vm.Constant:
		if index < 0 || index > vm.MaxOperand {
			return fmt.Errorf("%w: push constant %d", ErrOperandRange, index)
		}
		w.emitf("@%d", index)
		w.emit("D=A")
	case vm.Local, vm.Argument, vm.This, vm.That:
		w.emit("@"+baseRegisters[seg], "D=M")
		w.emitf("@%d", index)
		w.emit("A=D+A", "D=M")
	case vm.Temp, vm.Pointer, vm.Static:
		w.emit("@"+w.directAddress(seg, index), "D=M")
	default:
		return fmt.Errorf("%w: push %v", ErrInvalidSegment, seg)
	}
	w.pushD()
	return nil
}

func (w *Writer) pop(seg vm.Segment, index int) error {
	switch seg {
	case vm.Local, vm.Argument, vm.This, vm.That:
		// R13 = base + index, then store through it.
		w.emit("@"+baseRegisters[seg], "D=M")
		w.emitf("@%d", index)
		w.emit("D=D+A", "@R13", "M=D")
		w.popD()
		w.emit("@R13", "A=M", "M=D")
	case vm.Temp, vm.Pointer, vm.Static:
		w.popD()
		w.emit("@"+w.directAddress(seg, index), "M=D")
	default:
		return fmt.Errorf("%w: pop %v", ErrInvalidSegment, seg)
	}
	return nil
}

// directAddress is the A-instruction operand of a fixed segment cell.
func (w *Writer) directAddress(seg vm.Segment, index int) string {
	switch seg {
	case vm.Temp:
		return fmt.Sprint(TempBase + index)
	case vm.Pointer:
		return fmt.Sprint(PointerBase + index)
	}
	return w.ctx.StaticSymbol(index)
}
