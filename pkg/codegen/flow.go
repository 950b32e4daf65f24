package codegen

import (
	"fmt"

	"hackvm/pkg/vm"
)

// savedRegisters are pushed by call in this order and restored by return in
// the reverse order.
var savedRegisters = []string{"LCL", "ARG", "THIS", "THAT"}

// frameSize is the return address plus the saved registers.
const frameSize = 5

// WriteLabel emits a label declaration, scoped to the current function.
func (w *Writer) WriteLabel(label string) error {
	w.comment("label %s", label)
	w.emit("(" + w.ctx.Qualify(label) + ")")
	return w.err
}

// WriteGoto emits an unconditional jump.
func (w *Writer) WriteGoto(label string) error {
	w.comment("goto %s", label)
	w.emit("@"+w.ctx.Qualify(label), "0;JMP")
	return w.err
}

// WriteIf pops the top of stack and jumps when it is nonzero.
func (w *Writer) WriteIf(label string) error {
	w.comment("if-goto %s", label)
	w.popD()
	w.emit("@"+w.ctx.Qualify(label), "D;JNE")
	return w.err
}

// WriteFunction emits a function entry point and zeroes its nVars locals.
// Labels that follow are scoped to name.
func (w *Writer) WriteFunction(name string, nVars int) error {
	w.ctx.CurrentFunction = name
	w.comment("function %s %d", name, nVars)
	w.emit("(" + name + ")")
	for i := 0; i < nVars; i++ {
		if err := w.WritePushPop(vm.Push, vm.Constant, 0); err != nil {
			return err
		}
	}
	return w.err
}

// WriteCall emits the caller side of the calling convention.
func (w *Writer) WriteCall(name string, nArgs int) error {
	if nArgs < 0 || frameSize+nArgs > vm.MaxOperand {
		return fmt.Errorf("%w: call %s %d", ErrOperandRange, name, nArgs)
	}
	w.comment("call %s %d", name, nArgs)
	ret := w.ctx.returnLabel()

	w.emit("@"+ret, "D=A")
	w.pushD()
	for _, reg := range savedRegisters {
		w.emit("@"+reg, "D=M")
		w.pushD()
	}

	// ARG = SP - 5 - nArgs
	w.emit("@SP", "D=M")
	w.emitf("@%d", frameSize+nArgs)
	w.emit("D=D-A", "@ARG", "M=D")
	// LCL = SP
	w.emit("@SP", "D=M", "@LCL", "M=D")

	w.emit("@"+name, "0;JMP")
	w.emit("(" + ret + ")")
	return w.err
}

// WriteReturn emits the callee side: the return value replaces the
// arguments and the caller's frame is restored.
func (w *Writer) WriteReturn() error {
	w.comment("return")

	// R13 = frame = LCL, R14 = *(frame-5). The return address is read before
	// *ARG is written because with zero arguments they share a cell.
	w.emit("@LCL", "D=M", "@R13", "M=D")
	w.emitf("@%d", frameSize)
	w.emit("A=D-A", "D=M", "@R14", "M=D")

	// *ARG = pop(); SP = ARG + 1
	w.popD()
	w.emit("@ARG", "A=M", "M=D")
	w.emit("@ARG", "D=M+1", "@SP", "M=D")

	// THAT, THIS, ARG, LCL = *(frame-1) .. *(frame-4)
	for i := len(savedRegisters) - 1; i >= 0; i-- {
		w.emit("@R13", "AM=M-1", "D=M", "@"+savedRegisters[i], "M=D")
	}

	w.emit("@R14", "A=M", "0;JMP")
	return w.err
}

// WriteInit emits the bootstrap: SP = 256, call Sys.init 0.
func (w *Writer) WriteInit() error {
	w.comment("bootstrap")
	w.emitf("@%d", StackBase)
	w.emit("D=A", "@SP", "M=D")
	return w.WriteCall(EntryFunction, 0)
}
