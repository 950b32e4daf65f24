// Package codegen translates classified VM commands into Hack assembly.
//
// Every Write method appends a fixed block of instructions to the output
// stream. The block for a command depends only on the command and on the
// Context (unit name, current function, label counter), so translating a
// program is an order-preserving fold over its commands.
package codegen

import (
	"errors"
	"fmt"
	"io"
)

const (
	StackBase     = 256        // first stack cell, loaded into SP by WriteInit
	EntryFunction = "Sys.init" // function the bootstrap calls
	TempBase      = 5          // RAM[5..12]
	PointerBase   = 3          // RAM[3..4], aliases THIS and THAT
)

var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidSegment       = errors.New("invalid segment")
	ErrOperandRange         = errors.New("operand out of range")
)

// Writer emits assembly for one program.
type Writer struct {
	// Annotate precedes every command's block with a "// command" line.
	Annotate bool

	out io.Writer
	ctx *Context
	err error
}

// NewWriter returns a Writer appending to out. The caller owns ctx and may
// inspect it between commands; a nil ctx gets a fresh Context.
func NewWriter(out io.Writer, ctx *Context) *Writer {
	if ctx == nil {
		ctx = NewContext()
	}
	return &Writer{out: out, ctx: ctx}
}

// Context returns the translation context the writer mutates.
func (w *Writer) Context() *Context { return w.ctx }

// SetUnitName informs the writer that a new source unit starts.
func (w *Writer) SetUnitName(name string) {
	w.ctx.UnitName = name
}

// Err returns the first error hit while writing output.
func (w *Writer) Err() error { return w.err }

func (w *Writer) emit(lines ...string) {
	for _, l := range lines {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.out, l+"\n")
	}
}

func (w *Writer) emitf(format string, args ...any) {
	w.emit(fmt.Sprintf(format, args...))
}

func (w *Writer) comment(format string, args ...any) {
	if w.Annotate {
		w.emitf("// "+format, args...)
	}
}

// pushD pushes the D register.
func (w *Writer) pushD() {
	w.emit("@SP", "A=M", "M=D", "@SP", "M=M+1")
}

// popD pops the top of stack into D. A is left pointing at the popped cell.
func (w *Writer) popD() {
	w.emit("@SP", "AM=M-1", "D=M")
}
