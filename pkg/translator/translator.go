// Package translator drives a whole-program translation: it reads every unit
// of a source bundle, decides whether to emit the bootstrap, and feeds the
// classified commands of each unit to an Emitter in order.
//
// Pipeline: source.Bundle → vm.Parse (per unit) → Dispatch → Emitter
package translator

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/glog"

	"hackvm/pkg/codegen"
	"hackvm/pkg/source"
	"hackvm/pkg/vm"
)

// Emitter receives one call per command. *codegen.Writer implements it.
type Emitter interface {
	SetUnitName(name string)
	WriteInit() error
	WriteArithmetic(op vm.Op) error
	WritePushPop(t vm.CommandType, seg vm.Segment, index int) error
	WriteLabel(label string) error
	WriteGoto(label string) error
	WriteIf(label string) error
	WriteFunction(name string, nVars int) error
	WriteCall(name string, nArgs int) error
	WriteReturn() error
}

var _ Emitter = (*codegen.Writer)(nil)

// BootstrapMode selects when the bootstrap sequence is emitted.
type BootstrapMode int

const (
	// BootstrapAuto emits the bootstrap when some unit defines Sys.init.
	BootstrapAuto BootstrapMode = iota
	BootstrapAlways
	BootstrapNever
)

var bootstrapNames = [...]string{"auto", "always", "never"}

func (m BootstrapMode) String() string {
	if m < 0 || int(m) >= len(bootstrapNames) {
		return fmt.Sprintf("BootstrapMode(%d)", int(m))
	}
	return bootstrapNames[m]
}

// ParseBootstrapMode maps "auto", "always" or "never" to a mode.
func ParseBootstrapMode(s string) (BootstrapMode, error) {
	for i, n := range bootstrapNames {
		if n == s {
			return BootstrapMode(i), nil
		}
	}
	return 0, fmt.Errorf("invalid bootstrap mode %q (want auto, always or never)", s)
}

// Options configures a translation.
type Options struct {
	Bootstrap BootstrapMode
	// Annotate precedes each generated block with the VM command as a comment.
	Annotate bool
}

// Stats summarizes a finished translation.
type Stats struct {
	Units        int
	Commands     int
	Bootstrapped bool
}

// unit is a parsed source unit.
type unit struct {
	name     string
	origin   string // host path, or name for in-memory units
	commands []vm.Command
}

// Dispatch routes one command to the matching Emitter method.
func Dispatch(e Emitter, cmd vm.Command) error {
	switch cmd.Type {
	case vm.Arithmetic:
		return e.WriteArithmetic(cmd.Op)
	case vm.Push, vm.Pop:
		return e.WritePushPop(cmd.Type, cmd.Segment, cmd.Arg2)
	case vm.Label:
		return e.WriteLabel(cmd.Arg1)
	case vm.Goto:
		return e.WriteGoto(cmd.Arg1)
	case vm.If:
		return e.WriteIf(cmd.Arg1)
	case vm.Function:
		return e.WriteFunction(cmd.Arg1, cmd.Arg2)
	case vm.Call:
		return e.WriteCall(cmd.Arg1, cmd.Arg2)
	case vm.Return:
		return e.WriteReturn()
	}
	return fmt.Errorf("%w: command type %v", codegen.ErrUnsupportedOperation, cmd.Type)
}

// Translate writes the assembly for every unit of b to out.
func Translate(b *source.Bundle, out io.Writer, opts Options) (Stats, error) {
	w := codegen.NewWriter(out, codegen.NewContext())
	w.Annotate = opts.Annotate
	return Run(b, w, opts)
}

// Run parses every unit of b and emits it through e. All units are parsed
// before anything is emitted, so malformed input produces no output.
func Run(b *source.Bundle, e Emitter, opts Options) (Stats, error) {
	var stats Stats

	units, err := parseAll(b)
	if err != nil {
		return stats, err
	}

	entry := definesEntry(units)
	switch opts.Bootstrap {
	case BootstrapAlways:
		stats.Bootstrapped = true
	case BootstrapAuto:
		stats.Bootstrapped = entry
	}
	if len(units) > 1 && !entry {
		glog.Warningf("%d units but none defines %s; control starts at the first instruction", len(units), codegen.EntryFunction)
	}

	if stats.Bootstrapped {
		glog.V(1).Infof("emitting bootstrap")
		if err := e.WriteInit(); err != nil {
			return stats, fmt.Errorf("bootstrap: %w", err)
		}
	}

	for _, u := range units {
		glog.V(1).Infof("translating unit %s (%d commands)", u.name, len(u.commands))
		e.SetUnitName(u.name)
		for _, cmd := range u.commands {
			if glog.V(2) {
				glog.Infof("%s:%d: %v", u.origin, cmd.Line, cmd)
			}
			if err := Dispatch(e, cmd); err != nil {
				return stats, fmt.Errorf("%s:%d: %w", u.origin, cmd.Line, err)
			}
			stats.Commands++
		}
		stats.Units++
	}

	return stats, nil
}

func parseAll(b *source.Bundle) ([]unit, error) {
	names := b.List()
	units := make([]unit, 0, len(names))
	for _, name := range names {
		u, err := b.Get(name)
		if err != nil {
			return nil, err
		}
		cmds, err := vm.Parse(bytes.NewReader(u.Data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.Origin(), err)
		}
		units = append(units, unit{name: name, origin: u.Origin(), commands: cmds})
	}
	return units, nil
}

// definesEntry reports whether some unit declares the entry function.
func definesEntry(units []unit) bool {
	for _, u := range units {
		for _, cmd := range u.commands {
			if cmd.Type == vm.Function && cmd.Arg1 == codegen.EntryFunction {
				return true
			}
		}
	}
	return false
}
