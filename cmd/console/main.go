// Command console translates a VM program, runs it headless on the emulator
// and prints the machine state when it stops.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/tebeka/atexit"

	"hackvm/pkg/codegen"
	"hackvm/pkg/cpu"
	"hackvm/pkg/translator"
)

// ramRange is an inclusive-exclusive RAM window given as "from:to".
type ramRange struct{ from, to uint16 }

type ramRanges []ramRange

func (r *ramRanges) String() string {
	parts := make([]string, len(*r))
	for i, rr := range *r {
		parts[i] = fmt.Sprintf("%d:%d", rr.from, rr.to)
	}
	return strings.Join(parts, ",")
}

func (r *ramRanges) Set(s string) error {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return fmt.Errorf("range %q is not from:to", s)
	}
	from, err := strconv.ParseUint(lo, 10, 16)
	if err != nil {
		return err
	}
	to, err := strconv.ParseUint(hi, 10, 16)
	if err != nil {
		return err
	}
	if to < from {
		return fmt.Errorf("range %q is reversed", s)
	}
	*r = append(*r, ramRange{uint16(from), uint16(to)})
	return nil
}

type config struct {
	steps     int
	until     string
	trace     bool
	bootstrap string
	showAsm   bool
	ram       ramRanges
}

func run(w io.Writer, path string, cfg config) (*cpu.CPU, error) {
	mode, err := translator.ParseBootstrapMode(cfg.bootstrap)
	if err != nil {
		return nil, err
	}
	img, err := translator.BuildPath(path, translator.Options{Bootstrap: mode, Annotate: cfg.showAsm})
	if err != nil {
		return nil, err
	}
	if cfg.showAsm {
		fmt.Fprintf(w, "Generated Assembly:\n%s\n", img.Asm)
	}
	glog.V(1).Infof("%s: %d instructions, %d units", path, len(img.Program.Instructions), img.Stats.Units)

	vm := img.NewCPU()
	if cfg.trace {
		vm.Trace = os.Stderr
	}

	if cfg.until != "" {
		addr, ok := img.Program.Address(cfg.until)
		if !ok {
			return nil, fmt.Errorf("unknown label %q", cfg.until)
		}
		if !vm.RunUntil(addr, cfg.steps) {
			glog.Warningf("did not reach %s (PC=%d)", cfg.until, vm.PC)
		}
	} else if !vm.RunFor(cfg.steps) {
		glog.Warningf("stopped after %d instructions without halting", cfg.steps)
	}

	if vm.Fault != nil {
		if line, ok := img.Program.SourceMap[vm.PC]; ok {
			fmt.Fprintf(w, "fault at asm line %d: %s\n", line, img.Line(line))
		}
	}
	fmt.Fprintln(w, vm.RegisterTable())
	fmt.Fprintln(w, vm.StackTable(codegen.StackBase))
	for _, r := range cfg.ram {
		fmt.Fprintln(w, vm.MemoryTable(fmt.Sprintf("RAM [%d, %d)", r.from, r.to), r.from, r.to))
	}
	return vm, vm.Fault
}

func main() {
	var cfg config
	flag.IntVar(&cfg.steps, "steps", 10_000_000, "maximum instructions to execute")
	flag.StringVar(&cfg.until, "until", "", "stop when PC reaches this label")
	flag.BoolVar(&cfg.trace, "trace", false, "trace every instruction, with its asm line, to stderr")
	flag.StringVar(&cfg.bootstrap, "bootstrap", "auto", "bootstrap code: auto, always or never")
	flag.BoolVar(&cfg.showAsm, "show-asm", false, "print the generated assembly")
	flag.Var(&cfg.ram, "ram", "also print RAM[from:to] (repeatable)")
	flag.Parse()
	atexit.Register(glog.Flush)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: console [flags] path")
		flag.PrintDefaults()
		atexit.Exit(2)
	}

	if _, err := run(os.Stdout, flag.Arg(0), cfg); err != nil {
		glog.Errorf("run failed: %v", err)
		fmt.Fprintln(os.Stderr, "console:", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
