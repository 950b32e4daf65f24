// Command vmdump prints the parsed commands of a .vm file or directory and,
// optionally, the Hack assembly and symbol table they translate to.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"

	"hackvm/pkg/source"
	"hackvm/pkg/translator"
	"hackvm/pkg/vm"
)

var (
	showAsm     = flag.Bool("asm", false, "print the translated assembly")
	showSymbols = flag.Bool("symbols", false, "assemble and dump the symbol table")
	color       = flag.Bool("color", false, "colorize the command dump")
)

func dumpCommands(w io.Writer, b *source.Bundle, colored bool) error {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(colored)

	for _, name := range b.List() {
		r, err := b.Open(name)
		if err != nil {
			return err
		}
		cmds, err := vm.Parse(r)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(w, "== %s (%d commands)\n", name, len(cmds))
		printer.Println(cmds)
	}
	return nil
}

func dumpImage(w io.Writer, b *source.Bundle) error {
	img, err := translator.Build(b, translator.Options{Annotate: *showAsm})
	if err != nil {
		return err
	}
	if *showAsm {
		fmt.Fprintln(w, img.Asm)
	}
	if *showSymbols {
		cfg := spew.ConfigState{Indent: "  ", SortKeys: true}
		cfg.Fdump(w, img.Program.Symbols)
	}
	return nil
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vmdump [flags] path")
		flag.PrintDefaults()
		os.Exit(2)
	}

	b, err := source.Load(flag.Arg(0))
	if err != nil {
		glog.Fatalf("Failed to load input: %s", err)
	}
	if err := dumpCommands(os.Stdout, b, *color); err != nil {
		glog.Fatalf("Failed to parse: %s", err)
	}
	if *showAsm || *showSymbols {
		if err := dumpImage(os.Stdout, b); err != nil {
			glog.Fatalf("Failed to translate: %s", err)
		}
	}
}
