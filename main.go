//go:build !js

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"hackvm/pkg/codegen"
	"hackvm/pkg/translator"
)

type options struct {
	out        string
	bootstrap  string
	annotate   bool
	run        int
	screenshot string
	scale      int
	compare    string
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "hackvm path",
		Short: "Translate stack VM programs to Hack assembly",
		Long: `hackvm translates a .vm file, or a directory of .vm files, into a single
Hack assembly file. A directory Foo produces Foo/Foo.asm; a file Foo.vm
produces Foo.asm next to it.

With --run the result is also assembled and executed on the built-in
emulator, and the registers and working stack are printed when it stops.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.execute(cmd.OutOrStdout(), args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.out, "out", "o", "", "output .asm path (default derived from the input)")
	f.StringVar(&o.bootstrap, "bootstrap", "auto", "bootstrap code: auto, always or never")
	f.BoolVar(&o.annotate, "annotate", false, "emit a comment before each translated command")
	f.IntVar(&o.run, "run", 0, "assemble and run for at most this many instructions")
	f.StringVar(&o.screenshot, "screenshot", "", "after --run, save the screen as a PNG")
	f.IntVar(&o.scale, "scale", 2, "screenshot scale factor")
	f.StringVar(&o.compare, "compare", "", "compare the output against an expected .asm file")

	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

func (o *options) execute(w io.Writer, path string) error {
	mode, err := translator.ParseBootstrapMode(o.bootstrap)
	if err != nil {
		return err
	}
	opts := translator.Options{Bootstrap: mode, Annotate: o.annotate}

	out, stats, err := translator.TranslatePath(path, o.out, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "translated %d commands from %d units -> %s\n", stats.Commands, stats.Units, out)

	if o.compare != "" {
		if err := translator.CompareFiles(o.compare, out); err != nil {
			return fmt.Errorf("compare %s: %w", o.compare, err)
		}
		fmt.Fprintf(w, "output matches %s\n", o.compare)
	}

	if o.run <= 0 {
		if o.screenshot != "" {
			return errors.New("--screenshot requires --run")
		}
		return nil
	}
	return o.emulate(w, path, opts)
}

func (o *options) emulate(w io.Writer, path string, opts translator.Options) error {
	img, err := translator.BuildPath(path, opts)
	if err != nil {
		return err
	}

	vm := img.NewCPU()
	if !vm.RunFor(o.run) {
		glog.Warningf("stopped after %d instructions without halting", o.run)
	}
	fmt.Fprintln(w, vm.RegisterTable())
	fmt.Fprintln(w, vm.StackTable(codegen.StackBase))

	if o.screenshot != "" {
		if err := vm.SaveScreenshot(o.screenshot, o.scale); err != nil {
			return err
		}
		fmt.Fprintf(w, "screen saved to %s\n", o.screenshot)
	}
	if vm.Fault != nil {
		return vm.Fault
	}
	return nil
}

func main() {
	atexit.Register(glog.Flush)

	if err := newRootCmd().Execute(); err != nil {
		glog.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, "hackvm:", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
