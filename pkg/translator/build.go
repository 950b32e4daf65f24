package translator

import (
	"fmt"
	"strings"

	"hackvm/pkg/asm"
	"hackvm/pkg/codegen"
	"hackvm/pkg/cpu"
	"hackvm/pkg/source"
)

// Image is a translated and assembled program ready for the emulator.
type Image struct {
	Asm     string
	Program *asm.Program
	Stats   Stats
}

// Build translates b and assembles the result.
func Build(b *source.Bundle, opts Options) (*Image, error) {
	var sb strings.Builder
	stats, err := Translate(b, &sb, opts)
	if err != nil {
		return nil, err
	}

	img := &Image{Asm: sb.String(), Stats: stats}
	img.Program, err = asm.Assemble(img.Asm)
	if err != nil {
		return img, fmt.Errorf("assembly error: %w", err)
	}
	return img, nil
}

// BuildPath loads a .vm file or directory and builds it.
func BuildPath(path string, opts Options) (*Image, error) {
	b, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	return Build(b, opts)
}

// NewCPU returns an emulator with the image in ROM and its source map
// attached. A program without the bootstrap gets SP preset to the stack base
// instead.
func (img *Image) NewCPU() *cpu.CPU {
	c := cpu.NewCPU(img.Program.Instructions)
	c.Lines = img.Program.SourceMap
	if !img.Stats.Bootstrapped {
		c.RAM[cpu.SP] = codegen.StackBase
	}
	return c
}

// Line returns the text of 1-based assembly line n, or "" when out of range.
func (img *Image) Line(n int) string {
	lines := strings.Split(img.Asm, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
