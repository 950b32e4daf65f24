package asm

import (
	"fmt"
	"strings"
	"testing"
)

// smallProgram multiplies R0 by R1 into R2.
const smallProgram = `
	@R2
	M=0
(LOOP)
	@R1
	D=M
	@END
	D;JEQ
	@R0
	D=M
	@R2
	M=D+M
	@R1
	M=M-1
	@LOOP
	0;JMP
(END)
	@END
	0;JMP
`

// largeProgram repeats a push/pop block with fresh labels and statics, the
// shape of translated VM code.
var largeProgram = func() string {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "(Main.f%d)\n@%d\nD=A\n@SP\nA=M\nM=D\n@SP\nM=M+1\n", i, i)
		fmt.Fprintf(&sb, "@SP\nAM=M-1\nD=M\n@Main.%d\nM=D\n@Main.f%d\n0;JMP\n", i%64, i)
	}
	return sb.String()
}()

func BenchmarkAssemble_Small(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Assemble(smallProgram); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssemble_Large(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Assemble(largeProgram); err != nil {
			b.Fatal(err)
		}
	}
}
