package translator_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hackvm/pkg/codegen"
	"hackvm/pkg/source"
	"hackvm/pkg/translator"
	"hackvm/pkg/vm"
)

func bundleOf(units map[string]string) *source.Bundle {
	b := source.NewBundle()
	for name, text := range units {
		Expect(b.Add(name, []byte(text))).To(Succeed())
	}
	return b
}

var _ = Describe("Dispatch", func() {
	var (
		mockCtrl *gomock.Controller
		emitter  *MockEmitter
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		emitter = NewMockEmitter(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should route every command kind to its writer", func() {
		gomock.InOrder(
			emitter.EXPECT().WriteArithmetic(vm.Gt),
			emitter.EXPECT().WritePushPop(vm.Push, vm.Local, 2),
			emitter.EXPECT().WritePushPop(vm.Pop, vm.Static, 5),
			emitter.EXPECT().WriteLabel("LOOP"),
			emitter.EXPECT().WriteGoto("LOOP"),
			emitter.EXPECT().WriteIf("END"),
			emitter.EXPECT().WriteFunction("Main.f", 3),
			emitter.EXPECT().WriteCall("Main.g", 1),
			emitter.EXPECT().WriteReturn(),
		)

		cmds := []vm.Command{
			{Type: vm.Arithmetic, Arg1: "gt", Op: vm.Gt},
			{Type: vm.Push, Arg1: "local", Segment: vm.Local, Arg2: 2},
			{Type: vm.Pop, Arg1: "static", Segment: vm.Static, Arg2: 5},
			{Type: vm.Label, Arg1: "LOOP"},
			{Type: vm.Goto, Arg1: "LOOP"},
			{Type: vm.If, Arg1: "END"},
			{Type: vm.Function, Arg1: "Main.f", Arg2: 3},
			{Type: vm.Call, Arg1: "Main.g", Arg2: 1},
			{Type: vm.Return},
		}
		for _, cmd := range cmds {
			Expect(translator.Dispatch(emitter, cmd)).To(Succeed())
		}
	})

	It("should pass writer errors through", func() {
		boom := errors.New("boom")
		emitter.EXPECT().WriteReturn().Return(boom)

		Expect(translator.Dispatch(emitter, vm.Command{Type: vm.Return})).To(MatchError(boom))
	})

	It("should reject an unknown command kind", func() {
		err := translator.Dispatch(emitter, vm.Command{Type: vm.CommandType(42)})
		Expect(errors.Is(err, codegen.ErrUnsupportedOperation)).To(BeTrue())
	})
})

var _ = Describe("Run", func() {
	var (
		mockCtrl *gomock.Controller
		emitter  *MockEmitter
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		emitter = NewMockEmitter(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should bootstrap and translate units in sorted order", func() {
		b := bundleOf(map[string]string{
			"Sys":  "function Sys.init 0\ncall Main.main 0\n",
			"Main": "function Main.main 0\npush constant 1\nreturn\n",
		})

		gomock.InOrder(
			emitter.EXPECT().WriteInit(),
			emitter.EXPECT().SetUnitName("Main"),
			emitter.EXPECT().WriteFunction("Main.main", 0),
			emitter.EXPECT().WritePushPop(vm.Push, vm.Constant, 1),
			emitter.EXPECT().WriteReturn(),
			emitter.EXPECT().SetUnitName("Sys"),
			emitter.EXPECT().WriteFunction("Sys.init", 0),
			emitter.EXPECT().WriteCall("Main.main", 0),
		)

		stats, err := translator.Run(b, emitter, translator.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(stats).To(Equal(translator.Stats{Units: 2, Commands: 5, Bootstrapped: true}))
	})

	It("should skip the bootstrap in auto mode without Sys.init", func() {
		b := bundleOf(map[string]string{"Simple": "push constant 7\n"})

		gomock.InOrder(
			emitter.EXPECT().SetUnitName("Simple"),
			emitter.EXPECT().WritePushPop(vm.Push, vm.Constant, 7),
		)

		stats, err := translator.Run(b, emitter, translator.Options{Bootstrap: translator.BootstrapAuto})
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Bootstrapped).To(BeFalse())
	})

	It("should honour an explicit bootstrap mode", func() {
		b := bundleOf(map[string]string{"Sys": "function Sys.init 0\n"})

		emitter.EXPECT().SetUnitName("Sys")
		emitter.EXPECT().WriteFunction("Sys.init", 0)
		_, err := translator.Run(b, emitter, translator.Options{Bootstrap: translator.BootstrapNever})
		Expect(err).NotTo(HaveOccurred())

		b = bundleOf(map[string]string{"Simple": "add\n"})
		gomock.InOrder(
			emitter.EXPECT().WriteInit(),
			emitter.EXPECT().SetUnitName("Simple"),
			emitter.EXPECT().WriteArithmetic(vm.Add),
		)
		stats, err := translator.Run(b, emitter, translator.Options{Bootstrap: translator.BootstrapAlways})
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Bootstrapped).To(BeTrue())
	})

	It("should emit nothing when any unit is malformed", func() {
		b := bundleOf(map[string]string{
			"Good": "push constant 1\n",
			"Zbad": "push constant 1\nfrobnicate\n",
		})

		_, err := translator.Run(b, emitter, translator.Options{})
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, vm.ErrUnknownCommand)).To(BeTrue())
		Expect(err.Error()).To(HavePrefix("Zbad: "))

		var uc *vm.UnknownCommandError
		Expect(errors.As(err, &uc)).To(BeTrue())
		Expect(uc.Line).To(Equal(2))
	})

	It("should locate emitter failures by unit and line", func() {
		b := bundleOf(map[string]string{"Main": "// header\npush constant 1\n\nneg\n"})
		boom := errors.New("boom")

		gomock.InOrder(
			emitter.EXPECT().SetUnitName("Main"),
			emitter.EXPECT().WritePushPop(vm.Push, vm.Constant, 1),
			emitter.EXPECT().WriteArithmetic(vm.Neg).Return(boom),
		)

		stats, err := translator.Run(b, emitter, translator.Options{})
		Expect(err).To(MatchError(ContainSubstring("Main:4: boom")))
		Expect(errors.Is(err, boom)).To(BeTrue())
		Expect(stats.Commands).To(Equal(1))
	})
})

var _ = Describe("Translate", func() {
	It("should produce assembly starting with the bootstrap", func() {
		b := bundleOf(map[string]string{
			"Sys": "function Sys.init 0\nlabel END\ngoto END\n",
		})
		var out bytes.Buffer

		_, err := translator.Translate(b, &out, translator.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(HavePrefix("@256\nD=A\n@SP\nM=D\n"))
		Expect(out.String()).To(ContainSubstring("(Sys.init$END)\n@Sys.init$END\n0;JMP\n"))
		Expect(out.String()).NotTo(ContainSubstring("//"))
	})

	It("should annotate on request", func() {
		b := bundleOf(map[string]string{"Main": "push constant 7\n"})
		var out bytes.Buffer

		_, err := translator.Translate(b, &out, translator.Options{Annotate: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(HavePrefix("// push constant 7\n"))
	})

	It("should keep statics of different units apart", func() {
		b := bundleOf(map[string]string{
			"A": "push constant 1\npop static 0\n",
			"B": "push constant 2\npop static 0\n",
		})
		var out bytes.Buffer

		_, err := translator.Translate(b, &out, translator.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("@A.0\n"))
		Expect(out.String()).To(ContainSubstring("@B.0\n"))
	})
})

var _ = Describe("ParseBootstrapMode", func() {
	It("should accept the three modes", func() {
		for _, m := range []translator.BootstrapMode{translator.BootstrapAuto, translator.BootstrapAlways, translator.BootstrapNever} {
			got, err := translator.ParseBootstrapMode(m.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(m))
		}
	})

	It("should reject anything else", func() {
		_, err := translator.ParseBootstrapMode("sometimes")
		Expect(err).To(MatchError(ContainSubstring(`"sometimes"`)))
	})
})

var _ = Describe("Output files", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(path, text string) {
		Expect(os.WriteFile(path, []byte(text), 0o644)).To(Succeed())
	}

	It("should name directory output after the directory", func() {
		prog := filepath.Join(dir, "FibonacciElement")
		Expect(os.Mkdir(prog, 0o755)).To(Succeed())

		out, err := translator.OutputPath(prog)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(filepath.Join(prog, "FibonacciElement.asm")))
	})

	It("should swap the extension of a file", func() {
		file := filepath.Join(dir, "SimpleAdd.vm")
		write(file, "")

		out, err := translator.OutputPath(file)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(filepath.Join(dir, "SimpleAdd.asm")))
	})

	It("should translate a path to disk", func() {
		file := filepath.Join(dir, "SimpleAdd.vm")
		write(file, "push constant 7\npush constant 8\nadd\n")

		out, stats, err := translator.TranslatePath(file, "", translator.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Commands).To(Equal(3))

		data, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(HavePrefix("@7\nD=A\n"))
	})

	It("should leave no output behind on failure", func() {
		file := filepath.Join(dir, "Broken.vm")
		write(file, "push nowhere 1\n")
		target := filepath.Join(dir, "Broken.asm")

		_, _, err := translator.TranslatePath(file, target, translator.Options{})
		Expect(errors.Is(err, vm.ErrMalformedCommand)).To(BeTrue())
		_, statErr := os.Stat(target)
		Expect(os.IsNotExist(statErr)).To(BeTrue())
		Expect(err.Error()).To(HavePrefix(file + ": "))
	})
})

var _ = Describe("Compare", func() {
	It("should ignore comments and blank lines", func() {
		expected := "// header\n@7\nD=A   // load\n\n@SP\n"
		actual := "@7\n  D=A\n@SP\n\n"
		Expect(translator.Compare(strings.NewReader(expected), strings.NewReader(actual))).To(Succeed())
	})

	It("should report the first differing line", func() {
		err := translator.Compare(strings.NewReader("@7\nD=A\n@SP\n"), strings.NewReader("@7\nD=M\n@SP\n"))

		var mm *translator.MismatchError
		Expect(errors.As(err, &mm)).To(BeTrue())
		Expect(mm.Line).To(Equal(2))
		Expect(mm.Expected).To(Equal("D=A"))
		Expect(mm.Got).To(Equal("D=M"))
		Expect(errors.Is(err, translator.ErrMismatch)).To(BeTrue())
	})

	It("should report a length difference", func() {
		err := translator.Compare(strings.NewReader("@7\nD=A\n"), strings.NewReader("@7\n"))

		var mm *translator.MismatchError
		Expect(errors.As(err, &mm)).To(BeTrue())
		Expect(mm.Line).To(BeZero())
		Expect(err.Error()).To(ContainSubstring("expected 2 lines, got 1"))
	})

	It("should compare files on disk", func() {
		dir := GinkgoT().TempDir()
		a := filepath.Join(dir, "a.asm")
		b := filepath.Join(dir, "b.asm")
		Expect(os.WriteFile(a, []byte("@1\n"), 0o644)).To(Succeed())
		Expect(os.WriteFile(b, []byte("@1 // one\n"), 0o644)).To(Succeed())

		Expect(translator.CompareFiles(a, b)).To(Succeed())
	})
})
