package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tebeka/atexit"

	"hackvm/pkg/cpu"
	"hackvm/pkg/translator"
)

// Hack keyboard codes for keys without a printable character.
const (
	keyNewline   = 128
	keyBackspace = 129
	keyLeft      = 130
	keyUp        = 131
	keyRight     = 132
	keyDown      = 133
	keyHome      = 134
	keyEnd       = 135
	keyPageUp    = 136
	keyPageDown  = 137
	keyInsert    = 138
	keyDelete    = 139
	keyEscape    = 140
	keyF1        = 141
)

var keyCodes = map[ebiten.Key]uint16{
	ebiten.KeySpace:      ' ',
	ebiten.KeyComma:      ',',
	ebiten.KeyPeriod:     '.',
	ebiten.KeyMinus:      '-',
	ebiten.KeyEqual:      '=',
	ebiten.KeySlash:      '/',
	ebiten.KeySemicolon:  ';',
	ebiten.KeyQuote:      '\'',
	ebiten.KeyEnter:      keyNewline,
	ebiten.KeyBackspace:  keyBackspace,
	ebiten.KeyArrowLeft:  keyLeft,
	ebiten.KeyArrowUp:    keyUp,
	ebiten.KeyArrowRight: keyRight,
	ebiten.KeyArrowDown:  keyDown,
	ebiten.KeyHome:       keyHome,
	ebiten.KeyEnd:        keyEnd,
	ebiten.KeyPageUp:     keyPageUp,
	ebiten.KeyPageDown:   keyPageDown,
	ebiten.KeyInsert:     keyInsert,
	ebiten.KeyDelete:     keyDelete,
	ebiten.KeyEscape:     keyEscape,
}

func init() {
	letters := []ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
		ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
		ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
		ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
	}
	for i, k := range letters {
		keyCodes[k] = uint16('A' + i)
	}

	digits := []ebiten.Key{
		ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
	for i, k := range digits {
		keyCodes[k] = uint16('0' + i)
	}

	fkeys := []ebiten.Key{
		ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
		ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
	}
	for i, k := range fkeys {
		keyCodes[k] = uint16(keyF1 + i)
	}
}

// keyCode returns the Hack code of the first recognised key in pressed, or 0.
func keyCode(pressed []ebiten.Key) uint16 {
	for _, k := range pressed {
		if code, ok := keyCodes[k]; ok {
			return code
		}
	}
	return 0
}

type Game struct {
	vm            *cpu.CPU
	stepsPerFrame int
	screenImg     *ebiten.Image // reused 512x256 canvas
	pressed       []ebiten.Key
}

func (g *Game) Update() error {
	g.pressed = inpututil.AppendPressedKeys(g.pressed[:0])
	g.vm.SetKey(keyCode(g.pressed))

	for i := 0; i < g.stepsPerFrame && !g.vm.Halted; i++ {
		g.vm.Step()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screenImg == nil {
		g.screenImg = ebiten.NewImage(cpu.ScreenWidth, cpu.ScreenHeight)
	}
	g.screenImg.WritePixels(g.vm.GetFramebufferRGBA())
	screen.DrawImage(g.screenImg, nil)

	if g.vm.Fault != nil {
		ebitenutil.DebugPrint(screen, g.vm.Fault.Error())
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cpu.ScreenWidth, cpu.ScreenHeight
}

// newGame builds the program at path and returns a game running it.
func newGame(path string, stepsPerFrame int, showAsm bool) (*Game, error) {
	img, err := translator.BuildPath(path, translator.Options{Annotate: showAsm})
	if err != nil {
		return nil, err
	}
	if showAsm {
		fmt.Println(img.Asm)
	}
	return &Game{vm: img.NewCPU(), stepsPerFrame: stepsPerFrame}, nil
}

func main() {
	steps := flag.Int("steps", 50_000, "instructions executed per frame")
	scale := flag.Int("scale", 2, "initial window scale")
	showAsm := flag.Bool("show-asm", false, "print the generated assembly")
	flag.Parse()
	atexit.Register(glog.Flush)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: desktop [flags] path")
		atexit.Exit(2)
	}

	game, err := newGame(flag.Arg(0), *steps, *showAsm)
	if err != nil {
		glog.Errorf("build failed: %v", err)
		fmt.Fprintln(os.Stderr, "desktop:", err)
		atexit.Exit(1)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cpu.ScreenWidth*(*scale), cpu.ScreenHeight*(*scale))
	ebiten.SetWindowTitle("Hack VM - " + flag.Arg(0))

	if err := ebiten.RunGame(game); err != nil {
		glog.Errorf("game loop: %v", err)
		atexit.Exit(1)
	}
	if game.vm.Fault != nil {
		glog.Warningf("program faulted: %v", game.vm.Fault)
	}
	atexit.Exit(0)
}
