// Package vm reads VM-language source units and classifies their commands.
//
// A Reader strips comments and blank lines up front and then exposes the
// remaining lines through a cursor: HasNext, Advance, and accessors for the
// current command's kind and operands.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const bom = "\ufeff"

// validSymbol matches label and function names. A leading '$' is reserved
// for labels the code generator makes up.
var validSymbol = regexp.MustCompile(`^[A-Za-z_.:][A-Za-z0-9_.:$]*$`)

// maxLineBytes bounds a single source line.
const maxLineBytes = 1 << 20

type sourceLine struct {
	no   int
	text string
}

// Reader is a cursor over the commands of one source unit.
type Reader struct {
	lines []sourceLine
	index int
}

// NewReader reads all of r and keeps the non-empty, comment-free lines.
func NewReader(r io.Reader) (*Reader, error) {
	p := &Reader{index: -1}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if cut := strings.Index(line, "//"); cut >= 0 {
			line = line[:cut]
		}
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), bom))
		if line == "" {
			continue
		}
		p.lines = append(p.lines, sourceLine{no: lineNo, text: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return p, nil
}

// Parse reads a whole unit and returns its commands in order.
func Parse(r io.Reader) ([]Command, error) {
	p, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	cmds := make([]Command, 0, p.Len())
	for p.HasNext() {
		p.Advance()
		cmd, err := p.Command()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Len returns the number of commands in the unit.
func (p *Reader) Len() int { return len(p.lines) }

// Index returns the 0-based position of the current command, or -1 before
// the first Advance.
func (p *Reader) Index() int { return p.index }

// Line returns the source line number of the current command.
func (p *Reader) Line() int { return p.current().no }

// HasNext reports whether Advance can move to another command.
func (p *Reader) HasNext() bool {
	return p.index+1 < len(p.lines)
}

// Advance makes the next command current. It panics when HasNext is false.
func (p *Reader) Advance() {
	if !p.HasNext() {
		panic("vm: Advance called with no commands left")
	}
	p.index++
}

func (p *Reader) current() sourceLine {
	if p.index < 0 {
		panic("vm: no current command, Advance has not been called")
	}
	return p.lines[p.index]
}

func (p *Reader) fields() []string {
	return strings.Fields(p.current().text)
}

func (p *Reader) syntaxError(reason string) error {
	cur := p.current()
	return &SyntaxError{Line: cur.no, Index: p.index, Text: cur.text, Reason: reason}
}

// CommandType classifies the current command by its first token.
func (p *Reader) CommandType() (CommandType, error) {
	first := p.fields()[0]
	if _, ok := ParseOp(first); ok {
		return Arithmetic, nil
	}
	if t, ok := keywords[first]; ok {
		return t, nil
	}
	cur := p.current()
	return 0, &UnknownCommandError{Line: cur.no, Index: p.index, Text: cur.text}
}

// Arg1 returns the arithmetic mnemonic itself, or the second token for every
// other command. It panics on return, which has no operands.
func (p *Reader) Arg1() (string, error) {
	t, err := p.CommandType()
	if err != nil {
		return "", err
	}
	if !t.HasArg1() {
		panic("vm: Arg1 called on a return command")
	}
	parts := p.fields()
	if t == Arithmetic {
		return parts[0], nil
	}
	if len(parts) < 2 {
		return "", p.syntaxError(fmt.Sprintf("%s expects an operand", t))
	}
	return parts[1], nil
}

// MaxOperand is the largest integer operand; larger values do not fit a Hack
// A-instruction.
const MaxOperand = 32767

// Arg2 returns the third token as an integer in [0, MaxOperand]. It panics
// unless the current command is push, pop, function or call.
func (p *Reader) Arg2() (int, error) {
	t, err := p.CommandType()
	if err != nil {
		return 0, err
	}
	if !t.HasArg2() {
		panic(fmt.Sprintf("vm: Arg2 called on a %s command", t))
	}
	parts := p.fields()
	if len(parts) < 3 {
		return 0, p.syntaxError(fmt.Sprintf("%s expects two operands", t))
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 0 {
		return 0, p.syntaxError(fmt.Sprintf("invalid %s operand %q", t, parts[2]))
	}
	if n > MaxOperand {
		return 0, p.syntaxError(fmt.Sprintf("%s operand %d exceeds %d", t, n, MaxOperand))
	}
	return n, nil
}

// Command decodes the current line into a Command, checking its operand
// count, segment name and integer operand.
func (p *Reader) Command() (Command, error) {
	t, err := p.CommandType()
	if err != nil {
		return Command{}, err
	}
	cur := p.current()
	cmd := Command{Type: t, Line: cur.no, Text: cur.text}

	parts := p.fields()
	if len(parts) != t.arity() {
		return Command{}, p.syntaxError(fmt.Sprintf("%s expects %d operand(s), got %d", t, t.arity()-1, len(parts)-1))
	}

	if t.HasArg1() {
		if cmd.Arg1, err = p.Arg1(); err != nil {
			return Command{}, err
		}
	}
	if t.HasArg2() {
		if cmd.Arg2, err = p.Arg2(); err != nil {
			return Command{}, err
		}
	}

	switch t {
	case Arithmetic:
		cmd.Op, _ = ParseOp(cmd.Arg1)
	case Label, Goto, If, Function, Call:
		if !validSymbol.MatchString(cmd.Arg1) {
			return Command{}, p.syntaxError(fmt.Sprintf("invalid symbol %q", cmd.Arg1))
		}
	case Push, Pop:
		seg, ok := ParseSegment(cmd.Arg1)
		if !ok {
			return Command{}, p.syntaxError(fmt.Sprintf("unknown segment %q", cmd.Arg1))
		}
		if t == Pop && seg == Constant {
			return Command{}, p.syntaxError("cannot pop to the constant segment")
		}
		cmd.Segment = seg
	}
	return cmd, nil
}
