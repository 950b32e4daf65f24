package vm

import "fmt"

// CommandType identifies the kind of a VM command.
type CommandType int

const (
	Arithmetic CommandType = iota // add, sub, neg, ...
	Push                          // push <segment> <index>
	Pop                           // pop <segment> <index>
	Label                         // label <name>
	Goto                          // goto <name>
	If                            // if-goto <name>
	Function                      // function <name> <n_vars>
	Call                          // call <name> <n_args>
	Return                        // return
)

var commandNames = [...]string{
	Arithmetic: "arithmetic",
	Push:       "push",
	Pop:        "pop",
	Label:      "label",
	Goto:       "goto",
	If:         "if-goto",
	Function:   "function",
	Call:       "call",
	Return:     "return",
}

// keywords maps the leading token of every non-arithmetic command to its kind.
var keywords = map[string]CommandType{
	"push":     Push,
	"pop":      Pop,
	"label":    Label,
	"goto":     Goto,
	"if-goto":  If,
	"function": Function,
	"call":     Call,
	"return":   Return,
}

func (t CommandType) String() string {
	if t < 0 || int(t) >= len(commandNames) {
		return fmt.Sprintf("CommandType(%d)", int(t))
	}
	return commandNames[t]
}

// HasArg1 reports whether commands of this kind carry a first operand.
func (t CommandType) HasArg1() bool {
	return t != Return
}

// HasArg2 reports whether commands of this kind carry an integer second operand.
func (t CommandType) HasArg2() bool {
	switch t {
	case Push, Pop, Function, Call:
		return true
	}
	return false
}

// arity is the number of whitespace separated tokens a command of this kind has.
func (t CommandType) arity() int {
	switch {
	case t == Arithmetic || t == Return:
		return 1
	case t.HasArg2():
		return 3
	}
	return 2
}

// Segment is one of the eight virtual memory segments.
type Segment int

const (
	Constant Segment = iota
	Local
	Argument
	This
	That
	Temp
	Pointer
	Static
)

var segmentNames = [...]string{
	Constant: "constant",
	Local:    "local",
	Argument: "argument",
	This:     "this",
	That:     "that",
	Temp:     "temp",
	Pointer:  "pointer",
	Static:   "static",
}

func (s Segment) String() string {
	if s < 0 || int(s) >= len(segmentNames) {
		return fmt.Sprintf("Segment(%d)", int(s))
	}
	return segmentNames[s]
}

// ParseSegment maps a segment keyword to its Segment.
func ParseSegment(name string) (Segment, bool) {
	for i, n := range segmentNames {
		if n == name {
			return Segment(i), true
		}
	}
	return 0, false
}

// Op is an arithmetic or logical stack operation.
type Op int

const (
	Add Op = iota
	Sub
	And
	Or
	Neg
	Not
	ShiftLeft
	ShiftRight
	Eq
	Gt
	Lt
)

var opNames = [...]string{
	Add:        "add",
	Sub:        "sub",
	And:        "and",
	Or:         "or",
	Neg:        "neg",
	Not:        "not",
	ShiftLeft:  "shiftleft",
	ShiftRight: "shiftright",
	Eq:         "eq",
	Gt:         "gt",
	Lt:         "lt",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// ParseOp maps an arithmetic mnemonic to its Op.
func ParseOp(mnemonic string) (Op, bool) {
	for i, n := range opNames {
		if n == mnemonic {
			return Op(i), true
		}
	}
	return 0, false
}

// Command is one classified VM command. Values are never mutated after the
// reader hands them out.
type Command struct {
	Type    CommandType
	Arg1    string  // mnemonic, segment, label or function name; empty for return
	Arg2    int     // index, n_vars or n_args; only meaningful when Type.HasArg2()
	Op      Op      // decoded Arg1 for arithmetic commands
	Segment Segment // decoded Arg1 for push and pop

	Line int    // 1-based line in the source unit
	Text string // comment-stripped source text
}

func (c Command) String() string {
	switch {
	case c.Type == Arithmetic:
		return c.Op.String()
	case c.Type == Return:
		return "return"
	case c.Type == Push || c.Type == Pop:
		return fmt.Sprintf("%s %s %d", c.Type, c.Segment, c.Arg2)
	case c.Type.HasArg2():
		return fmt.Sprintf("%s %s %d", c.Type, c.Arg1, c.Arg2)
	}
	return fmt.Sprintf("%s %s", c.Type, c.Arg1)
}
