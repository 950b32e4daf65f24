package vm

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMalformedCommand = errors.New("malformed command")
)

// UnknownCommandError reports a line whose first token is neither an
// arithmetic mnemonic nor a command keyword.
type UnknownCommandError struct {
	Line  int // 1-based source line
	Index int // 0-based position among the unit's commands
	Text  string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command on line %d (command %d): %q", e.Line, e.Index, e.Text)
}

func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }

// SyntaxError reports a recognized command with the wrong operands.
type SyntaxError struct {
	Line   int
	Index  int
	Text   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s on line %d (command %d): %q", e.Reason, e.Line, e.Index, e.Text)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformedCommand }
