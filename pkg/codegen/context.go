package codegen

import "fmt"

// Context is the translation state shared by every command of one program.
// A program gets exactly one Context; it is never stored in package state.
type Context struct {
	// UnitName is the short name of the source unit being translated. It
	// namespaces the static segment and return-address labels.
	UnitName string
	// CurrentFunction is the function whose body is being emitted, or "".
	CurrentFunction string

	nextLabel int
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{}
}

// NextLabel returns a fresh label number. Numbers are never reused.
func (c *Context) NextLabel() int {
	n := c.nextLabel
	c.nextLabel++
	return n
}

// LabelCount is the number of label numbers handed out so far.
func (c *Context) LabelCount() int { return c.nextLabel }

// QualifyLabel maps a VM label to its assembly symbol. Inside a function the
// label is scoped as function$label; at top level it is used verbatim.
func QualifyLabel(function, label string) string {
	if function == "" {
		return label
	}
	return function + "$" + label
}

// Qualify applies QualifyLabel with the context's current function.
func (c *Context) Qualify(label string) string {
	return QualifyLabel(c.CurrentFunction, label)
}

// StaticSymbol names static cell index of the current unit.
func (c *Context) StaticSymbol(index int) string {
	return fmt.Sprintf("%s.%d", c.UnitName, index)
}

// returnLabel mints the label a call returns to.
func (c *Context) returnLabel() string {
	unit := c.UnitName
	if unit == "" {
		unit = "Bootstrap"
	}
	return fmt.Sprintf("%s$ret.%d", unit, c.NextLabel())
}
