package cpu

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RegisterTable renders the CPU registers and the virtual registers
// RAM[0..4].
func (c *CPU) RegisterTable() string {
	status := "running"
	switch {
	case c.Fault != nil:
		status = "fault: " + c.Fault.Error()
	case c.Halted:
		status = "halted"
	}

	t := table.NewWriter()
	t.SetTitle("Registers (%s)", status)
	t.AppendHeader(table.Row{"PC", "A", "D", "SP", "LCL", "ARG", "THIS", "THAT", "Steps"})

	row := table.Row{c.PC, c.A, int16(c.D)}
	for i := SP; i <= THAT; i++ {
		row = append(row, c.RAM[i])
	}
	row = append(row, c.Steps)
	t.AppendRow(row)
	return t.Render()
}

// MemoryTable renders RAM[from:to] as signed values, eight words per row.
func (c *CPU) MemoryTable(title string, from, to uint16) string {
	if to > MemorySize {
		to = MemorySize
	}

	t := table.NewWriter()
	t.SetTitle("%s", title)
	header := table.Row{"Addr"}
	for i := 0; i < 8; i++ {
		header = append(header, fmt.Sprintf("+%d", i))
	}
	t.AppendHeader(header)

	for base := int(from); base < int(to); base += 8 {
		row := table.Row{base}
		for i := base; i < base+8 && i < int(to); i++ {
			row = append(row, int16(c.RAM[i]))
		}
		t.AppendRow(row)
	}
	return t.Render()
}

// StackTable renders the working stack from base up to SP.
func (c *CPU) StackTable(base uint16) string {
	sp := c.RAM[SP]
	if sp < base {
		sp = base
	}
	return c.MemoryTable(fmt.Sprintf("Stack [%d, %d)", base, sp), base, sp)
}
