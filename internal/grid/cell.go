package grid

import (
	"slices"

	"qcircuitgrid/internal/gate"
)

// NoControl marks a cell that does not gate another row.
const NoControl = -1

// Cell is one (row, column) position of the grid.
//
// A cell either holds its own gate (optionally gated by Controls) or acts as a
// control for the gate at row ControlOf in the same column. Never both.
type Cell struct {
	Gate      gate.Gate
	Controls  []int // ascending
	ControlOf int
}

func emptyCell() Cell {
	return Cell{Gate: gate.I, ControlOf: NoControl}
}

// IsControl reports whether the cell gates another row.
func (c Cell) IsControl() bool { return c.ControlOf != NoControl }

// HasGate reports whether the cell holds a non-identity gate.
func (c Cell) HasGate() bool { return !c.Gate.IsIdentity() }

// Occupied reports whether the cell has any role in its column.
func (c Cell) Occupied() bool { return c.HasGate() || c.IsControl() }

// Controlled reports whether the cell's gate is gated by at least one control.
func (c Cell) Controlled() bool { return len(c.Controls) > 0 }

func (c Cell) clone() Cell {
	c.Controls = slices.Clone(c.Controls)
	return c
}

// Equal compares two cells field by field.
func (c Cell) Equal(o Cell) bool {
	return c.Gate == o.Gate && c.ControlOf == o.ControlOf && slices.Equal(c.Controls, o.Controls)
}
