// Package cursor tracks the selected cell of the circuit grid.
package cursor

import "qcircuitgrid/internal/grid"

// Cursor points at one cell of a rows×columns grid. Moves clamp at the
// edges: stepping outside the grid leaves the position unchanged.
type Cursor struct {
	Row    int
	Column int

	rows    int
	columns int
}

// New returns a cursor at (0, 0). Dimensions below one are raised to one.
func New(rows, columns int) *Cursor {
	return &Cursor{rows: max(rows, 1), columns: max(columns, 1)}
}

// Move steps once in dir and reports whether the position changed.
func (c *Cursor) Move(dir grid.Direction) bool {
	dr, dc := dir.Delta()
	row, col := c.Row+dr, c.Column+dc
	if row < 0 || row >= c.rows || col < 0 || col >= c.columns {
		return false
	}
	if row == c.Row && col == c.Column {
		return false
	}
	c.Row, c.Column = row, col
	return true
}

// Position returns (row, column).
func (c *Cursor) Position() (int, int) { return c.Row, c.Column }

// Reset returns the cursor to (0, 0).
func (c *Cursor) Reset() { c.Row, c.Column = 0, 0 }
