// Package grid holds the qubit × time layout of a circuit and the mutations
// that keep it structurally valid.
package grid

import (
	"fmt"
	"slices"

	"qcircuitgrid/internal/gate"
)

// Model is the circuit grid: one Cell per (row, column), rows are qubits and
// columns are time steps. Every mutation is all-or-nothing: a rejected edit
// returns an error and leaves the grid as it was.
type Model struct {
	qubits int
	depth  int
	cells  [][]Cell // [row][column]
}

// Snapshot is a deep copy of the grid contents, indexed [row][column].
type Snapshot [][]Cell

// New creates an empty grid.
func New(qubits, depth int) (*Model, error) {
	if qubits < 1 || depth < 1 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d: %w", qubits, depth, ErrOutOfBounds)
	}
	m := &Model{qubits: qubits, depth: depth}
	m.Reset()
	return m, nil
}

// Qubits returns the number of rows.
func (m *Model) Qubits() int { return m.qubits }

// Depth returns the number of columns.
func (m *Model) Depth() int { return m.depth }

// InBounds reports whether (row, column) addresses a cell.
func (m *Model) InBounds(row, column int) bool {
	return row >= 0 && row < m.qubits && column >= 0 && column < m.depth
}

func (m *Model) check(row, column int) error {
	if !m.InBounds(row, column) {
		return fmt.Errorf("cell (%d,%d) outside %dx%d grid: %w", row, column, m.qubits, m.depth, ErrOutOfBounds)
	}
	return nil
}

// Cell returns a copy of the cell at (row, column).
func (m *Model) Cell(row, column int) (Cell, error) {
	if err := m.check(row, column); err != nil {
		return Cell{}, err
	}
	return m.cells[row][column].clone(), nil
}

// ControlTarget returns the row gated by the control at (row, column).
func (m *Model) ControlTarget(row, column int) (int, bool) {
	if !m.InBounds(row, column) {
		return NoControl, false
	}
	c := m.cells[row][column]
	return c.ControlOf, c.IsControl()
}

// SetGate places g at (row, column), replacing any gate already there.
// Existing controls of the cell are kept. Setting the identity clears the cell.
func (m *Model) SetGate(row, column int, g gate.Gate) error {
	if err := m.check(row, column); err != nil {
		return err
	}
	if g.IsIdentity() {
		return m.Clear(row, column)
	}
	c := &m.cells[row][column]
	if c.IsControl() {
		return fmt.Errorf("cell (%d,%d) is a control for row %d: %w", row, column, c.ControlOf, ErrCellConflict)
	}
	c.Gate = g
	return nil
}

// Clear empties (row, column) together with every control link rooted at or
// targeting it. Clearing an empty cell is a no-op.
func (m *Model) Clear(row, column int) error {
	if err := m.check(row, column); err != nil {
		return err
	}
	c := m.cells[row][column]
	if c.IsControl() {
		t := &m.cells[c.ControlOf][column]
		t.Controls = slices.DeleteFunc(t.Controls, func(r int) bool { return r == row })
		if len(t.Controls) == 0 {
			t.Controls = nil
		}
	}
	for _, ctrl := range c.Controls {
		m.cells[ctrl][column] = emptyCell()
	}
	m.cells[row][column] = emptyCell()
	return nil
}

// AddControl makes controlRow a control for the gate at (targetRow, column).
func (m *Model) AddControl(controlRow, column, targetRow int) error {
	if controlRow == targetRow {
		return fmt.Errorf("row %d column %d: %w", controlRow, column, ErrSelfControl)
	}
	if err := m.check(controlRow, column); err != nil {
		return err
	}
	if err := m.check(targetRow, column); err != nil {
		return err
	}
	t := &m.cells[targetRow][column]
	if !t.HasGate() {
		return fmt.Errorf("no gate at (%d,%d) to control: %w", targetRow, column, ErrCellConflict)
	}
	c := &m.cells[controlRow][column]
	if c.Occupied() {
		return fmt.Errorf("cell (%d,%d) already in use: %w", controlRow, column, ErrCellConflict)
	}
	c.ControlOf = targetRow
	t.Controls = append(t.Controls, controlRow)
	slices.Sort(t.Controls)
	return nil
}

// RemoveControl drops controlRow from the controls of (targetRow, column).
func (m *Model) RemoveControl(controlRow, column, targetRow int) error {
	if err := m.check(controlRow, column); err != nil {
		return err
	}
	if err := m.check(targetRow, column); err != nil {
		return err
	}
	if m.cells[controlRow][column].ControlOf != targetRow {
		return fmt.Errorf("row %d does not control (%d,%d): %w", controlRow, targetRow, column, ErrCellConflict)
	}
	return m.Clear(controlRow, column)
}

// MoveControl shifts one control of the gate at (targetRow, column) a row up
// or down. Up moves the topmost control, Down the bottommost. The target row
// itself is stepped over. Moving past the grid edge is a silent no-op.
func (m *Model) MoveControl(column, targetRow int, dir Direction) error {
	if err := m.check(targetRow, column); err != nil {
		return err
	}
	if !dir.Vertical() {
		return fmt.Errorf("controls move %s only vertically: %w", dir, ErrOutOfBounds)
	}
	t := &m.cells[targetRow][column]
	if !t.Controlled() {
		return fmt.Errorf("gate at (%d,%d) has no control: %w", targetRow, column, ErrCellConflict)
	}

	step, _ := dir.Delta()
	from := t.Controls[0]
	if dir == Down {
		from = t.Controls[len(t.Controls)-1]
	}
	to := from + step
	if to == targetRow {
		to += step
	}
	if to < 0 || to >= m.qubits {
		return nil
	}
	if m.cells[to][column].Occupied() {
		return fmt.Errorf("cell (%d,%d) already in use: %w", to, column, ErrCellConflict)
	}

	m.cells[from][column] = emptyCell()
	m.cells[to][column].ControlOf = targetRow
	t.Controls[slices.Index(t.Controls, from)] = to
	slices.Sort(t.Controls)
	return nil
}

// Rotate adds delta to the angle of the rotation gate at (row, column),
// wrapping modulo 2π. Cells holding anything else are left alone.
func (m *Model) Rotate(row, column int, delta float64) error {
	if err := m.check(row, column); err != nil {
		return err
	}
	c := &m.cells[row][column]
	c.Gate = c.Gate.Rotate(delta)
	return nil
}

// Reset empties every cell.
func (m *Model) Reset() {
	m.cells = make([][]Cell, m.qubits)
	for r := range m.cells {
		row := make([]Cell, m.depth)
		for c := range row {
			row[c] = emptyCell()
		}
		m.cells[r] = row
	}
}

// Snapshot returns a deep copy of all cells.
func (m *Model) Snapshot() Snapshot {
	s := make(Snapshot, m.qubits)
	for r, row := range m.cells {
		s[r] = make([]Cell, m.depth)
		for c, cell := range row {
			s[r][c] = cell.clone()
		}
	}
	return s
}

// Equal reports whether two snapshots hold identical cells.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	for r := range s {
		if len(s[r]) != len(o[r]) {
			return false
		}
		for c := range s[r] {
			if !s[r][c].Equal(o[r][c]) {
				return false
			}
		}
	}
	return true
}

// Empty reports whether no cell is occupied.
func (m *Model) Empty() bool {
	for _, row := range m.cells {
		for _, c := range row {
			if c.Occupied() {
				return false
			}
		}
	}
	return true
}
