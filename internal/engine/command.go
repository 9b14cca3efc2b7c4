package engine

import (
	"errors"
	"fmt"
	"slices"

	"qcircuitgrid/internal/gate"
	"qcircuitgrid/internal/grid"
)

// Command is one discrete action applied to a Session. Commands are applied
// one at a time in arrival order.
type Command interface {
	fmt.Stringer

	// apply performs the action. changed reports whether the circuit
	// structure was modified and the state must be recomputed.
	apply(s *Session) (changed bool, err error)
}

// MoveCursor steps the cursor one cell. Moving off the grid is a no-op.
type MoveCursor struct {
	Dir grid.Direction
}

// PlaceGate puts a gate at the cursor. Placing the gate already there
// removes it.
type PlaceGate struct {
	Gate gate.Gate
}

// DeleteGate clears the cell at the cursor.
type DeleteGate struct{}

// ToggleControl adds or removes a control relative to the cursor.
type ToggleControl struct{}

// MoveControl shifts a control of the gate at (or controlled from) the
// cursor one row.
type MoveControl struct {
	Dir grid.Direction
}

// RotateGate turns the rotation gate at the cursor by one rotation step in
// the direction of Sign.
type RotateGate struct {
	Sign int
}

// ResetCircuit empties the grid and drops any collapsed starting state.
type ResetCircuit struct{}

// Measure samples an outcome, collapsing onto it when the session is
// configured to.
type Measure struct{}

// Collapse forces the state onto one basis index.
type Collapse struct {
	Index int
}

func (c MoveCursor) String() string { return "move " + c.Dir.String() }
func (c PlaceGate) String() string { return "place " + c.Gate.Label() }
func (DeleteGate) String() string { return "delete" }
func (ToggleControl) String() string { return "ctrl" }
func (c MoveControl) String() string { return "ctrl " + c.Dir.String() }
func (ResetCircuit) String() string { return "reset" }
func (Measure) String() string { return "measure" }
func (c Collapse) String() string { return fmt.Sprintf("collapse %d", c.Index) }
func (c RotateGate) String() string {
	switch {
	case c.Sign > 0:
		return "rotate +"
	case c.Sign < 0:
		return "rotate -"
	}
	return "rotate 0"
}

func (c MoveCursor) apply(s *Session) (bool, error) {
	s.cursor.Move(c.Dir)
	return false, nil
}

func (c PlaceGate) apply(s *Session) (bool, error) {
	row, col := s.cursor.Position()
	cell, err := s.model.Cell(row, col)
	if err != nil {
		return false, err
	}
	if cell.HasGate() && cell.Gate.SameKind(c.Gate) {
		return true, s.model.Clear(row, col)
	}
	if err := s.model.SetGate(row, col, c.Gate); err != nil {
		return false, err
	}
	return true, nil
}

func (DeleteGate) apply(s *Session) (bool, error) {
	row, col := s.cursor.Position()
	cell, err := s.model.Cell(row, col)
	if err != nil {
		return false, err
	}
	if !cell.Occupied() {
		return false, nil
	}
	return true, s.model.Clear(row, col)
}

func (ToggleControl) apply(s *Session) (bool, error) {
	row, col := s.cursor.Position()
	cell, err := s.model.Cell(row, col)
	if err != nil {
		return false, err
	}

	switch {
	case cell.IsControl():
		return true, s.model.RemoveControl(row, col, cell.ControlOf)
	case cell.Controlled():
		for _, ctrl := range cell.Controls {
			if err := s.model.RemoveControl(ctrl, col, row); err != nil {
				return true, err
			}
		}
		return true, nil
	case cell.HasGate():
		ctrl, ok := freeRowNear(s.model, row, col)
		if !ok {
			return false, fmt.Errorf("no free row for a control in column %d: %w", col, grid.ErrCellConflict)
		}
		return true, s.model.AddControl(ctrl, col, row)
	}
	return false, fmt.Errorf("no gate at (%d,%d) to control: %w", row, col, grid.ErrCellConflict)
}

// freeRowNear finds the nearest unoccupied row above row, else below it.
func freeRowNear(m *grid.Model, row, col int) (int, bool) {
	for r := row - 1; r >= 0; r-- {
		if c, _ := m.Cell(r, col); !c.Occupied() {
			return r, true
		}
	}
	for r := row + 1; r < m.Qubits(); r++ {
		if c, _ := m.Cell(r, col); !c.Occupied() {
			return r, true
		}
	}
	return 0, false
}

func (c MoveControl) apply(s *Session) (bool, error) {
	row, col := s.cursor.Position()
	target := row
	onControl := false
	if t, ok := s.model.ControlTarget(row, col); ok {
		target, onControl = t, true
	}

	before, err := s.model.Cell(target, col)
	if err != nil {
		return false, err
	}
	if err := s.model.MoveControl(col, target, c.Dir); err != nil {
		return false, err
	}
	after, _ := s.model.Cell(target, col)
	if slices.Equal(before.Controls, after.Controls) {
		return false, nil
	}

	// Follow the control the cursor was sitting on.
	if onControl && !slices.Contains(after.Controls, row) {
		for _, r := range after.Controls {
			if !slices.Contains(before.Controls, r) {
				s.cursor.Row = r
			}
		}
	}
	return true, nil
}

func (c RotateGate) apply(s *Session) (bool, error) {
	if c.Sign == 0 {
		return false, nil
	}
	row, col := s.cursor.Position()
	cell, err := s.model.Cell(row, col)
	if err != nil {
		return false, err
	}
	if cell.Gate.Kind != gate.Rotation {
		return false, nil
	}
	delta := s.rotationStep
	if c.Sign < 0 {
		delta = -delta
	}
	return true, s.model.Rotate(row, col, delta)
}

func (ResetCircuit) apply(s *Session) (bool, error) {
	s.model.Reset()
	s.sim.ResetInitial()
	return true, nil
}

func (Measure) apply(s *Session) (bool, error) {
	_, err := s.Measure()
	return false, err
}

func (c Collapse) apply(s *Session) (bool, error) {
	return false, s.Collapse(c.Index)
}

// IsRejection reports whether err is an edit the grid refused, as opposed to
// a failure of the session itself.
func IsRejection(err error) bool {
	return errors.Is(err, grid.ErrOutOfBounds) ||
		errors.Is(err, grid.ErrCellConflict) ||
		errors.Is(err, grid.ErrSelfControl)
}
