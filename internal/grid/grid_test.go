package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qcircuitgrid/internal/gate"
)

func newModel(t *testing.T, qubits, depth int) *Model {
	t.Helper()
	m, err := New(qubits, depth)
	require.NoError(t, err)
	return m
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {2, 0}, {-1, -1}} {
		_, err := New(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "dims %v", dims)
	}
}

func TestNewIsEmpty(t *testing.T) {
	m := newModel(t, 3, 4)
	assert.Equal(t, 3, m.Qubits())
	assert.Equal(t, 4, m.Depth())
	assert.True(t, m.Empty())
	for r := range 3 {
		for c := range 4 {
			cell, err := m.Cell(r, c)
			require.NoError(t, err)
			assert.False(t, cell.Occupied())
			assert.Equal(t, NoControl, cell.ControlOf)
		}
	}
}

func TestSetGate(t *testing.T) {
	m := newModel(t, 2, 3)

	require.NoError(t, m.SetGate(0, 1, gate.H))
	cell, _ := m.Cell(0, 1)
	assert.Equal(t, gate.H, cell.Gate)

	require.NoError(t, m.SetGate(0, 1, gate.X), "replaces existing gate")
	cell, _ = m.Cell(0, 1)
	assert.Equal(t, gate.X, cell.Gate)

	assert.ErrorIs(t, m.SetGate(2, 0, gate.X), ErrOutOfBounds)
	assert.ErrorIs(t, m.SetGate(0, 3, gate.X), ErrOutOfBounds)
	assert.ErrorIs(t, m.SetGate(-1, 0, gate.X), ErrOutOfBounds)
}

func TestSetGateOnControlConflicts(t *testing.T) {
	m := newModel(t, 2, 2)
	require.NoError(t, m.SetGate(1, 0, gate.X))
	require.NoError(t, m.AddControl(0, 0, 1))

	before := m.Snapshot()
	assert.ErrorIs(t, m.SetGate(0, 0, gate.H), ErrCellConflict)
	assert.True(t, before.Equal(m.Snapshot()))
}

func TestSetGateKeepsControls(t *testing.T) {
	m := newModel(t, 2, 1)
	require.NoError(t, m.SetGate(1, 0, gate.X))
	require.NoError(t, m.AddControl(0, 0, 1))
	require.NoError(t, m.SetGate(1, 0, gate.Z))

	cell, _ := m.Cell(1, 0)
	assert.Equal(t, gate.Z, cell.Gate)
	assert.Equal(t, []int{0}, cell.Controls)
}

func TestClearIsIdempotent(t *testing.T) {
	m := newModel(t, 3, 2)
	require.NoError(t, m.SetGate(2, 1, gate.X))
	require.NoError(t, m.AddControl(0, 1, 2))
	require.NoError(t, m.SetGate(1, 0, gate.H))

	require.NoError(t, m.Clear(2, 1))
	once := m.Snapshot()
	require.NoError(t, m.Clear(2, 1))
	assert.True(t, once.Equal(m.Snapshot()))

	ctrl, _ := m.Cell(0, 1)
	assert.False(t, ctrl.Occupied(), "clearing a target drops its controls")
	h, _ := m.Cell(1, 0)
	assert.Equal(t, gate.H, h.Gate, "other columns untouched")

	assert.ErrorIs(t, m.Clear(3, 0), ErrOutOfBounds)
}

func TestClearControlUnlinksTarget(t *testing.T) {
	m := newModel(t, 3, 1)
	require.NoError(t, m.SetGate(1, 0, gate.X))
	require.NoError(t, m.AddControl(0, 0, 1))
	require.NoError(t, m.AddControl(2, 0, 1))

	require.NoError(t, m.Clear(0, 0))
	target, _ := m.Cell(1, 0)
	assert.Equal(t, gate.X, target.Gate)
	assert.Equal(t, []int{2}, target.Controls)

	require.NoError(t, m.Clear(2, 0))
	target, _ = m.Cell(1, 0)
	assert.Nil(t, target.Controls)
}

func TestAddControl(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *Model)
		control int
		target  int
		column  int
		wantErr error
	}{
		{"valid", func(m *Model) { _ = m.SetGate(1, 0, gate.X) }, 0, 1, 0, nil},
		{"self control", func(m *Model) { _ = m.SetGate(1, 0, gate.X) }, 1, 1, 0, ErrSelfControl},
		{"no target gate", func(m *Model) {}, 0, 1, 0, ErrCellConflict},
		{"control occupied by gate", func(m *Model) {
			_ = m.SetGate(1, 0, gate.X)
			_ = m.SetGate(0, 0, gate.H)
		}, 0, 1, 0, ErrCellConflict},
		{"control already controlling", func(m *Model) {
			_ = m.SetGate(1, 0, gate.X)
			_ = m.SetGate(2, 0, gate.Z)
			_ = m.AddControl(0, 0, 2)
		}, 0, 1, 0, ErrCellConflict},
		{"row out of bounds", func(m *Model) { _ = m.SetGate(1, 0, gate.X) }, 5, 1, 0, ErrOutOfBounds},
		{"column out of bounds", func(m *Model) {}, 0, 1, 9, ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, 3, 2)
			tt.setup(m)
			before := m.Snapshot()

			err := m.AddControl(tt.control, tt.column, tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, before.Equal(m.Snapshot()), "rejected edit must not change the grid")
				return
			}
			require.NoError(t, err)
			ctrl, _ := m.Cell(tt.control, tt.column)
			assert.Equal(t, tt.target, ctrl.ControlOf)
			target, _ := m.Cell(tt.target, tt.column)
			assert.Contains(t, target.Controls, tt.control)
		})
	}
}

func TestRemoveControl(t *testing.T) {
	m := newModel(t, 2, 1)
	require.NoError(t, m.SetGate(1, 0, gate.X))
	assert.ErrorIs(t, m.RemoveControl(0, 0, 1), ErrCellConflict)

	require.NoError(t, m.AddControl(0, 0, 1))
	require.NoError(t, m.RemoveControl(0, 0, 1))
	target, _ := m.Cell(1, 0)
	assert.False(t, target.Controlled())
	assert.Equal(t, gate.X, target.Gate)
}

func TestMoveControl(t *testing.T) {
	m := newModel(t, 4, 1)
	require.NoError(t, m.SetGate(1, 0, gate.X))
	require.NoError(t, m.AddControl(0, 0, 1))

	// Down from row 0 jumps over the target at row 1.
	require.NoError(t, m.MoveControl(0, 1, Down))
	target, _ := m.Cell(1, 0)
	assert.Equal(t, []int{2}, target.Controls)
	old, _ := m.Cell(0, 0)
	assert.False(t, old.Occupied())

	require.NoError(t, m.MoveControl(0, 1, Down))
	target, _ = m.Cell(1, 0)
	assert.Equal(t, []int{3}, target.Controls)

	// Bottom edge: silent no-op.
	before := m.Snapshot()
	require.NoError(t, m.MoveControl(0, 1, Down))
	assert.True(t, before.Equal(m.Snapshot()))

	// Up jumps back over the target.
	require.NoError(t, m.MoveControl(0, 1, Up))
	require.NoError(t, m.MoveControl(0, 1, Up))
	target, _ = m.Cell(1, 0)
	assert.Equal(t, []int{0}, target.Controls)
	ctrl, _ := m.Cell(0, 0)
	assert.Equal(t, 1, ctrl.ControlOf)
}

func TestMoveControlRejections(t *testing.T) {
	m := newModel(t, 3, 1)
	require.NoError(t, m.SetGate(1, 0, gate.X))
	assert.ErrorIs(t, m.MoveControl(0, 1, Up), ErrCellConflict, "no control to move")

	require.NoError(t, m.AddControl(0, 0, 1))
	require.NoError(t, m.SetGate(2, 0, gate.H))
	before := m.Snapshot()
	assert.ErrorIs(t, m.MoveControl(0, 1, Down), ErrCellConflict, "destination occupied")
	assert.ErrorIs(t, m.MoveControl(0, 1, Left), ErrOutOfBounds)
	assert.True(t, before.Equal(m.Snapshot()))
}

func TestRotate(t *testing.T) {
	m := newModel(t, 1, 2)
	require.NoError(t, m.SetGate(0, 0, gate.RY(0)))
	require.NoError(t, m.SetGate(0, 1, gate.X))

	require.NoError(t, m.Rotate(0, 0, -math.Pi/8))
	cell, _ := m.Cell(0, 0)
	assert.InDelta(t, 15*math.Pi/8, cell.Gate.Angle, 1e-12)

	before := m.Snapshot()
	require.NoError(t, m.Rotate(0, 1, math.Pi/8))
	assert.True(t, before.Equal(m.Snapshot()), "non-rotation cell untouched")

	assert.ErrorIs(t, m.Rotate(0, 2, 1), ErrOutOfBounds)
}

func TestReset(t *testing.T) {
	m := newModel(t, 2, 2)
	require.NoError(t, m.SetGate(1, 1, gate.X))
	require.NoError(t, m.AddControl(0, 1, 1))
	m.Reset()
	assert.True(t, m.Empty())
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	m := newModel(t, 2, 1)
	require.NoError(t, m.SetGate(1, 0, gate.X))
	require.NoError(t, m.AddControl(0, 0, 1))

	s := m.Snapshot()
	s[1][0].Controls[0] = 99
	cell, _ := m.Cell(1, 0)
	assert.Equal(t, []int{0}, cell.Controls)
}

func TestControlTarget(t *testing.T) {
	m := newModel(t, 2, 1)
	require.NoError(t, m.SetGate(1, 0, gate.X))
	require.NoError(t, m.AddControl(0, 0, 1))

	target, ok := m.ControlTarget(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, target)
	_, ok = m.ControlTarget(1, 0)
	assert.False(t, ok)
	_, ok = m.ControlTarget(5, 0)
	assert.False(t, ok)
}
