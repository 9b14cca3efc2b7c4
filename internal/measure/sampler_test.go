package measure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"qcircuitgrid/internal/compiler"
	"qcircuitgrid/internal/gate"
	"qcircuitgrid/internal/grid"
	"qcircuitgrid/internal/sim"
)

func engineFor(t *testing.T, qubits int, build func(m *grid.Model)) *sim.Engine {
	t.Helper()
	m, err := grid.New(qubits, 4)
	require.NoError(t, err)
	build(m)
	e, err := sim.New(qubits)
	require.NoError(t, err)
	require.NoError(t, e.Run(compiler.Compile(m)))
	return e
}

func TestProbabilities(t *testing.T) {
	tests := []struct {
		name  string
		build func(m *grid.Model)
		want  []float64
	}{
		{"empty", func(m *grid.Model) {}, []float64{1, 0, 0, 0}},
		{"H row 0", func(m *grid.Model) { _ = m.SetGate(0, 0, gate.H) }, []float64{0.5, 0, 0.5, 0}},
		{"Bell", func(m *grid.Model) {
			_ = m.SetGate(0, 0, gate.H)
			_ = m.SetGate(1, 1, gate.X)
			_ = m.AddControl(0, 1, 1)
		}, []float64{0.5, 0, 0, 0.5}},
		{"X row 1", func(m *grid.Model) { _ = m.SetGate(1, 0, gate.X) }, []float64{0, 1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeeded(engineFor(t, 2, tt.build), 1)
			got := s.Probabilities()
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
			assert.InDelta(t, 1, floats.Sum(got), 1e-6)
			for _, p := range got {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0+1e-12)
			}
		})
	}
}

func TestSampleDeterministicState(t *testing.T) {
	s := NewSeeded(engineFor(t, 2, func(m *grid.Model) { _ = m.SetGate(1, 0, gate.X) }), 42)
	for range 1000 {
		require.Equal(t, 1, s.Sample())
	}
}

func TestSampleIsReproducibleUnderSeed(t *testing.T) {
	build := func(m *grid.Model) {
		_ = m.SetGate(0, 0, gate.H)
		_ = m.SetGate(1, 0, gate.H)
	}
	a := NewSeeded(engineFor(t, 2, build), 99)
	b := NewSeeded(engineFor(t, 2, build), 99)
	for range 100 {
		assert.Equal(t, a.Sample(), b.Sample())
	}
}

func TestSampleFrequencies(t *testing.T) {
	s := NewSeeded(engineFor(t, 2, func(m *grid.Model) {
		_ = m.SetGate(0, 0, gate.H)
		_ = m.SetGate(1, 1, gate.X)
		_ = m.AddControl(0, 1, 1)
	}), 7)

	counts := make([]int, 4)
	const shots = 20000
	for range shots {
		counts[s.Sample()]++
	}
	assert.Zero(t, counts[1])
	assert.Zero(t, counts[2])
	assert.InDelta(t, 0.5, float64(counts[0])/shots, 0.02)
	assert.InDelta(t, 0.5, float64(counts[3])/shots, 0.02)
}

func TestSampleDoesNotCollapse(t *testing.T) {
	s := NewSeeded(engineFor(t, 1, func(m *grid.Model) { _ = m.SetGate(0, 0, gate.H) }), 3)
	before := s.Probabilities()
	for range 10 {
		s.Sample()
	}
	assert.Equal(t, before, s.Probabilities())
}

func TestCollapse(t *testing.T) {
	s := NewSeeded(engineFor(t, 2, func(m *grid.Model) { _ = m.SetGate(0, 0, gate.H) }), 3)
	require.NoError(t, s.Collapse(2))
	assert.Equal(t, []float64{0, 0, 1, 0}, s.Probabilities())
	assert.Error(t, s.Collapse(9))
}

func TestMeasure(t *testing.T) {
	s := NewSeeded(engineFor(t, 2, func(m *grid.Model) {
		_ = m.SetGate(0, 0, gate.H)
		_ = m.SetGate(1, 0, gate.H)
	}), 5)

	_, err := s.Measure(false)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, s.Probabilities(), 1e-9)

	idx, err := s.Measure(true)
	require.NoError(t, err)
	want := make([]float64, 4)
	want[idx] = 1
	assert.Equal(t, want, s.Probabilities())
}

func TestBasisLabels(t *testing.T) {
	assert.Equal(t, []string{"0", "1"}, BasisLabels(1))
	assert.Equal(t, []string{"00", "01", "10", "11"}, BasisLabels(2))
	labels := BasisLabels(3)
	require.Len(t, labels, 8)
	assert.Equal(t, "101", labels[5])
}

func TestAlpha(t *testing.T) {
	assert.Equal(t, uint8(0), Alpha(0))
	assert.Equal(t, uint8(255), Alpha(1))
	assert.Equal(t, uint8(128), Alpha(0.5))
	assert.Equal(t, uint8(255), Alpha(1.0000001))
	assert.Equal(t, uint8(0), Alpha(-0.1))
}

func TestProbabilitiesOfRotation(t *testing.T) {
	s := NewSeeded(engineFor(t, 1, func(m *grid.Model) { _ = m.SetGate(0, 0, gate.RY(math.Pi/2)) }), 1)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, s.Probabilities(), 1e-12)
}
