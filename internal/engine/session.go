// Package engine binds the cursor to grid edits and keeps the simulated state
// in step with the circuit: every structural edit recompiles the grid and
// reruns the simulator before Apply returns.
package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"qcircuitgrid/internal/compiler"
	"qcircuitgrid/internal/config"
	"qcircuitgrid/internal/cursor"
	"qcircuitgrid/internal/grid"
	"qcircuitgrid/internal/logging"
	"qcircuitgrid/internal/measure"
	"qcircuitgrid/internal/sim"
)

// Session is one editable circuit with its simulated state. It is not safe
// for concurrent use; callers apply one command at a time.
type Session struct {
	cfg          config.Config
	rotationStep float64
	logger       *log.Logger
	rng          *rand.Rand

	model   *grid.Model
	cursor  *cursor.Cursor
	program compiler.Program
	sim     *sim.Engine
	sampler *measure.Sampler

	lastErr     error
	lastOutcome int
	measured    bool
}

// View is a rendering snapshot of a session.
type View struct {
	Qubits        int
	Depth         int
	CursorRow     int
	CursorColumn  int
	Cells         grid.Snapshot
	Probabilities []float64
	Initial       int
	LastOK        bool
}

// New creates a session sized by cfg. A nil logger discards output.
func New(cfg *config.Config, logger *log.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	step, err := cfg.RotationAngle()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Session{
		cfg:          *cfg,
		rotationStep: step,
		logger:       logger,
		rng:          measure.NewRand(cfg.Seed),
	}
	if err := s.build(cfg.Qubits); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build(qubits int) error {
	model, err := grid.New(qubits, s.cfg.Depth)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	engine, err := sim.New(qubits)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	s.model = model
	s.cursor = cursor.New(qubits, s.cfg.Depth)
	s.sim = engine
	s.sampler = measure.NewSampler(engine, s.rng)
	s.lastErr = nil
	s.measured = false
	return s.recompute()
}

// recompute compiles the grid from scratch and reruns the simulator from the
// initial basis state.
func (s *Session) recompute() error {
	s.program = compiler.Compile(s.model)
	return s.sim.Run(s.program)
}

// Apply runs cmd and reports whether it was accepted. A rejected command
// leaves the cursor and the circuit unchanged; the reason is kept in
// LastError.
func (s *Session) Apply(cmd Command) bool {
	before := s.model.Snapshot()
	row, col := s.cursor.Position()

	changed, err := cmd.apply(s)
	if err != nil {
		s.lastErr = err
		s.logger.Debug("edit rejected", "cmd", cmd, "row", row, "col", col, "err", err)
		return false
	}
	s.lastErr = nil

	if changed && !before.Equal(s.model.Snapshot()) {
		if err := s.recompute(); err != nil {
			s.lastErr = err
			s.logger.Error("recompute failed", "err", err)
			return false
		}
	}
	s.logger.Debug("edit applied", "cmd", cmd, "row", row, "col", col, "ops", len(s.program.Operations))
	return true
}

// ApplyAll applies commands in order and returns how many were accepted.
func (s *Session) ApplyAll(cmds ...Command) int {
	n := 0
	for _, c := range cmds {
		if s.Apply(c) {
			n++
		}
	}
	return n
}

// LastError is the reason the most recent command was rejected, or nil.
func (s *Session) LastError() error { return s.lastErr }

// LastOK reports whether the most recent command was accepted.
func (s *Session) LastOK() bool { return s.lastErr == nil }

// Qubits returns the number of grid rows.
func (s *Session) Qubits() int { return s.model.Qubits() }

// Depth returns the number of grid columns.
func (s *Session) Depth() int { return s.model.Depth() }

// Cursor returns the selected (row, column).
func (s *Session) Cursor() (int, int) { return s.cursor.Position() }

// Grid returns a copy of the circuit.
func (s *Session) Grid() grid.Snapshot { return s.model.Snapshot() }

// Cell returns the cell at (row, column).
func (s *Session) Cell(row, column int) (grid.Cell, error) { return s.model.Cell(row, column) }

// Program returns the last compiled operation sequence.
func (s *Session) Program() compiler.Program { return s.program }

// Amplitudes returns a copy of the current amplitude vector.
func (s *Session) Amplitudes() []complex128 { return s.sim.Amplitudes() }

// Probabilities returns |amplitude|² per basis index, row 0 as the most
// significant bit.
func (s *Session) Probabilities() []float64 { return s.sampler.Probabilities() }

// Sample draws a basis index without disturbing the state.
func (s *Session) Sample() int { return s.sampler.Sample() }

// Collapse projects the state onto |index>. Later edits evaluate the circuit
// from that state until Reset or ResetCircuit.
func (s *Session) Collapse(index int) error {
	if err := s.sampler.Collapse(index); err != nil {
		return err
	}
	s.logger.Debug("collapsed", "state", measure.Bitstring(index, s.Qubits()))
	return nil
}

// Measure samples an outcome and collapses onto it when collapse_on_measure
// is set.
func (s *Session) Measure() (int, error) {
	idx, err := s.sampler.Measure(s.cfg.CollapseOnMeasure)
	if err != nil {
		return idx, err
	}
	s.lastOutcome, s.measured = idx, true
	s.logger.Info("measured", "outcome", measure.Bitstring(idx, s.Qubits()), "collapsed", s.cfg.CollapseOnMeasure)
	return idx, nil
}

// LastOutcome returns the most recent measurement, if any.
func (s *Session) LastOutcome() (int, bool) { return s.lastOutcome, s.measured }

// Reset empties the circuit, homes the cursor and restores |0...0> as the
// starting state.
func (s *Session) Reset() error {
	s.model.Reset()
	s.cursor.Reset()
	s.sim.ResetInitial()
	s.lastErr = nil
	s.measured = false
	if err := s.recompute(); err != nil {
		s.logger.Error("recompute failed", "err", err)
		return fmt.Errorf("engine: reset: %w", err)
	}
	s.logger.Debug("session reset")
	return nil
}

// Resize replaces the circuit with an empty one of the given width.
func (s *Session) Resize(qubits int) error {
	if qubits < 1 || qubits > s.cfg.MaxQubits {
		return fmt.Errorf("engine: qubits %d outside [1,%d]: %w", qubits, s.cfg.MaxQubits, grid.ErrOutOfBounds)
	}
	if err := s.build(qubits); err != nil {
		return err
	}
	s.logger.Info("resized", "qubits", qubits, "depth", s.cfg.Depth)
	return nil
}

// Level resizes to the qubit count of a 1-based level.
func (s *Session) Level(level int) error {
	return s.Resize(s.cfg.QubitsForLevel(level))
}

// RotationStep returns the angle of one rotate action.
func (s *Session) RotationStep() float64 { return s.rotationStep }

// View returns everything a renderer needs.
func (s *Session) View() View {
	row, col := s.cursor.Position()
	return View{
		Qubits:        s.Qubits(),
		Depth:         s.Depth(),
		CursorRow:     row,
		CursorColumn:  col,
		Cells:         s.model.Snapshot(),
		Probabilities: s.Probabilities(),
		Initial:       s.sim.Initial(),
		LastOK:        s.LastOK(),
	}
}
