// Package sim evaluates compiled circuits on a dense statevector.
//
// Basis index convention: row 0 is the most significant bit, so on two qubits
// index 2 (binary 10) is row 0 in |1> and row 1 in |0>.
package sim

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"qcircuitgrid/internal/compiler"
	"qcircuitgrid/internal/gate"
)

// NormTolerance bounds how far the squared norm of a settled state may drift from 1.
const NormTolerance = 1e-6

// MaxQubits caps the dense representation.
const MaxQubits = 16

// Engine holds the amplitude vector of the last run. Every Run starts over
// from the initial basis state; amplitudes are never updated incrementally.
type Engine struct {
	qubits  int
	initial int
	amps    []complex128
}

// New returns an engine settled in |0...0>.
func New(qubits int) (*Engine, error) {
	if qubits < 1 || qubits > MaxQubits {
		return nil, fmt.Errorf("sim: qubit count %d outside [1,%d]", qubits, MaxQubits)
	}
	e := &Engine{qubits: qubits}
	e.amps = e.basis(0)
	return e, nil
}

// Qubits returns the register width.
func (e *Engine) Qubits() int { return e.qubits }

// Dim returns 2^qubits.
func (e *Engine) Dim() int { return 1 << e.qubits }

// Initial returns the basis index runs start from.
func (e *Engine) Initial() int { return e.initial }

func (e *Engine) basis(index int) []complex128 {
	amps := make([]complex128, e.Dim())
	amps[index] = 1
	return amps
}

// bit returns the basis-index mask of a grid row.
func (e *Engine) bit(row int) int {
	return 1 << (e.qubits - 1 - row)
}

// Run recomputes the state from the initial basis state through every
// operation of p, in order.
func (e *Engine) Run(p compiler.Program) error {
	if p.Qubits != e.qubits {
		return fmt.Errorf("sim: program has %d qubits, engine has %d", p.Qubits, e.qubits)
	}
	amps := e.basis(e.initial)
	for _, op := range p.Operations {
		e.apply(amps, op)
	}
	mustBeNormalized(amps, len(p.Operations))
	e.amps = amps
	return nil
}

func (e *Engine) apply(amps []complex128, op compiler.Operation) {
	ctrlMask := 0
	for _, c := range op.Controls {
		ctrlMask |= e.bit(c)
	}
	for _, t := range op.Targets {
		applyControlled(amps, e.bit(t), ctrlMask, op.Matrix)
	}
}

// applyControlled multiplies m into every amplitude pair (i, i|targetBit)
// whose control bits are all set. Pairs are disjoint, so this is in place.
func applyControlled(amps []complex128, targetBit, ctrlMask int, m gate.Matrix) {
	for i := range amps {
		if i&targetBit != 0 || i&ctrlMask != ctrlMask {
			continue
		}
		j := i | targetBit
		a0, a1 := amps[i], amps[j]
		amps[i] = m[0][0]*a0 + m[0][1]*a1
		amps[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

// Amplitudes returns a copy of the current amplitude vector.
func (e *Engine) Amplitudes() []complex128 {
	out := make([]complex128, len(e.amps))
	copy(out, e.amps)
	return out
}

// Amplitude returns the amplitude of one basis state.
func (e *Engine) Amplitude(index int) complex128 {
	return e.amps[index]
}

// Collapse forces the state to |index> and makes it the starting point of
// later runs until ResetInitial.
func (e *Engine) Collapse(index int) error {
	if index < 0 || index >= e.Dim() {
		return fmt.Errorf("sim: basis index %d outside [0,%d)", index, e.Dim())
	}
	e.initial = index
	e.amps = e.basis(index)
	return nil
}

// ResetInitial restores |0...0> as the starting state and settles there.
func (e *Engine) ResetInitial() {
	e.initial = 0
	e.amps = e.basis(0)
}

// Norm returns the squared norm of the current state.
func (e *Engine) Norm() float64 {
	return squaredNorm(e.amps)
}

func squaredNorm(amps []complex128) float64 {
	mags := make([]float64, len(amps))
	for i, a := range amps {
		r := cmplx.Abs(a)
		mags[i] = r * r
	}
	return floats.Sum(mags)
}

// mustBeNormalized panics when the gate catalog or the kernel produced a
// non-unitary evolution. It is never triggered by user edits.
func mustBeNormalized(amps []complex128, ops int) {
	n := squaredNorm(amps)
	if n < 1-NormTolerance || n > 1+NormTolerance {
		panic(fmt.Sprintf("sim: squared norm %.12f after %d operations", n, ops))
	}
}
