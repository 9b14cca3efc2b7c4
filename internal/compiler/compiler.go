// Package compiler linearizes a circuit grid into the ordered list of
// operations the simulator applies.
package compiler

import (
	"fmt"
	"slices"
	"strings"

	"qcircuitgrid/internal/gate"
	"qcircuitgrid/internal/grid"
)

// Operation is one (possibly controlled) single-qubit unitary.
type Operation struct {
	Column   int
	Targets  []int
	Controls []int
	Gate     gate.Gate
	Matrix   gate.Matrix
}

func (op Operation) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "t%d %s q%v", op.Column, op.Gate.Label(), op.Targets)
	if len(op.Controls) > 0 {
		fmt.Fprintf(&sb, " ctrl%v", op.Controls)
	}
	return sb.String()
}

// Equal compares two operations exactly.
func (op Operation) Equal(o Operation) bool {
	return op.Column == o.Column &&
		op.Gate == o.Gate &&
		op.Matrix == o.Matrix &&
		slices.Equal(op.Targets, o.Targets) &&
		slices.Equal(op.Controls, o.Controls)
}

// Program is a compiled circuit.
type Program struct {
	Qubits     int
	Operations []Operation
}

// Equal compares two programs operation by operation.
func (p Program) Equal(o Program) bool {
	return p.Qubits == o.Qubits && slices.EqualFunc(p.Operations, o.Operations, Operation.Equal)
}

// Compile walks the grid column by column, left to right, and within a column
// row by row, top to bottom. Empty cells and control cells produce no operation.
func Compile(m *grid.Model) Program {
	p := Program{Qubits: m.Qubits()}
	snap := m.Snapshot()
	for col := range m.Depth() {
		for row := range m.Qubits() {
			cell := snap[row][col]
			if !cell.HasGate() {
				continue
			}
			p.Operations = append(p.Operations, Operation{
				Column:   col,
				Targets:  []int{row},
				Controls: slices.Clone(cell.Controls),
				Gate:     cell.Gate,
				Matrix:   cell.Gate.Matrix(),
			})
		}
	}
	return p
}
