// Package gate is the catalog of single-qubit unitaries that can be placed on
// the circuit grid.
package gate

import (
	"fmt"
	"math"
)

// Kind enumerates the gate variants the grid understands.
type Kind int

const (
	Identity Kind = iota
	PauliX
	PauliY
	PauliZ
	Hadamard
	Rotation
)

func (k Kind) String() string {
	switch k {
	case Identity:
		return "I"
	case PauliX:
		return "X"
	case PauliY:
		return "Y"
	case PauliZ:
		return "Z"
	case Hadamard:
		return "H"
	case Rotation:
		return "R"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Axis selects the Pauli generator of a Rotation gate.
type Axis int

const (
	AxisY Axis = iota
	AxisX
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisZ:
		return "Z"
	default:
		return "Y"
	}
}

// Gate is a placed operation. Angle and Axis are only meaningful for Rotation.
type Gate struct {
	Kind  Kind
	Axis  Axis
	Angle float64
}

var (
	I = Gate{Kind: Identity}
	X = Gate{Kind: PauliX}
	Y = Gate{Kind: PauliY}
	Z = Gate{Kind: PauliZ}
	H = Gate{Kind: Hadamard}
)

// RX returns a rotation about the X axis.
func RX(angle float64) Gate { return Gate{Kind: Rotation, Axis: AxisX, Angle: WrapAngle(angle)} }

// RY returns a rotation about the Y axis.
func RY(angle float64) Gate { return Gate{Kind: Rotation, Axis: AxisY, Angle: WrapAngle(angle)} }

// RZ returns a rotation about the Z axis.
func RZ(angle float64) Gate { return Gate{Kind: Rotation, Axis: AxisZ, Angle: WrapAngle(angle)} }

// IsIdentity reports whether the gate is the empty placeholder.
func (g Gate) IsIdentity() bool { return g.Kind == Identity }

// SameKind reports whether g and other are the same variant, ignoring the
// rotation angle.
func (g Gate) SameKind(other Gate) bool {
	if g.Kind != other.Kind {
		return false
	}
	return g.Kind != Rotation || g.Axis == other.Axis
}

// Rotate returns the gate with delta added to its angle, wrapped into [0, 2π).
// Non-rotation gates are returned unchanged.
func (g Gate) Rotate(delta float64) Gate {
	if g.Kind != Rotation {
		return g
	}
	g.Angle = WrapAngle(g.Angle + delta)
	return g
}

// Matrix returns the 2x2 unitary for the gate.
func (g Gate) Matrix() Matrix {
	switch g.Kind {
	case PauliX:
		return Matrix{{0, 1}, {1, 0}}
	case PauliY:
		return Matrix{{0, -1i}, {1i, 0}}
	case PauliZ:
		return Matrix{{1, 0}, {0, -1}}
	case Hadamard:
		h := complex(1/math.Sqrt2, 0)
		return Matrix{{h, h}, {h, -h}}
	case Rotation:
		return rotationMatrix(g.Axis, g.Angle)
	default:
		return Identity2
	}
}

// rotationMatrix computes exp(-i·θ/2·σ) for the given Pauli axis.
func rotationMatrix(axis Axis, theta float64) Matrix {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	switch axis {
	case AxisX:
		return Matrix{
			{complex(c, 0), complex(0, -s)},
			{complex(0, -s), complex(c, 0)},
		}
	case AxisZ:
		return Matrix{
			{complex(c, -s), 0},
			{0, complex(c, s)},
		}
	default:
		return Matrix{
			{complex(c, 0), complex(-s, 0)},
			{complex(s, 0), complex(c, 0)},
		}
	}
}

// Label is the short display name, e.g. "H" or "RY(pi/8)".
func (g Gate) Label() string {
	if g.Kind == Rotation {
		return fmt.Sprintf("R%s(%s)", g.Axis, FormatAngle(g.Angle))
	}
	return g.Kind.String()
}

// Symbol is the compact glyph drawn inside a grid cell.
func (g Gate) Symbol() string {
	switch g.Kind {
	case Identity:
		return ""
	case Rotation:
		return "R" + g.Axis.String()
	default:
		return g.Kind.String()
	}
}

func (g Gate) String() string { return g.Label() }

// WrapAngle maps an angle into [0, 2π).
func WrapAngle(a float64) float64 {
	r := math.Mod(a, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	if r >= 2*math.Pi {
		r = 0
	}
	return r
}
