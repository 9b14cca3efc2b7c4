package gate

import "math/cmplx"

// Matrix is a 2x2 complex matrix in row-major order.
type Matrix [2][2]complex128

// Identity2 is the 2x2 identity.
var Identity2 = Matrix{{1, 0}, {0, 1}}

// Mul returns m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := range 2 {
		for j := range 2 {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j]
		}
	}
	return r
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// ApproxEqual compares element-wise within tol.
func (m Matrix) ApproxEqual(o Matrix, tol float64) bool {
	for i := range 2 {
		for j := range 2 {
			if cmplx.Abs(m[i][j]-o[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// IsUnitary reports whether m·m† equals the identity within tol.
func (m Matrix) IsUnitary(tol float64) bool {
	return m.Mul(m.Dagger()).ApproxEqual(Identity2, tol)
}
