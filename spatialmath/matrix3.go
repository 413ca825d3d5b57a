package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrSingularMatrix is returned when a matrix cannot be inverted.
var ErrSingularMatrix = errors.New("matrix is singular or ill-conditioned")

// Matrix3 is a 3x3 matrix stored as its three column vectors.
type Matrix3 [3]r3.Vector

// NewMatrix3FromColumns builds a Matrix3 from three column vectors.
func NewMatrix3FromColumns(c0, c1, c2 r3.Vector) Matrix3 {
	return Matrix3{c0, c1, c2}
}

// NewMatrix3FromRows builds a Matrix3 from three row vectors.
func NewMatrix3FromRows(r0, r1, r2 r3.Vector) Matrix3 {
	return Matrix3{r0, r1, r2}.Transpose()
}

// At returns the element at the given row and column.
func (m Matrix3) At(row, col int) float64 {
	c := m[col]
	switch row {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

// Transpose returns the transpose of the matrix.
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		{X: m[0].X, Y: m[1].X, Z: m[2].X},
		{X: m[0].Y, Y: m[1].Y, Z: m[2].Y},
		{X: m[0].Z, Y: m[1].Z, Z: m[2].Z},
	}
}

// Determinant returns the scalar triple product of the columns.
func (m Matrix3) Determinant() float64 {
	return m[0].Dot(m[1].Cross(m[2]))
}

// Mul returns the product of the matrix and the column vector v.
func (m Matrix3) Mul(v r3.Vector) r3.Vector {
	return m[0].Mul(v.X).Add(m[1].Mul(v.Y)).Add(m[2].Mul(v.Z))
}

// Inverse returns the closed-form inverse of the matrix. The rows of the inverse are the pairwise cross products of
// the columns divided by the determinant. ErrSingularMatrix is returned if the magnitude of the determinant is not
// above epsilon, or if it is not finite.
func (m Matrix3) Inverse(epsilon float64) (Matrix3, error) {
	det := m.Determinant()
	if math.IsNaN(det) || math.IsInf(det, 0) || math.Abs(det) <= epsilon {
		return Matrix3{}, errors.Wrapf(ErrSingularMatrix, "determinant %g", det)
	}
	invDet := 1 / det
	return NewMatrix3FromRows(
		m[1].Cross(m[2]).Mul(invDet),
		m[2].Cross(m[0]).Mul(invDet),
		m[0].Cross(m[1]).Mul(invDet),
	), nil
}

// Solve returns x such that m * x = b, using the closed-form inverse.
func (m Matrix3) Solve(b r3.Vector, epsilon float64) (r3.Vector, error) {
	inv, err := m.Inverse(epsilon)
	if err != nil {
		return r3.Vector{}, err
	}
	return inv.Mul(b), nil
}
