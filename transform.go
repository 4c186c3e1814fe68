package chartview

import "math"

// Matrix is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// The viewport only ever produces scale and translation components, so b and
// c stay zero for touch matrices; the full form is kept for composition.
type Matrix [6]float64

// Identity is the identity affine matrix.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// singularEpsilon is the determinant magnitude below which a matrix is
// treated as non-invertible.
const singularEpsilon = 1e-12

// Multiply returns m * other, i.e. other is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Concat returns the matrix that applies m first and then next.
func (m Matrix) Concat(next Matrix) Matrix {
	return next.Multiply(m)
}

// Invert returns the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -singularEpsilon && det < singularEpsilon {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ApplyRect transforms the four corners of r and returns their sorted
// bounding box.
func (m Matrix) ApplyRect(r Rect) Rect {
	x0, y0 := m.Apply(r.Left, r.Top)
	x1, y1 := m.Apply(r.Right, r.Top)
	x2, y2 := m.Apply(r.Right, r.Bottom)
	x3, y3 := m.Apply(r.Left, r.Bottom)
	return Rect{
		Left:   math.Min(math.Min(x0, x1), math.Min(x2, x3)),
		Top:    math.Min(math.Min(y0, y1), math.Min(y2, y3)),
		Right:  math.Max(math.Max(x0, x1), math.Max(x2, x3)),
		Bottom: math.Max(math.Max(y0, y1), math.Max(y2, y3)),
	}
}

// PostTranslate returns m followed by a translation of (dx, dy).
func (m Matrix) PostTranslate(dx, dy float64) Matrix {
	m[4] += dx
	m[5] += dy
	return m
}

// PostScale returns m followed by a scale of (sx, sy) about the pivot (px, py).
func (m Matrix) PostScale(sx, sy, px, py float64) Matrix {
	return m.Concat(Matrix{sx, 0, 0, sy, px - sx*px, py - sy*py})
}

// ScaleX returns the horizontal scale component.
func (m Matrix) ScaleX() float64 { return m[0] }

// ScaleY returns the vertical scale component.
func (m Matrix) ScaleY() float64 { return m[3] }

// TransX returns the horizontal translation component.
func (m Matrix) TransX() float64 { return m[4] }

// TransY returns the vertical translation component.
func (m Matrix) TransY() float64 { return m[5] }

// scaleTranslate builds a matrix with only scale and translation components.
func scaleTranslate(sx, sy, tx, ty float64) Matrix {
	return Matrix{sx, 0, 0, sy, tx, ty}
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
