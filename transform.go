package lumen

import "math"

// Matrix3 is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix3 [6]float64

// Identity returns the identity matrix.
func Identity() Matrix3 {
	return Matrix3{1, 0, 0, 1, 0, 0}
}

// Rotation returns a counter-clockwise rotation by deg degrees.
func Rotation(deg float64) Matrix3 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Matrix3{cos, sin, -sin, cos, 0, 0}
}

// Scaling returns a scale by sx along X and sy along Y.
func Scaling(sx, sy float64) Matrix3 {
	return Matrix3{sx, 0, 0, sy, 0, 0}
}

// UniformScaling returns a scale by s along both axes.
func UniformScaling(s float64) Matrix3 {
	return Scaling(s, s)
}

// Translation returns a translation by (x, y).
func Translation(x, y float64) Matrix3 {
	return Matrix3{1, 0, 0, 1, x, y}
}

// Mul returns m * o, i.e. o is applied first.
func (m Matrix3) Mul(o Matrix3) Matrix3 {
	return Matrix3{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func (m Matrix3) Invert() Matrix3 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity()
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix3{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Matrix3) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// RotationScaling returns m with the translation part removed.
func (m Matrix3) RotationScaling() Matrix3 {
	return Matrix3{m[0], m[1], m[2], m[3], 0, 0}
}

// Diagonal returns the diagonal of the rotation/scaling part.
func (m Matrix3) Diagonal() Vec2 {
	return Vec2{m[0], m[3]}
}

// UniformScale returns the scale factor of a matrix without skew or
// non-uniform scaling: the length of its first column.
func (m Matrix3) UniformScale() float64 {
	return math.Hypot(m[0], m[1])
}

// Angle returns the rotation of m in degrees, in (-180, 180].
func (m Matrix3) Angle() float64 {
	return math.Atan2(m[1], m[0]) * 180 / math.Pi
}

// Transformation is a rotation plus a uniform scale. Rotation is kept in whole
// degrees so that opposite steps cancel exactly; the composed matrix is
// derived on demand and can never carry skew.
type Transformation struct {
	Degrees int
	Scale   float64
}

// NewTransformation returns a transformation rotated by deg degrees at
// scale 1.
func NewTransformation(deg int) Transformation {
	return Transformation{Degrees: deg, Scale: 1}
}

// Matrix composes rotation and scale into a single matrix.
func (t Transformation) Matrix() Matrix3 {
	return Rotation(float64(t.Degrees)).Mul(UniformScaling(t.Scale))
}

// PreMultiply composes a rotation by deg degrees and a uniform scale by s on
// top of t, matching Rotation(deg) * Scaling(s) * t.Matrix().
func (t Transformation) PreMultiply(deg int, s float64) Transformation {
	return Transformation{Degrees: t.Degrees + deg, Scale: t.Scale * s}
}

// Angle returns the rotation in degrees normalized to (-180, 180].
func (t Transformation) Angle() int {
	a := t.Degrees % 360
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}
