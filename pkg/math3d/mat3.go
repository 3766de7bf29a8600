package math3d

import "math"

// Mat3 is a 3x3 matrix stored as three column vectors.
//
// | m[0].X m[1].X m[2].X |
// | m[0].Y m[1].Y m[2].Y |
// | m[0].Z m[1].Z m[2].Z |
type Mat3 [3]Vec3

// Mat3FromCols builds a matrix from its columns.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{c0, c1, c2}
}

// RotationX3 rotates by angle radians about the X axis.
func RotationX3(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
}

// RotationY3 rotates by angle radians about the Y axis.
func RotationY3(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	}
}

// FlipY3 negates the Y component.
func FlipY3() Mat3 {
	return Mat3FromCols(V3(1, 0, 0), V3(0, -1, 0), V3(0, 0, 1))
}

// Add returns the element-wise sum.
//
//nolint:st1016 // a+b naming convention is clearer for matrix operations
func (a Mat3) Add(b Mat3) Mat3 {
	return Mat3{a[0].Add(b[0]), a[1].Add(b[1]), a[2].Add(b[2])}
}

// Sub returns the element-wise difference.
//
//nolint:st1016 // a-b naming convention is clearer for matrix operations
func (a Mat3) Sub(b Mat3) Mat3 {
	return Mat3{a[0].Sub(b[0]), a[1].Sub(b[1]), a[2].Sub(b[2])}
}

// MulScalar scales every element by s.
func (m Mat3) MulScalar(s float64) Mat3 {
	return Mat3{m[0].Scale(s), m[1].Scale(s), m[2].Scale(s)}
}

// MulVec3 returns m·v, the linear combination of the columns weighted by v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return m[0].Scale(v.X).Add(m[1].Scale(v.Y)).Add(m[2].Scale(v.Z))
}

// Mul returns a·b by applying a to each column of b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	return Mat3{a.MulVec3(b[0]), a.MulVec3(b[1]), a.MulVec3(b[2])}
}
