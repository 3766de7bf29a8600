package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order.
// Each group of four consecutive elements is one column.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Mat4FromCols builds a matrix from its four columns.
func Mat4FromCols(c0, c1, c2, c3 Vec4) Mat4 {
	return Mat4{
		c0.X, c0.Y, c0.Z, c0.W,
		c1.X, c1.Y, c1.Z, c1.W,
		c2.X, c2.Y, c2.Z, c2.W,
		c3.X, c3.Y, c3.Z, c3.W,
	}
}

// Perspective creates a right-handed perspective projection matrix.
// fovy is vertical field of view in radians.
// aspect is width/height.
// near and far are the clipping planes; W carries -z for the divide.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	nf := 1.0 / (near - far)

	return Mat4FromCols(
		V4(f/aspect, 0, 0, 0),
		V4(0, f, 0, 0),
		V4(0, 0, (far+near)*nf, -1),
		V4(0, 0, 2*far*near*nf, 0),
	)
}

// Col returns column i.
func (m Mat4) Col(i int) Vec4 {
	return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// Add returns the element-wise sum.
//
//nolint:st1016 // a+b naming convention is clearer for matrix operations
func (a Mat4) Add(b Mat4) Mat4 {
	var m Mat4
	for i := range m {
		m[i] = a[i] + b[i]
	}
	return m
}

// Sub returns the element-wise difference.
//
//nolint:st1016 // a-b naming convention is clearer for matrix operations
func (a Mat4) Sub(b Mat4) Mat4 {
	var m Mat4
	for i := range m {
		m[i] = a[i] - b[i]
	}
	return m
}

// MulScalar scales every element by s.
func (m Mat4) MulScalar(s float64) Mat4 {
	var out Mat4
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		c := a.MulVec4(b.Col(col))
		m[col*4], m[col*4+1], m[col*4+2], m[col*4+3] = c.X, c.Y, c.Z, c.W
	}
	return m
}

// MulVec4 transforms a Vec4 (m·v).
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}
