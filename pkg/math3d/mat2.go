package math3d

// Mat2 is a 2x2 matrix stored as two column vectors.
type Mat2 [2]Vec2

// Mat2FromCols builds a matrix from its columns.
func Mat2FromCols(c0, c1 Vec2) Mat2 {
	return Mat2{c0, c1}
}

// Det returns the determinant. For columns b-a and c-a it is twice the
// signed area of triangle abc.
func (m Mat2) Det() float64 {
	return m[0].X*m[1].Y - m[0].Y*m[1].X
}
