package types

// Mat3 is a 3x3 matrix stored as three column vectors.
type Mat3 [3]Vec3

// Build a matrix from three column vectors.
func Mat3FromCols(c1, c2, c3 Vec3) Mat3 {
	return Mat3{c1, c2, c3}
}

// Create identity matrix.
func Ident3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Multiply matrix with a column vector.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[1][0]*v[1] + m[2][0]*v[2],
		m[0][1]*v[0] + m[1][1]*v[1] + m[2][1]*v[2],
		m[0][2]*v[0] + m[1][2]*v[1] + m[2][2]*v[2],
	}
}

// Transpose matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Calculate matrix determinant.
func (m Mat3) Det() float32 {
	return m[0].Dot(m[1].Cross(m[2]))
}

// Calculate the matrix inverse. The second return value is false if the
// matrix is singular.
func (m Mat3) Inverse() (Mat3, bool) {
	det := m.Det()
	if det == 0 {
		return Mat3{}, false
	}

	// The rows of the inverse are the cross products of the column pairs.
	inv := 1.0 / det
	r0 := m[1].Cross(m[2]).Mul(inv)
	r1 := m[2].Cross(m[0]).Mul(inv)
	r2 := m[0].Cross(m[1]).Mul(inv)
	return Mat3{r0, r1, r2}.Transpose(), true
}
