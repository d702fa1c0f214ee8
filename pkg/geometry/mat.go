package geometry

// Mat4 is a 4x4 homogeneous transform stored row-major, so element (r, c)
// lives at index r*4+c. Rigid transforms keep their rotation basis in
// columns 0-2, their translation in column 3, and [0 0 0 1] as the bottom
// row. Row-major layout is also the order the snapshot export format uses,
// so a Mat4 round-trips through storage without reshuffling.
type Mat4 [16]float64

// Identity4 returns the 4x4 identity transform.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float64 {
	return m[r*4+c]
}

// Col returns the top three components of column c.
func (m Mat4) Col(c int) Vec3 {
	return Vec3{m[c], m[4+c], m[8+c]}
}

// SetCol writes v into the top three components of column c, leaving the
// bottom row untouched.
func (m *Mat4) SetCol(c int, v Vec3) {
	m[c] = v[0]
	m[4+c] = v[1]
	m[8+c] = v[2]
}

// Translation returns column 3, the position part of the transform.
func (m Mat4) Translation() Vec3 {
	return m.Col(3)
}

// Mul returns the matrix product m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[r*4+k] * n[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// MulPoint applies the transform to a point (homogeneous coordinate 1).
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3],
		m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7],
		m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11],
	}
}

// IsAffine reports whether the bottom row is exactly [0 0 0 1].
func (m Mat4) IsAffine() bool {
	return m[12] == 0 && m[13] == 0 && m[14] == 0 && m[15] == 1
}

// Slice returns the matrix as a fresh 16-element slice, row-major.
func (m Mat4) Slice() []float64 {
	out := make([]float64, 16)
	copy(out, m[:])
	return out
}

// Mat4FromSlice rebuilds a Mat4 from a row-major 16-element slice.
// It returns false if the slice is not exactly 16 elements long.
func Mat4FromSlice(s []float64) (Mat4, bool) {
	var m Mat4
	if len(s) != 16 {
		return m, false
	}
	copy(m[:], s)
	return m, true
}

// Mat3 is a 3x3 rotation matrix stored row-major.
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// MulVec applies the rotation to v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Mat4FromRotation embeds a 3x3 rotation and a translation into a full
// homogeneous transform.
func Mat4FromRotation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	}
}
