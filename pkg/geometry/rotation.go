package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationBetween returns the minimal rotation that carries the direction
// of from onto the direction of to, in Rodrigues form
//
//	R = I + K + K^2 * (1-c)/s^2
//
// where K is the cross-product matrix of from x to, c the cosine and s the
// sine of the angle between them. Inputs are normalized first, so their
// magnitudes do not matter.
//
// Two degenerate cases are handled explicitly: parallel vectors yield the
// identity, and antiparallel vectors (s = 0, c = -1) yield a half-turn
// about an arbitrary axis perpendicular to from.
func RotationBetween(from, to Vec3) Mat3 {
	f := from.Normalize()
	t := to.Normalize()

	v := f.Cross(t)
	c := f.Dot(t)
	s2 := v.Dot(v) // sin^2 of the angle

	if s2 == 0 {
		if c > 0 {
			return Identity3()
		}
		return halfTurn(f)
	}

	k := mat.NewDense(3, 3, []float64{
		0, -v[2], v[1],
		v[2], 0, -v[0],
		-v[1], v[0], 0,
	})

	var k2 mat.Dense
	k2.Mul(k, k)
	k2.Scale((1-c)/s2, &k2)

	var r mat.Dense
	r.Add(eye3(), k)
	r.Add(&r, &k2)

	var out Mat3
	copy(out[:], r.RawMatrix().Data)
	return out
}

func eye3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// halfTurn builds a 180-degree rotation about an axis perpendicular to v.
func halfTurn(v Vec3) Mat3 {
	// Pick the world axis least aligned with v to build a stable
	// perpendicular.
	ref := Vec3{1, 0, 0}
	if math.Abs(v[0]) > math.Abs(v[1]) {
		ref = Vec3{0, 1, 0}
	}
	a := v.Cross(ref).Normalize()

	// R = 2*a*a^T - I for a unit axis a.
	return Mat3{
		2*a[0]*a[0] - 1, 2 * a[0] * a[1], 2 * a[0] * a[2],
		2 * a[1] * a[0], 2*a[1]*a[1] - 1, 2 * a[1] * a[2],
		2 * a[2] * a[0], 2 * a[2] * a[1], 2*a[2]*a[2] - 1,
	}
}
