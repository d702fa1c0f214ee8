package geometry

import (
	"math"
	"testing"
)

// TestRotationBetweenAligns checks that the rotation carries the source
// direction onto the target for a spread of vector pairs.
func TestRotationBetweenAligns(t *testing.T) {
	cases := []struct {
		name     string
		from, to Vec3
	}{
		{"quarter turn", V(0, 0, 1), V(1, 0, 0)},
		{"oblique", V(0, -1, 0), V(1, 2, 2)},
		{"non-unit inputs", V(0, 0, 3), V(0, 5, 0)},
		{"small angle", V(0, 0, 1), V(0.01, 0, 1)},
	}

	for _, tc := range cases {
		r := RotationBetween(tc.from, tc.to)
		got := r.MulVec(tc.from.Normalize())
		want := tc.to.Normalize()

		if !vecsClose(got, want, 1e-12) {
			t.Errorf("%s: expected %v, got %v", tc.name, want, got)
		}
	}
}

// TestRotationBetweenParallel expects the identity for already aligned
// vectors.
func TestRotationBetweenParallel(t *testing.T) {
	r := RotationBetween(V(0, 2, 0), V(0, 7, 0))
	if r != Identity3() {
		t.Errorf("expected identity, got %v", r)
	}
}

// TestRotationBetweenAntiparallel handles the 180-degree case, where the
// rotation axis is ambiguous but the result must still flip the vector.
func TestRotationBetweenAntiparallel(t *testing.T) {
	for _, from := range []Vec3{{0, 0, 1}, {1, 0, 0}, {0, -1, 0}, {1, 1, 1}} {
		r := RotationBetween(from, from.Neg())
		got := r.MulVec(from.Normalize())
		want := from.Normalize().Neg()

		if !vecsClose(got, want, 1e-12) {
			t.Errorf("from %v: expected %v, got %v", from, want, got)
		}
	}
}

// TestRotationBetweenIsOrthonormal verifies the result is a proper rotation:
// rows are orthonormal and the determinant is +1.
func TestRotationBetweenIsOrthonormal(t *testing.T) {
	r := RotationBetween(V(0, -1, 0), V(3, 1, -2))

	rows := [3]Vec3{
		{r[0], r[1], r[2]},
		{r[3], r[4], r[5]},
		{r[6], r[7], r[8]},
	}
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if got := rows[i].Dot(rows[j]); math.Abs(got-want) > 1e-12 {
				t.Errorf("rows %d.%d: expected dot %v, got %v", i, j, want, got)
			}
		}
	}

	det := rows[0].Dot(rows[1].Cross(rows[2]))
	if math.Abs(det-1) > 1e-12 {
		t.Errorf("expected determinant 1, got %v", det)
	}
}
