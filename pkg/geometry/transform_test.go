package geometry

import (
	"math"
	"testing"
)

// TestBuildPlacementColumnOrder verifies the exact column placement
// contract: axes land in columns 0-2 untouched, translation in column 3,
// affine bottom row.
func TestBuildPlacementColumnOrder(t *testing.T) {
	m := BuildPlacement(V(1, 0, 0), V(0, 1, 0), V(0, 0, 1), V(5, 6, 7))

	expected := Mat4{
		1, 0, 0, 5,
		0, 1, 0, 6,
		0, 0, 1, 7,
		0, 0, 0, 1,
	}

	for i := range expected {
		if m[i] != expected[i] {
			t.Errorf("element %d: expected %v, got %v", i, expected[i], m[i])
		}
	}
}

// TestBuildPlacementNoNormalization ensures the builder does not repair
// non-unit or non-orthogonal axes; it must place them verbatim.
func TestBuildPlacementNoNormalization(t *testing.T) {
	ax := V(2, 0, 0)
	long := V(0, 3, 0)
	sag := V(0.5, 0.5, 0.5)

	m := BuildPlacement(ax, long, sag, V(0, 0, 0))

	if m.Col(0) != ax {
		t.Errorf("column 0 altered: got %v", m.Col(0))
	}
	if m.Col(1) != long {
		t.Errorf("column 1 altered: got %v", m.Col(1))
	}
	if m.Col(2) != sag {
		t.Errorf("column 2 altered: got %v", m.Col(2))
	}
}

// TestApplyLengthOffsetDirection checks that the offset pushes the
// translation forward by exactly length/2 along the long axis and leaves
// the rotation columns alone.
func TestApplyLengthOffsetDirection(t *testing.T) {
	base := BuildPlacement(V(0, 0, 1), V(0, 1, 0), V(1, 0, 0), V(0, 0, 0))
	shifted := ApplyLengthOffset(base, V(0, 1, 0), 40)

	want := V(0, 20, 0)
	if shifted.Translation() != want {
		t.Errorf("expected translation %v, got %v", want, shifted.Translation())
	}

	for c := 0; c < 3; c++ {
		if shifted.Col(c) != base.Col(c) {
			t.Errorf("column %d changed by length offset: %v vs %v", c, shifted.Col(c), base.Col(c))
		}
	}
}

// TestApplyLengthOffsetNoOp verifies the documented no-op cases: missing
// length and zero axis.
func TestApplyLengthOffsetNoOp(t *testing.T) {
	base := BuildPlacement(V(1, 0, 0), V(0, 1, 0), V(0, 0, 1), V(3, 4, 5))

	if got := ApplyLengthOffset(base, V(0, 1, 0), 0); got != base {
		t.Errorf("zero length should not move the transform")
	}
	if got := ApplyLengthOffset(base, V(0, 1, 0), -10); got != base {
		t.Errorf("negative length should not move the transform")
	}
	if got := ApplyLengthOffset(base, V(0, 0, 0), 40); got != base {
		t.Errorf("zero axis should not move the transform")
	}
}

// TestBuildCenteredPlacement checks the composition against the two-step
// construction.
func TestBuildCenteredPlacement(t *testing.T) {
	ax, long, sag := V(0, 0, 1), V(0, -1, 0), V(1, 0, 0)
	at := V(10, 20, 30)

	composed := BuildCenteredPlacement(ax, long, sag, at, 30)
	manual := ApplyLengthOffset(BuildPlacement(ax, long, sag, at), long, 30)

	if composed != manual {
		t.Errorf("composed placement differs from manual construction:\n%v\n%v", composed, manual)
	}

	// -Y long axis pushes the center down by length/2.
	want := V(10, 5, 30)
	if composed.Translation() != want {
		t.Errorf("expected translation %v, got %v", want, composed.Translation())
	}
}

// TestExtendAlong verifies the tip-to-body-center construction used for
// screw placement.
func TestExtendAlong(t *testing.T) {
	tip := V(0, 0, 0)
	entry := V(0, 10, 0)

	// Positive distance moves away from entry, negative toward and past
	// the tip in the entry direction.
	away := ExtendAlong(tip, entry, 5)
	if away != V(0, -5, 0) {
		t.Errorf("expected [0 -5 0], got %v", away)
	}

	center := ExtendAlong(tip, entry, -15)
	if center != V(0, 15, 0) {
		t.Errorf("expected [0 15 0], got %v", center)
	}

	// Coincident points cannot define a direction.
	if got := ExtendAlong(tip, tip, 5); got != tip {
		t.Errorf("coincident points should return the start point, got %v", got)
	}
}

// TestMat4Roundtrip covers slice conversion and point application.
func TestMat4Roundtrip(t *testing.T) {
	m := BuildCenteredPlacement(V(0, 0, 1), V(0, 1, 0), V(1, 0, 0), V(1, 2, 3), 10)

	back, ok := Mat4FromSlice(m.Slice())
	if !ok {
		t.Fatalf("16-element slice rejected")
	}
	if back != m {
		t.Errorf("slice round trip changed the matrix")
	}

	if _, ok := Mat4FromSlice(make([]float64, 12)); ok {
		t.Errorf("12-element slice accepted")
	}

	// Identity maps points to themselves.
	p := V(7, -2, 4.5)
	if got := Identity4().MulPoint(p); got != p {
		t.Errorf("identity moved %v to %v", p, got)
	}
}

// TestMat4Mul multiplies a rotation by its transpose and expects identity.
func TestMat4Mul(t *testing.T) {
	r := RotationBetween(V(0, 0, 1), V(1, 1, 0))
	m := Mat4FromRotation(r, V(0, 0, 0))

	// Transpose of the rotation block.
	var rt Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rt[i*3+j] = r[j*3+i]
		}
	}
	mt := Mat4FromRotation(rt, V(0, 0, 0))

	prod := m.Mul(mt)
	id := Identity4()
	for i := range prod {
		if math.Abs(prod[i]-id[i]) > 1e-12 {
			t.Errorf("element %d: expected %v, got %v", i, id[i], prod[i])
		}
	}
}
