package geometry

// BuildPlacement assembles a rigid placement transform for a cylindrical
// model from three camera-derived axes and a position.
//
// The axes are placed verbatim: axialNormal becomes column 0 (local X),
// longAxis becomes column 1 (local Y, the model's long axis), and
// sagittalNormal becomes column 2 (local Z). The translation becomes
// column 3 and the bottom row is [0 0 0 1].
//
// No orthonormalization, renormalization, or sign correction is performed.
// Viewport view-plane normals are unit vectors by construction of the
// rendering engine, and any axis negation is a call-site decision. Exact
// column placement is a contract: a transform built here, stored, exported,
// and re-imported must compare equal element for element.
func BuildPlacement(axialNormal, longAxis, sagittalNormal, translation Vec3) Mat4 {
	m := Identity4()
	m.SetCol(0, axialNormal)
	m.SetCol(1, longAxis)
	m.SetCol(2, sagittalNormal)
	m.SetCol(3, translation)
	return m
}

// ApplyLengthOffset shifts the translation column of m by +(length/2) along
// axis, so that the model's centerline midpoint, rather than its base, sits
// at the original translation. A length <= 0 means "no length specified" and
// leaves m unchanged. A zero axis also resolves to a no-op; callers should
// treat that as a misconfigured long axis and log it, since a legitimate
// camera normal is never the zero vector.
func ApplyLengthOffset(m Mat4, axis Vec3, length float64) Mat4 {
	if length <= 0 || axis.IsZero() {
		return m
	}
	m.SetCol(3, m.Translation().Add(axis.Scale(length/2)))
	return m
}

// BuildCenteredPlacement composes BuildPlacement and ApplyLengthOffset: the
// resulting transform places the center of a model of the given length at
// translation, pushed forward half a length along the long axis.
func BuildCenteredPlacement(axialNormal, longAxis, sagittalNormal, translation Vec3, length float64) Mat4 {
	m := BuildPlacement(axialNormal, longAxis, sagittalNormal, translation)
	return ApplyLengthOffset(m, longAxis, length)
}

// ExtendAlong returns the point reached by starting at from and moving `by`
// millimeters along the direction from toward to from (i.e. away from
// toward when by is positive, past toward when negative). This mirrors how
// the planner derives a screw body center from its tip and entry points.
func ExtendAlong(from, toward Vec3, by float64) Vec3 {
	d := from.Sub(toward)
	n := d.Norm()
	if n == 0 {
		return from
	}
	return from.Add(d.Scale(by / n))
}
