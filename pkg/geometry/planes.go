package geometry

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Plane is a slice plane given by its unit normal and any point on it,
// typically a viewport's view-plane normal and camera focal point.
type Plane struct {
	Normal Vec3
	Point  Vec3
}

// PlaneFromTransform extracts a slice plane from a slice-to-patient
// transform: the plane normal is column 2 and the plane point is the
// translation column.
func PlaneFromTransform(m Mat4) Plane {
	return Plane{Normal: m.Col(2), Point: m.Translation()}
}

// ErrNoIntersection is returned when the three slice planes do not meet in
// a single point, which happens when two of them are parallel.
var ErrNoIntersection = errors.New("geometry: slice planes do not intersect in a point")

// PlaneIntersection solves for the single point shared by three slice
// planes (the crosshair position of an axial/sagittal/coronal trio). Each
// plane contributes one linear equation n.x = n.p; the 3x3 system is solved
// with gonum. The planes' offsets need not coincide with any viewport's
// focal point, which is exactly why the solve is needed instead of reading
// a camera position directly.
func PlaneIntersection(planes [3]Plane) (Vec3, error) {
	a := mat.NewDense(3, 3, nil)
	b := mat.NewVecDense(3, nil)
	for i, p := range planes {
		a.Set(i, 0, p.Normal[0])
		a.Set(i, 1, p.Normal[1])
		a.Set(i, 2, p.Normal[2])
		b.SetVec(i, p.Normal.Dot(p.Point))
	}

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Vec3{}, fmt.Errorf("%w: %v", ErrNoIntersection, err)
	}
	return Vec3{x.AtVec(0), x.AtVec(1), x.AtVec(2)}, nil
}

// CameraPosition places a camera along the view-plane normal at the given
// distance from the focal point, looking back toward it.
func CameraPosition(focal, viewNormal Vec3, distance float64) Vec3 {
	return focal.Add(viewNormal.Scale(distance))
}

// InPlaneVector computes the second in-plane basis vector of a viewport,
// perpendicular to both the view up and the view-plane normal. It returns
// an error when the inputs are parallel or zero, since the cross product
// then has no direction to normalize.
func InPlaneVector(viewUp, viewNormal Vec3) (Vec3, error) {
	v := viewUp.Cross(viewNormal)
	n := v.Norm()
	if n == 0 {
		return Vec3{}, errors.New("geometry: view up and view normal are collinear")
	}
	return v.Scale(1 / n), nil
}

// rasLPS flips the first two axes: RAS (right/anterior/superior) and LPS
// (left/posterior/superior) differ only in the sign of X and Y.
var rasLPS = Mat4{
	-1, 0, 0, 0,
	0, -1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// RASToLPS re-expresses a patient-space transform from RAS coordinates
// (the planner's native frame) in LPS coordinates (the DICOM frame used by
// the viewer).
func RASToLPS(m Mat4) Mat4 {
	return rasLPS.Mul(m)
}

// LPSToRAS is the inverse of RASToLPS. The axis flip is an involution, so
// the same matrix applies.
func LPSToRAS(m Mat4) Mat4 {
	return rasLPS.Mul(m)
}
