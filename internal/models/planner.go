package models

import (
	"fmt"

	"screwplanner/pkg/geometry"
)

// Canonical viewport identifiers of the three orthogonal 2D views. These
// match the MPR viewport IDs used by the viewer, so snapshots exported here
// restore against the same layout on the viewer side.
const (
	ViewportAxial    = "mpr-axial"
	ViewportSagittal = "mpr-sagittal"
	ViewportCoronal  = "mpr-coronal"
)

// DefaultViewportIDs returns the standard three-viewport layout in display
// order.
func DefaultViewportIDs() []string {
	return []string{ViewportAxial, ViewportSagittal, ViewportCoronal}
}

// ScrewSpec describes the cylindrical implant a placement transform is
// built for.
type ScrewSpec struct {
	// Name identifies the screw; it doubles as the owner tag handed to
	// the model layer so cleanup is an exact-key lookup.
	Name string

	// Radius is the screw body radius in mm. Zero means unspecified.
	Radius float64

	// Length is the screw body length in mm. Zero means unspecified.
	Length float64
}

// Validate checks the dimensional invariants. Defaulting of out-of-range
// user input is a UI concern; this layer only refuses negatives.
func (s ScrewSpec) Validate() error {
	if s.Radius < 0 {
		return fmt.Errorf("screw %q: radius must be non-negative, got %v", s.Name, s.Radius)
	}
	if s.Length < 0 {
		return fmt.Errorf("screw %q: length must be non-negative, got %v", s.Name, s.Length)
	}
	return nil
}

// TrackingSample is one position/orientation reading from a tracking
// device (or its simulator).
type TrackingSample struct {
	// Position is the tracked point in patient coordinates (mm).
	Position geometry.Vec3

	// Orientation is the instrument direction as a unit vector.
	Orientation geometry.Vec3

	// Timestamp is seconds since the Unix epoch at sampling time.
	Timestamp float64

	// FrameID increments with each sample at the nominal sample rate.
	FrameID int
}
