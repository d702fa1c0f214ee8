package snapshot

import (
	"context"
	"fmt"

	"screwplanner/pkg/geometry"
)

// CameraSource reads and writes per-viewport camera parameters. It is owned
// by the rendering engine; the store only calls through this interface and
// never assumes exclusive ownership of the underlying viewports.
type CameraSource interface {
	// GetCameraState returns the serialized camera of a live viewport.
	GetCameraState(viewportID string) (CameraState, error)

	// SetCameraState applies a previously captured camera to a live
	// viewport.
	SetCameraState(viewportID string, state CameraState) error

	// ListViewportIDs returns the identifiers of the currently live
	// viewports.
	ListViewportIDs() []string
}

// ReferencePointSource exposes the crosshair (or tracked instrument)
// position used as the placement anchor.
type ReferencePointSource interface {
	// ReferencePoint returns the current reference point and whether the
	// source is active. The point is meaningless when active is false.
	ReferencePoint() (geometry.Vec3, bool)

	// ClearCache discards any cached position so the next read reflects
	// live state.
	ClearCache()
}

// ModelSink applies placement transforms to rendered 3D models. The modelID
// passed by the store is the owning snapshot's name, so downstream cleanup
// is an exact-key lookup rather than name-pattern matching.
type ModelSink interface {
	ApplyTransform(ctx context.Context, modelID string, transform []float64, length float64) (applied bool, err error)
}

// MapCameraSource is an in-memory CameraSource backed by a map. It stands
// in for the rendering engine in tests and in the demo binary; production
// callers wire the real engine adapter instead.
type MapCameraSource struct {
	order  []string
	states map[string]CameraState
}

// NewMapCameraSource creates a source with the given viewports, each
// starting with an empty JSON object as its camera state.
func NewMapCameraSource(viewportIDs ...string) *MapCameraSource {
	s := &MapCameraSource{states: make(map[string]CameraState, len(viewportIDs))}
	for _, id := range viewportIDs {
		s.order = append(s.order, id)
		s.states[id] = CameraState(`{}`)
	}
	return s
}

// GetCameraState implements CameraSource.
func (s *MapCameraSource) GetCameraState(viewportID string) (CameraState, error) {
	state, ok := s.states[viewportID]
	if !ok {
		return nil, fmt.Errorf("viewport %q is not live", viewportID)
	}
	return state.Clone(), nil
}

// SetCameraState implements CameraSource.
func (s *MapCameraSource) SetCameraState(viewportID string, state CameraState) error {
	if _, ok := s.states[viewportID]; !ok {
		return fmt.Errorf("viewport %q is not live", viewportID)
	}
	s.states[viewportID] = state.Clone()
	return nil
}

// ListViewportIDs implements CameraSource, preserving creation order.
func (s *MapCameraSource) ListViewportIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Remove drops a viewport from the live set, simulating a layout change.
func (s *MapCameraSource) Remove(viewportID string) {
	delete(s.states, viewportID)
	for i, id := range s.order {
		if id == viewportID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
