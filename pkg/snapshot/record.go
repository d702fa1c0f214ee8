// Package snapshot implements a capacity-bounded, name-keyed store of
// viewport snapshots: per-viewport camera state captured at save time,
// together with implant dimensions and an optional 4x4 placement transform.
// Snapshots can be restored against the live viewport layout and exported
// to or imported from a portable JSON document.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
)

// CameraState is an opaque camera payload owned by the rendering engine.
// This package never interprets its contents: field names, field order and
// number literals pass through storage and the export format untouched.
// Payloads are held in compact form (insignificant whitespace stripped on
// intake) so that stored bytes compare equal across an export/import cycle
// regardless of document indentation.
type CameraState json.RawMessage

// MarshalJSON emits the stored bytes unchanged.
func (c CameraState) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

// UnmarshalJSON stores the payload in compact form. Field order and number
// literals are preserved; only insignificant whitespace is dropped.
func (c *CameraState) UnmarshalJSON(data []byte) error {
	if c == nil {
		return errors.New("snapshot: UnmarshalJSON on nil CameraState")
	}
	compacted, err := CameraState(data).Compact()
	if err != nil {
		// Keep the bytes as-is; record validation reports the
		// malformed payload with the viewport it belongs to.
		*c = append((*c)[:0], data...)
		return nil
	}
	*c = compacted
	return nil
}

// Compact returns the payload with insignificant whitespace removed. It
// fails only on malformed JSON.
func (c CameraState) Compact() (CameraState, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, c); err != nil {
		return nil, err
	}
	return CameraState(buf.Bytes()), nil
}

// Clone returns an independent copy of the payload.
func (c CameraState) Clone() CameraState {
	if c == nil {
		return nil
	}
	out := make(CameraState, len(c))
	copy(out, c)
	return out
}

// Valid reports whether the payload is well-formed JSON. Empty payloads are
// invalid: a captured camera always has some serialized form.
func (c CameraState) Valid() bool {
	return len(c) > 0 && json.Valid(c)
}

// ViewportState pairs a viewport identifier with the camera state it had at
// capture time.
type ViewportState struct {
	ViewportID string      `json:"viewportId"`
	Camera     CameraState `json:"camera"`
}

// Record is one stored snapshot. Records are created only by Store.Save or
// import, and are never mutated afterwards; restore and export only read
// them.
type Record struct {
	// Name uniquely identifies the record within its store.
	Name string `json:"name"`

	// Timestamp is the creation time in milliseconds since the Unix
	// epoch. Eviction order is oldest-timestamp-first.
	Timestamp int64 `json:"timestamp"`

	// Radius and Length are implant dimensions in mm; zero means
	// unspecified.
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`

	// Transform is a row-major 4x4 placement matrix, either empty (no
	// placement computed) or exactly 16 elements with an affine bottom
	// row.
	Transform []float64 `json:"transform"`

	// Viewports holds the captured camera state of every tracked
	// viewport, in capture order. Never empty for a stored record.
	Viewports []ViewportState `json:"viewports"`
}

// Validate checks the record invariants. It is called on save and on every
// imported entry.
func (r *Record) Validate() error {
	if r.Name == "" {
		return &ValidationError{Reason: "name is empty"}
	}
	if r.Radius < 0 {
		return &ValidationError{Name: r.Name, Reason: "radius is negative"}
	}
	if r.Length < 0 {
		return &ValidationError{Name: r.Name, Reason: "length is negative"}
	}
	if err := ValidateTransform(r.Transform); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Name = r.Name
		}
		return err
	}
	if len(r.Viewports) == 0 {
		return &ValidationError{Name: r.Name, Reason: "no viewport states"}
	}
	for _, vp := range r.Viewports {
		if vp.ViewportID == "" {
			return &ValidationError{Name: r.Name, Reason: "viewport state without viewport id"}
		}
		if !vp.Camera.Valid() {
			return &ValidationError{Name: r.Name, Reason: "viewport " + vp.ViewportID + " has malformed camera state"}
		}
	}
	return nil
}

// ValidateTransform checks the transform shape: either empty (no placement)
// or a row-major 4x4 with bottom row [0 0 0 1].
func ValidateTransform(t []float64) error {
	switch len(t) {
	case 0:
		return nil
	case 16:
		if t[12] != 0 || t[13] != 0 || t[14] != 0 || t[15] != 1 {
			return &ValidationError{Reason: "transform bottom row is not [0 0 0 1]"}
		}
		return nil
	default:
		return &ValidationError{Reason: "transform must have 0 or 16 elements"}
	}
}
