package snapshot

import "fmt"

// The store reports failures as typed error values so UI layers can tell
// "nothing to restore" apart from "partially restored" or "host not ready".
// Use errors.Is with the sentinel values below, or errors.As to get at the
// fields.
var (
	// ErrNotFound matches any NotFoundError.
	ErrNotFound = &NotFoundError{}

	// ErrValidation matches any ValidationError.
	ErrValidation = &ValidationError{}

	// ErrPartialRestore matches any PartialRestoreError.
	ErrPartialRestore = &PartialRestoreError{}

	// ErrCollaboratorUnavailable matches any CollaboratorUnavailableError.
	ErrCollaboratorUnavailable = &CollaboratorUnavailableError{}
)

// NotFoundError reports an operation that referenced a snapshot name not
// present in the store.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return "snapshot not found"
	}
	return fmt.Sprintf("snapshot %q not found", e.Name)
}

// Is makes every NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ValidationError reports a record that violates a store invariant, on save
// or during import.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid snapshot: %s", e.Reason)
	}
	return fmt.Sprintf("invalid snapshot %q: %s", e.Name, e.Reason)
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// PartialRestoreError reports that a restore found the record but could not
// apply camera state to a single viewport: every target viewport was missing
// from the live layout or rejected the update. Restores that update at least
// one viewport succeed and do not produce this error.
type PartialRestoreError struct {
	Name      string
	Attempted int
}

func (e *PartialRestoreError) Error() string {
	return fmt.Sprintf("restore of snapshot %q applied no viewports (%d attempted)", e.Name, e.Attempted)
}

// Is makes every PartialRestoreError match ErrPartialRestore.
func (e *PartialRestoreError) Is(target error) bool {
	_, ok := target.(*PartialRestoreError)
	return ok
}

// CollaboratorUnavailableError reports that a required collaborator (camera
// source or model sink) is not wired up. The operation aborts before any
// state is touched.
type CollaboratorUnavailableError struct {
	Collaborator string
}

func (e *CollaboratorUnavailableError) Error() string {
	if e.Collaborator == "" {
		return "collaborator unavailable"
	}
	return fmt.Sprintf("%s unavailable", e.Collaborator)
}

// Is makes every CollaboratorUnavailableError match ErrCollaboratorUnavailable.
func (e *CollaboratorUnavailableError) Is(target error) bool {
	_, ok := target.(*CollaboratorUnavailableError)
	return ok
}
