package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultMaxSnapshots is the store capacity when none is configured.
const DefaultMaxSnapshots = 10

// maxNameAttempts bounds the collision-suffix search before a save is
// rejected outright.
const maxNameAttempts = 1000

// Store is a capacity-bounded, insertion-ordered collection of snapshot
// records keyed by unique name. When an insert would exceed the capacity,
// the record with the oldest timestamp is evicted; the incoming record is
// never the one dropped.
//
// A store is owned by the session that creates it. Methods are safe for
// use from multiple goroutines, but Restore applies camera states one
// viewport at a time and does not roll back on later failures.
type Store struct {
	mu       sync.Mutex
	capacity int
	records  []*Record
	byName   map[string]*Record

	cameras CameraSource
	models  ModelSink
	log     *slog.Logger

	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity sets the maximum number of stored snapshots. Values below 1
// are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.capacity = n
		}
	}
}

// WithModelSink wires the model layer that receives placement transforms on
// restore. Without a sink, restoring a snapshot that carries a transform
// fails with CollaboratorUnavailableError.
func WithModelSink(m ModelSink) Option {
	return func(s *Store) { s.models = m }
}

// WithLogger sets the logger used for eviction, skipped-viewport and
// skipped-import warnings. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// withClock overrides the timestamp source in tests.
func withClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store reading camera state through the given source.
func New(cameras CameraSource, opts ...Option) *Store {
	s := &Store{
		capacity: DefaultMaxSnapshots,
		byName:   make(map[string]*Record),
		cameras:  cameras,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save captures the camera state of every live viewport and stores it as a
// new record together with the implant dimensions and optional placement
// transform. A blank name is auto-generated from the timestamp; a name that
// collides with an existing record gets an incrementing " (n)" suffix
// rather than overwriting. At capacity, the oldest record is evicted first.
//
// The returned record is owned by the store and must not be mutated.
func (s *Store) Save(name string, radius, length float64, transform []float64) (*Record, error) {
	if s.cameras == nil {
		return nil, &CollaboratorUnavailableError{Collaborator: "camera source"}
	}

	// Capture before taking the lock; the camera source is external and
	// may be slow.
	viewports := s.capture()

	now := s.now().UnixMilli()
	if name == "" {
		name = fmt.Sprintf("Snapshot %d", now)
	}

	rec := &Record{
		Name:      name,
		Timestamp: now,
		Radius:    radius,
		Length:    length,
		Transform: append([]float64(nil), transform...),
		Viewports: viewports,
	}
	if rec.Transform == nil {
		rec.Transform = []float64{}
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.insertLocked(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// capture reads every live viewport's camera. Viewports that fail to read
// are skipped with a warning; validation later rejects the save if nothing
// was captured.
func (s *Store) capture() []ViewportState {
	ids := s.cameras.ListViewportIDs()
	viewports := make([]ViewportState, 0, len(ids))
	for _, id := range ids {
		state, err := s.cameras.GetCameraState(id)
		if err != nil {
			s.log.Warn("skipping viewport during capture", "viewport", id, "error", err)
			continue
		}
		// Store compact bytes so the payload compares equal after an
		// export/import cycle. Malformed payloads pass through and
		// fail record validation instead.
		if compacted, err := state.Compact(); err == nil {
			state = compacted
		}
		viewports = append(viewports, ViewportState{ViewportID: id, Camera: state})
	}
	return viewports
}

// insertLocked assigns a unique name, evicts if needed and appends the
// record. Callers hold s.mu.
func (s *Store) insertLocked(rec *Record) error {
	unique, err := s.uniqueNameLocked(rec.Name)
	if err != nil {
		return err
	}
	rec.Name = unique

	if len(s.records) >= s.capacity {
		s.evictOldestLocked()
	}

	s.records = append(s.records, rec)
	s.byName[rec.Name] = rec
	return nil
}

// uniqueNameLocked disambiguates a requested name with an incrementing
// suffix: "base", "base (2)", "base (3)", ...
func (s *Store) uniqueNameLocked(base string) (string, error) {
	if _, taken := s.byName[base]; !taken {
		return base, nil
	}
	for i := 2; i < 2+maxNameAttempts; i++ {
		candidate := fmt.Sprintf("%s (%d)", base, i)
		if _, taken := s.byName[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", &ValidationError{Name: base, Reason: "could not find a unique name"}
}

// evictOldestLocked removes records with the oldest timestamp (earliest
// inserted on ties) until one slot is free.
func (s *Store) evictOldestLocked() {
	for len(s.records) >= s.capacity && len(s.records) > 0 {
		oldest := 0
		for i, rec := range s.records[1:] {
			if rec.Timestamp < s.records[oldest].Timestamp {
				oldest = i + 1
			}
		}
		victim := s.records[oldest]
		s.records = append(s.records[:oldest], s.records[oldest+1:]...)
		delete(s.byName, victim.Name)
		s.log.Info("evicted snapshot at capacity", "name", victim.Name, "timestamp", victim.Timestamp)
	}
}

// Restore looks up a record by name and pushes its camera states back to
// the live viewports, then hands the placement transform (if any) to the
// model sink tagged with the record's name.
//
// Viewports stored in the snapshot but absent from the live layout are
// skipped with a warning. At least one viewport must apply for the restore
// to succeed; otherwise it fails with PartialRestoreError. Camera states
// applied before a later failure are not rolled back.
func (s *Store) Restore(ctx context.Context, name string) error {
	if s.cameras == nil {
		return &CollaboratorUnavailableError{Collaborator: "camera source"}
	}

	s.mu.Lock()
	rec, ok := s.byName[name]
	s.mu.Unlock()
	if !ok {
		return &NotFoundError{Name: name}
	}

	// Fail before touching any viewport if the transform has nowhere to
	// go.
	if len(rec.Transform) > 0 && s.models == nil {
		return &CollaboratorUnavailableError{Collaborator: "model sink"}
	}

	live := make(map[string]bool)
	for _, id := range s.cameras.ListViewportIDs() {
		live[id] = true
	}

	applied := 0
	for _, vp := range rec.Viewports {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !live[vp.ViewportID] {
			s.log.Warn("snapshot viewport not in live layout, skipping", "snapshot", name, "viewport", vp.ViewportID)
			continue
		}
		if err := s.cameras.SetCameraState(vp.ViewportID, vp.Camera); err != nil {
			s.log.Warn("failed to apply camera state, skipping", "snapshot", name, "viewport", vp.ViewportID, "error", err)
			continue
		}
		applied++
	}
	if applied == 0 {
		return &PartialRestoreError{Name: name, Attempted: len(rec.Viewports)}
	}

	if len(rec.Transform) > 0 {
		ok, err := s.models.ApplyTransform(ctx, rec.Name, rec.Transform, rec.Length)
		if err != nil {
			return fmt.Errorf("apply transform for snapshot %q: %w", name, err)
		}
		if !ok {
			s.log.Warn("model sink did not apply transform", "snapshot", name)
		}
	}
	return nil
}

// Delete removes the named record and reports whether it existed.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[name]; !ok {
		return false
	}
	delete(s.byName, name)
	for i, rec := range s.records {
		if rec.Name == name {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return true
}

// ClearAll empties the store.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.byName = make(map[string]*Record)
}

// Get returns the named record, or NotFoundError.
func (s *Store) Get(name string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byName[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return rec, nil
}

// All returns the stored records in insertion order. The slice is a copy;
// the records are shared and must not be mutated.
func (s *Store) All() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// MaxSnapshots returns the configured capacity.
func (s *Store) MaxSnapshots() int {
	return s.capacity
}

// RemainingSlots returns how many more snapshots fit before eviction kicks
// in. Advisory only: saving never fails for lack of space.
func (s *Store) RemainingSlots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if free := s.capacity - len(s.records); free > 0 {
		return free
	}
	return 0
}
