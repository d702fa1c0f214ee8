package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// SchemaVersion is written into every export document. Import accepts
// documents of this version and, best-effort, older ones that omit the
// radius/length/transform fields.
const SchemaVersion = 1

// exportDocument is the portable JSON form of a store. Field names are part
// of the on-disk contract and must not change.
type exportDocument struct {
	Snapshots  []*Record `json:"snapshots"`
	ExportedAt string    `json:"exportedAt"`
	Version    int       `json:"version"`
}

// importDocument defers per-entry decoding so one malformed entry cannot
// fail the whole document.
type importDocument struct {
	Snapshots []json.RawMessage `json:"snapshots"`
	Version   int               `json:"version"`
}

// importRecord decodes an entry leniently: radius, length and transform are
// optional for compatibility with exports that predate those fields.
type importRecord struct {
	Name      string          `json:"name"`
	Timestamp int64           `json:"timestamp"`
	Radius    *float64        `json:"radius"`
	Length    *float64        `json:"length"`
	Transform []float64       `json:"transform"`
	Viewports []ViewportState `json:"viewports"`
}

// ExportJSON serializes all records, in insertion order, to the portable
// document format.
func (s *Store) ExportJSON() ([]byte, error) {
	s.mu.Lock()
	records := make([]*Record, len(s.records))
	copy(records, s.records)
	s.mu.Unlock()

	doc := exportDocument{
		Snapshots:  records,
		ExportedAt: s.now().UTC().Format(time.RFC3339Nano),
		Version:    SchemaVersion,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot export: %w", err)
	}
	return data, nil
}

// Import reads an export document and merges its snapshots into the store
// under the same uniqueness and capacity rules as Save, keeping each
// record's original timestamp. The merge is best-effort: entries that fail
// to decode or validate are logged and skipped, and do not undo entries
// already merged. It returns the number of records imported.
func (s *Store) Import(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("reading snapshot import: %w", err)
	}

	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parsing snapshot import: %w", err)
	}
	if doc.Version > SchemaVersion {
		s.log.Warn("import document is newer than this schema, attempting anyway",
			"documentVersion", doc.Version, "schemaVersion", SchemaVersion)
	}

	imported := 0
	for i, raw := range doc.Snapshots {
		rec, err := decodeImportEntry(raw)
		if err != nil {
			s.log.Warn("skipping snapshot during import", "index", i, "error", err)
			continue
		}

		s.mu.Lock()
		err = s.insertLocked(rec)
		s.mu.Unlock()
		if err != nil {
			s.log.Warn("skipping snapshot during import", "index", i, "name", rec.Name, "error", err)
			continue
		}
		imported++
	}
	return imported, nil
}

// ImportFile imports an export document from disk.
func (s *Store) ImportFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening snapshot import: %w", err)
	}
	defer f.Close()
	return s.Import(f)
}

// decodeImportEntry turns one raw document entry into a validated record,
// applying the legacy defaults for missing fields.
func decodeImportEntry(raw json.RawMessage) (*Record, error) {
	var entry importRecord
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decoding entry: %w", err)
	}

	rec := &Record{
		Name:      entry.Name,
		Timestamp: entry.Timestamp,
		Transform: entry.Transform,
		Viewports: entry.Viewports,
	}
	if entry.Radius != nil {
		rec.Radius = *entry.Radius
	}
	if entry.Length != nil {
		rec.Length = *entry.Length
	}
	if rec.Transform == nil {
		rec.Transform = []float64{}
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
