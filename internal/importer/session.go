package importer

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shiftlog/importer/internal/tabular"
)

// Step identifies where a session is in the import flow.
type Step string

const (
	StepUpload  Step = "upload"
	StepMap     Step = "map"
	StepPreview Step = "preview"
)

// supportedExtensions lists the file extensions accepted before a read is
// attempted. The check is advisory: it guards against obviously wrong picks,
// it does not guarantee the content is well-formed CSV.
var supportedExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// Session is one import flow: Upload → Map → Preview → commit. All state
// lives in the session; concurrent imports are independent sessions. Methods
// are safe for concurrent use.
type Session struct {
	id     string
	target string
	defs   []ColumnDefinition

	mu         sync.Mutex
	step       Step
	fileName   string
	table      tabular.RawTable
	warnings   []tabular.Warning
	mapping    []ColumnMapping
	committing bool
	readToken  uint64
}

// NewSession creates a fresh session at the Upload step for the given
// destination target and schema.
func NewSession(id, target string, defs []ColumnDefinition) *Session {
	return &Session{
		id:     id,
		target: target,
		defs:   defs,
		step:   StepUpload,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Target returns the destination the committer writes to.
func (s *Session) Target() string { return s.target }

// Definitions returns the target schema for this session.
func (s *Session) Definitions() []ColumnDefinition { return s.defs }

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// BeginRead validates the file name and issues a read token. Selecting a
// second file before the first read completes issues a newer token; the
// older read's result is discarded when it arrives (AttachFile rejects it).
func (s *Session) BeginRead(fileName string) (uint64, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !supportedExtensions[ext] {
		return 0, ErrUnsupportedFile
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepUpload {
		return 0, &StateError{Action: "select a file", Step: s.step}
	}
	s.readToken++
	s.fileName = fileName
	return s.readToken, nil
}

// AttachFile delivers the content of a completed read. Stale tokens are
// dropped with ErrStaleRead. An empty or garbled file yields a *ParseError
// and leaves the session at Upload; otherwise the table is stored, the
// mapping is auto-proposed, and the session advances to Map.
func (s *Session) AttachFile(token uint64, text string) error {
	outcome := tabular.Parse(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.readToken || s.step != StepUpload {
		return ErrStaleRead
	}
	if outcome.Table.Empty() {
		return &ParseError{Warnings: len(outcome.Warnings)}
	}

	s.table = outcome.Table
	s.warnings = outcome.Warnings
	s.mapping = AutoMap(outcome.Table.Headers, s.defs)
	s.step = StepMap
	return nil
}

// Mapping returns a copy of the current column mapping.
func (s *Session) Mapping() []ColumnMapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ColumnMapping, len(s.mapping))
	copy(out, s.mapping)
	return out
}

// SetMapping points sourceColumn at targetKey (empty = skip). Only valid in
// the Map step.
func (s *Session) SetMapping(sourceColumn, targetKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepMap {
		return &StateError{Action: "edit the mapping", Step: s.step}
	}
	s.mapping = UpdateMapping(s.mapping, sourceColumn, targetKey)
	return nil
}

// Table returns the parsed table.
func (s *Session) Table() tabular.RawTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}

// Warnings returns the parser diagnostics for the attached file.
func (s *Session) Warnings() []tabular.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warnings
}

// FileName returns the name of the attached file.
func (s *Session) FileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileName
}

// Preview advances Map → Preview. The transition is refused with a
// *ValidationError while any required field is unmapped; the UI disables the
// action too, but the session re-checks regardless.
func (s *Session) Preview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepMap {
		return &StateError{Action: "preview", Step: s.step}
	}
	if labels := MissingRequiredLabels(s.defs, s.mapping); len(labels) > 0 {
		return &ValidationError{MissingLabels: labels}
	}
	s.step = StepPreview
	return nil
}

// PreviewRecords materializes the records that a commit would submit.
func (s *Session) PreviewRecords() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Materialize(s.table, s.mapping, s.defs)
}

// Back steps backward: Preview → Map keeps the mapping so edits persist;
// Map → Upload discards file, table and mapping entirely.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.step {
	case StepPreview:
		s.step = StepMap
		return nil
	case StepMap:
		s.resetLocked()
		return nil
	default:
		return &StateError{Action: "go back", Step: s.step}
	}
}

// Reset returns the session to a fresh Upload step regardless of where it
// is, discarding all file and mapping state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// resetLocked clears session state. Advancing the read token invalidates any
// read that started before the reset, so it cannot deliver into the new
// lifecycle.
func (s *Session) resetLocked() {
	s.step = StepUpload
	s.fileName = ""
	s.table = tabular.RawTable{}
	s.warnings = nil
	s.mapping = nil
	s.readToken++
}

// Commit materializes and submits the batch through the writer. Exactly one
// commit may be in flight: concurrent calls return ErrCommitInFlight and the
// writer is invoked once per accepted request. On success the session resets
// to a fresh Upload and the count of submitted records is returned. On
// failure the session remains in Preview so the user can retry or go back.
func (s *Session) Commit(ctx context.Context, writer RecordWriter) (int, error) {
	s.mu.Lock()
	if s.step != StepPreview {
		s.mu.Unlock()
		return 0, &StateError{Action: "commit", Step: s.step}
	}
	if s.committing {
		s.mu.Unlock()
		return 0, ErrCommitInFlight
	}
	if labels := MissingRequiredLabels(s.defs, s.mapping); len(labels) > 0 {
		s.mu.Unlock()
		return 0, &ValidationError{MissingLabels: labels}
	}
	s.committing = true
	records := Materialize(s.table, s.mapping, s.defs)
	target := s.target
	s.mu.Unlock()

	count, err := Commit(ctx, target, records, writer)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.committing = false
	if err != nil {
		return 0, err
	}
	s.resetLocked()
	return count, nil
}
