package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUnsupportedFile is returned when a selected file's extension is not
// recognized. The check happens before any read; the session stays at Upload.
var ErrUnsupportedFile = errors.New("unsupported file type: please select a .csv file")

// ErrCommitInFlight is returned when Commit is invoked while a previous
// commit is still outstanding. The duplicate request is dropped, not queued.
var ErrCommitInFlight = errors.New("commit already in progress")

// ErrStaleRead is returned when a file read completes after the session moved
// on (a newer file was selected or the session was reset).
var ErrStaleRead = errors.New("file read superseded by a newer selection")

// ParseError reports that parsing produced no usable table: either the file
// was empty or the content was garbled beyond the header row.
type ParseError struct {
	Warnings int // parser warnings observed, 0 for a genuinely empty file
}

func (e *ParseError) Error() string {
	if e.Warnings > 0 {
		return fmt.Sprintf("file could not be parsed (%d warnings)", e.Warnings)
	}
	return "file is empty or contains no data"
}

// ValidationError reports required target fields not covered by the current
// mapping. It blocks the Map → Preview transition and Commit.
type ValidationError struct {
	MissingLabels []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.MissingLabels, ", ")
}

// StateError reports an action invoked in the wrong session step.
type StateError struct {
	Action string
	Step   Step
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s in step %s", e.Action, e.Step)
}

// CommitError wraps a writer failure. The session stays in Preview so the
// user can retry or go back. Reason carries the most specific diagnostic the
// writer's error exposes.
type CommitError struct {
	Reason string
	Err    error
}

func (e *CommitError) Error() string {
	return "commit failed: " + e.Reason
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// detailedError is satisfied by writer errors that carry structured
// diagnostics alongside the bare message (mirroring the message/details/hint
// shape hosted backends return).
type detailedError interface {
	error
	Detail() string
	Hint() string
}

// newCommitError extracts the best available diagnostic from a writer error.
// Structured fields win over the stringified error: a *pgconn.PgError or any
// detailedError contributes its message, detail and hint.
func newCommitError(err error) *CommitError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &CommitError{Reason: joinDiagnostics(pgErr.Message, pgErr.Detail, pgErr.Hint), Err: err}
	}

	var det detailedError
	if errors.As(err, &det) {
		return &CommitError{Reason: joinDiagnostics(det.Error(), det.Detail(), det.Hint()), Err: err}
	}

	return &CommitError{Reason: err.Error(), Err: err}
}

func joinDiagnostics(message, detail, hint string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{message, detail, hint} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ": ")
}
