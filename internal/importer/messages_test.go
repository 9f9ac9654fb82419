package importer

import (
	"errors"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "unsupported file type",
			err:         ErrUnsupportedFile,
			wantCode:    "FILE001",
			wantMessage: "This file type is not supported",
		},
		{
			name:        "empty file",
			err:         &ParseError{},
			wantCode:    "FILE002",
			wantMessage: "The selected file contains no data",
		},
		{
			name:        "garbled file",
			err:         &ParseError{Warnings: 3},
			wantCode:    "FILE003",
			wantMessage: "The file could not be read as CSV",
		},
		{
			name:        "stale read",
			err:         ErrStaleRead,
			wantCode:    "FILE004",
			wantMessage: "A newer file was selected before this one finished loading",
		},
		{
			name:        "missing required fields",
			err:         &ValidationError{MissingLabels: []string{"Employee"}},
			wantCode:    "VAL001",
			wantMessage: "Some required fields are not mapped to a column",
		},
		{
			name:        "duplicate key wins over generic commit failure",
			err:         &CommitError{Reason: "duplicate key value violates unique constraint"},
			wantCode:    "CMT001",
			wantMessage: "A record with the same key already exists",
		},
		{
			name:        "commit in flight",
			err:         ErrCommitInFlight,
			wantCode:    "CMT002",
			wantMessage: "This import is already being submitted",
		},
		{
			name:        "commit timeout",
			err:         &CommitError{Reason: "context deadline exceeded"},
			wantCode:    "CMT003",
			wantMessage: "Submitting the records timed out",
		},
		{
			name:        "generic commit failure",
			err:         &CommitError{Reason: "connection refused"},
			wantCode:    "CMT004",
			wantMessage: "The records could not be saved",
		},
		{
			name:        "too many sessions",
			err:         errors.New("too many import sessions (limit 100)"),
			wantCode:    "SES001",
			wantMessage: "Too many imports are open right now",
		},
		{
			name:        "session not found",
			err:         errors.New("session not found: abc"),
			wantCode:    "SES002",
			wantMessage: "This import session has expired",
		},
		{
			name:        "wrong step",
			err:         &StateError{Action: "commit", Step: StepMap},
			wantCode:    "SES003",
			wantMessage: "That action is not available at this step",
		},
		{
			name:        "unknown error falls back",
			err:         errors.New("something odd"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrUnsupportedFile)
	want := "This file type is not supported (Code: FILE001). Please select a .csv file"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}
