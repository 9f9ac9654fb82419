// messages.go maps technical errors to user-friendly messages with codes for
// support reference. Patterns are matched case-insensitively with
// strings.Contains; the first match wins, so specific patterns come before
// general ones.
//
// Code ranges:
//
//	FILE001-FILE099  file selection and parsing
//	VAL001-VAL099    mapping validation
//	CMT001-CMT099    commit / writer failures
//	SES001-SES099    session lifecycle
package importer

import (
	"fmt"
	"strings"
)

// UserMessage is user-facing error information with actionable guidance.
type UserMessage struct {
	Message string // what happened
	Action  string // what to do about it
	Code    string // support reference code
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File selection and parsing (FILE001-FILE004)
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Please select a .csv file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "file is empty",
		msg: UserMessage{
			Message: "The selected file contains no data",
			Action:  "Please select a CSV file with a header row and data rows",
			Code:    "FILE002",
		},
	},
	{
		pattern: "could not be parsed",
		msg: UserMessage{
			Message: "The file could not be read as CSV",
			Action:  "Check for unbalanced quotes or export the file again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "file read superseded",
		msg: UserMessage{
			Message: "A newer file was selected before this one finished loading",
			Action:  "No action needed; the most recent selection is in use",
			Code:    "FILE004",
		},
	},

	// Mapping validation (VAL001)
	{
		pattern: "missing required fields",
		msg: UserMessage{
			Message: "Some required fields are not mapped to a column",
			Action:  "Assign a source column to each required field before previewing",
			Code:    "VAL001",
		},
	},

	// Commit failures (CMT001-CMT004)
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with the same key already exists",
			Action:  "Remove duplicate rows from the file and try again",
			Code:    "CMT001",
		},
	},
	{
		pattern: "commit already in progress",
		msg: UserMessage{
			Message: "This import is already being submitted",
			Action:  "Wait for the current submission to finish",
			Code:    "CMT002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Submitting the records timed out",
			Action:  "Try again, or split the file into smaller pieces",
			Code:    "CMT003",
		},
	},
	{
		pattern: "commit failed",
		msg: UserMessage{
			Message: "The records could not be saved",
			Action:  "Review the details and try again; your preview is unchanged",
			Code:    "CMT004",
		},
	},

	// Session lifecycle (SES001-SES003)
	{
		pattern: "too many import sessions",
		msg: UserMessage{
			Message: "Too many imports are open right now",
			Action:  "Close an open import or wait a moment and try again",
			Code:    "SES001",
		},
	},
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "This import session has expired",
			Action:  "Start a new import",
			Code:    "SES002",
		},
	},
	{
		pattern: "cannot ",
		msg: UserMessage{
			Message: "That action is not available at this step",
			Action:  "Use the Back button to change earlier choices",
			Code:    "SES003",
		},
	},
}

// defaultMessage is the ERR000 fallback when no pattern matches. Support
// staff should check the logs for the original technical error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. The first
// matching pattern wins; unmatched errors fall back to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders an error as "Message (Code: XXX). Action" for
// display.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
