// Package importer implements the tabular import pipeline: column mapping,
// type coercion, required-field validation, the three-step import session,
// and record materialization/commit through an external writer.
//
// This package has no HTTP or database dependencies beyond the RecordWriter
// interface; any frontend can drive it.
package importer

import "context"

// ColumnDefinition describes one target schema field. Supplied by the caller
// and immutable for the life of a session.
type ColumnDefinition struct {
	Key      string // unique target field identifier
	Label    string // display name, used in user-facing messages
	Required bool   // mapping must cover this field before preview/commit

	// KeepText disables numeric coercion for this field so values like zip
	// codes keep their leading zeros. Default false preserves the standard
	// heuristic.
	KeepText bool
}

// ColumnMapping assigns one source column to a target field. An empty
// TargetKey means "skip this column". There is exactly one entry per source
// header, in header order. Nothing prevents two source columns from mapping
// to the same target key; during materialization the later entry wins.
type ColumnMapping struct {
	SourceColumn string `json:"sourceColumn"`
	TargetKey    string `json:"targetKey"`
}

// Record is one materialized row: target key to coerced value. Values are
// nil, float64, or string.
type Record map[string]any

// RecordWriter is the external persistence contract. The pipeline hands the
// writer the full batch in one call and has no knowledge of how records are
// stored. A writer that applies part of the batch before failing is
// responsible for reporting that itself.
type RecordWriter interface {
	Write(ctx context.Context, target string, records []Record) error
}

// WriterFunc adapts a function to the RecordWriter interface.
type WriterFunc func(ctx context.Context, target string, records []Record) error

func (f WriterFunc) Write(ctx context.Context, target string, records []Record) error {
	return f(ctx, target, records)
}
