// Package tabular tokenizes raw delimited text into a header row and data
// rows of string cells. It is deliberately forgiving: malformed content never
// produces an error, it produces a best-effort table plus warnings the caller
// can surface.
package tabular

import (
	"fmt"
	"strings"
)

// WarningKind classifies a parser diagnostic.
type WarningKind string

const (
	// WarnUnterminatedQuote means a line ended while still inside a quoted
	// cell. The cell boundary is taken at end of line.
	WarnUnterminatedQuote WarningKind = "unterminated_quote"

	// WarnRaggedRow means a data row's cell count differs from the header's.
	// The row is kept as-is; no padding or truncation is performed.
	WarnRaggedRow WarningKind = "ragged_row"
)

// Warning describes a recoverable parse anomaly.
type Warning struct {
	Kind WarningKind
	Line int // 1-based line number in the surviving (non-blank) input
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Kind)
}

// RawTable is the parsed form of a delimited file. Headers keep source order
// and are not deduplicated. Row cell counts may differ from len(Headers).
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table has no headers.
func (t RawTable) Empty() bool {
	return len(t.Headers) == 0
}

// Outcome is the result of parsing. Parsing never fails outright; callers
// distinguish "empty file" (Table.Empty, no warnings) from "garbled file"
// (warnings present) instead of guessing from a zero-row table.
type Outcome struct {
	Table    RawTable
	Warnings []Warning
}

// Parse tokenizes raw text. Lines that are empty or whitespace-only are
// dropped entirely; the first surviving line is the header row. Quoted cells
// may contain commas. There is no doubled-quote escape: a `""` sequence is
// close-then-open, matching the behavior the host application's users already
// rely on. Multi-line quoted cells are not supported because splitting
// happens on line breaks first.
func Parse(text string) Outcome {
	text = sanitize(text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return Outcome{}
	}

	var out Outcome
	headers, warn := splitRow(lines[0])
	out.Table.Headers = headers
	if warn {
		out.Warnings = append(out.Warnings, Warning{Kind: WarnUnterminatedQuote, Line: 1})
	}

	out.Table.Rows = make([][]string, 0, len(lines)-1)
	for i, line := range lines[1:] {
		row, warn := splitRow(line)
		if warn {
			out.Warnings = append(out.Warnings, Warning{Kind: WarnUnterminatedQuote, Line: i + 2})
		}
		if len(row) != len(headers) {
			out.Warnings = append(out.Warnings, Warning{Kind: WarnRaggedRow, Line: i + 2})
		}
		out.Table.Rows = append(out.Table.Rows, row)
	}

	return out
}

// splitRow scans a single line left to right with one inQuotes flag.
// A quote toggles the flag, a comma outside quotes ends the cell, everything
// else accumulates. Cells are trimmed after accumulation. Returns the cells
// and whether the line ended inside a quoted cell.
func splitRow(line string) ([]string, bool) {
	var cells []string
	var cell strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))

	return cells, inQuotes
}
