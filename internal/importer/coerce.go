package importer

import (
	"strconv"
	"strings"
)

// Coerce converts a raw cell into a typed value: nil for the empty string, a
// float64 when the trimmed string parses as a number, otherwise the string
// unchanged (the parser already trimmed it once).
//
// The accepted numeric grammar is exactly strconv.ParseFloat's: decimal and
// exponent forms ("42", "3.14", "1e3"), signed variants, "Inf"/"Infinity"/
// "NaN" in any case, and hexadecimal floats. Surrounding whitespace is
// tolerated. This is a heuristic: it cannot tell a numeric-looking identifier
// (zip code "02135") from a true number, and leading zeros are lost. Fields
// that must stay textual set ColumnDefinition.KeepText.
func Coerce(raw string) any {
	if raw == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return n
	}
	return raw
}

// coerceFor applies the per-column KeepText override before falling back to
// the standard heuristic. Empty cells are nil either way.
func coerceFor(raw string, def *ColumnDefinition) any {
	if def != nil && def.KeepText {
		if raw == "" {
			return nil
		}
		return raw
	}
	return Coerce(raw)
}
