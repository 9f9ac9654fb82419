package importer

import "strings"

// normalizeName lowercases a column name and strips underscores, spaces and
// hyphens so "Work_Type", "work type" and "worktype" all compare equal.
// Matching is exact after normalization; there is no fuzzy matching.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', ' ', '-':
			return -1
		}
		return r
	}, name)
}

// AutoMap proposes a mapping for each source header by comparing its
// normalized form against every definition's key and label. The first
// definition that matches wins; headers with no match are left unmapped
// (skip). The result is deterministic and repeated calls are idempotent.
func AutoMap(headers []string, defs []ColumnDefinition) []ColumnMapping {
	mapping := make([]ColumnMapping, len(headers))
	for i, header := range headers {
		mapping[i] = ColumnMapping{SourceColumn: header}

		norm := normalizeName(header)
		for _, def := range defs {
			if norm == normalizeName(def.Key) || norm == normalizeName(def.Label) {
				mapping[i].TargetKey = def.Key
				break
			}
		}
	}
	return mapping
}

// UpdateMapping returns a copy of mapping with the entry for sourceColumn
// pointing at targetKey (empty string = skip). All other entries and the
// original header order are preserved; the input slice is not modified.
func UpdateMapping(mapping []ColumnMapping, sourceColumn, targetKey string) []ColumnMapping {
	updated := make([]ColumnMapping, len(mapping))
	copy(updated, mapping)
	for i := range updated {
		if updated[i].SourceColumn == sourceColumn {
			updated[i].TargetKey = targetKey
		}
	}
	return updated
}
