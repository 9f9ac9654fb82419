package importer

import (
	"context"

	"github.com/shiftlog/importer/internal/tabular"
)

// Materialize turns raw rows plus a mapping into typed records. For each row,
// every mapping entry with a non-empty target key whose index falls inside
// the row contributes record[targetKey] = coerce(cell); cells beyond the end
// of a short row are skipped, not treated as null. When two entries share a
// target key the later one overwrites the earlier (last-mapped-wins).
//
// Rows where no column is mapped at all produce no record. A row whose every
// mapped cell is empty still produces a record of nulls; such records are
// kept, not filtered.
func Materialize(table tabular.RawTable, mapping []ColumnMapping, defs []ColumnDefinition) []Record {
	byKey := make(map[string]*ColumnDefinition, len(defs))
	for i := range defs {
		byKey[defs[i].Key] = &defs[i]
	}

	records := make([]Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make(Record)
		for i, m := range mapping {
			if m.TargetKey == "" || i >= len(row) {
				continue
			}
			record[m.TargetKey] = coerceFor(row[i], byKey[m.TargetKey])
		}
		if len(record) == 0 {
			continue
		}
		records = append(records, record)
	}
	return records
}

// Commit submits the full record batch to the writer in a single call and
// returns the number of records submitted. There is no chunking and no
// retry; a writer failure is wrapped as *CommitError with the writer's
// structured diagnostics preserved.
func Commit(ctx context.Context, target string, records []Record, writer RecordWriter) (int, error) {
	if err := writer.Write(ctx, target, records); err != nil {
		return 0, newCommitError(err)
	}
	return len(records), nil
}
