// Package pgwriter provides the production RecordWriter: it inserts
// materialized records into a PostgreSQL table. The import pipeline itself
// never sees SQL; it only hands this writer a batch.
package pgwriter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftlog/importer/internal/importer"
)

// DBTX is the subset of pgx operations the writer needs.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Writer inserts record batches into Postgres. Each batch runs in one
// transaction; on failure the transaction rolls back and the original pg
// error propagates unchanged so the caller can extract message/detail/hint.
type Writer struct {
	db DBTX
}

// New creates a Writer over a pool or transaction.
func New(db DBTX) *Writer {
	return &Writer{db: db}
}

var _ importer.RecordWriter = (*Writer)(nil)

// Write inserts all records into the target table. Record keys become column
// names; the column set is the union of keys across the batch, sorted for a
// deterministic statement. Records missing a column insert NULL there.
func (w *Writer) Write(ctx context.Context, target string, records []importer.Record) error {
	if len(records) == 0 {
		return nil
	}

	columns := batchColumns(records)

	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := insertStatement(target, columns)
	for _, record := range records {
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = record[col]
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// batchColumns returns the sorted union of keys across the batch.
func batchColumns(records []importer.Record) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			seen[k] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

// insertStatement builds a parameterized INSERT for the given columns.
func insertStatement(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdentifier(col)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
}

// quoteIdentifier quotes a SQL identifier to prevent injection.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// NewPool is a convenience for cmd wiring: it builds a Writer over a pgxpool
// configured from the given connection string. maxConns <= 0 keeps the pgx
// default.
func NewPool(ctx context.Context, url string, maxConns int32) (*Writer, *pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return New(pool), pool, nil
}
