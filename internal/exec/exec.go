// Package exec sends rendered SQL text to a database and returns either
// result rows or an affected-rows summary.
//
// The package does not open, pool, retry or close connections. Callers
// hand it anything that can run ExecContext/QueryContext (a *sql.DB,
// *sql.Tx or *sql.Conn) and keep ownership of it.
package exec

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/roach88/sqlb/internal/sqlval"
)

// Executor runs one SQL statement.
type Executor interface {
	// Query runs a statement that returns rows.
	Query(ctx context.Context, query string) ([]sqlval.Record, error)

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, query string) (Summary, error)
}

// Summary describes the outcome of an INSERT, UPDATE or DELETE.
type Summary struct {
	AffectedRows int64  `json:"affected_rows"`
	InsertID     int64  `json:"insert_id"`
	ChangedRows  int64  `json:"changed_rows"`
	WarningCount int64  `json:"warning_count"`
	Message      string `json:"message,omitempty"`
	ServerStatus int64  `json:"server_status"`
}

// ExecQuerier wraps the standard ExecContext and QueryContext methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// AdapterError wraps a failure reported by the underlying connection.
// The driver error is passed through untouched and is reachable with
// errors.Is / errors.As.
type AdapterError struct {
	Op  string // "query" or "exec"
	SQL string // statement text that failed
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("exec: %s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// DB is an Executor over database/sql.
//
// database/sql reports only rows affected and the last insert id, so
// ChangedRows, WarningCount, Message and ServerStatus are always zero.
type DB struct {
	conn   ExecQuerier
	logger *slog.Logger
}

// New creates a DB over conn. Statements are logged at debug level on
// slog.Default().
func New(conn ExecQuerier) *DB {
	return &DB{conn: conn, logger: slog.Default()}
}

// WithLogger returns a copy of d that logs to l.
func (d *DB) WithLogger(l *slog.Logger) *DB {
	return &DB{conn: d.conn, logger: l}
}

// Query implements Executor. Column values are converted with sqlval.Of;
// text columns come back as sqlval.String.
func (d *DB) Query(ctx context.Context, query string) ([]sqlval.Record, error) {
	d.logger.DebugContext(ctx, "executing statement", "op", "query", "sql", query)

	rows, err := d.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &AdapterError{Op: "query", SQL: query, Err: err}
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, &AdapterError{Op: "query", SQL: query, Err: err}
	}

	d.logger.DebugContext(ctx, "statement returned rows", "rows", len(records))
	return records, nil
}

// Exec implements Executor.
func (d *DB) Exec(ctx context.Context, query string) (Summary, error) {
	d.logger.DebugContext(ctx, "executing statement", "op", "exec", "sql", query)

	res, err := d.conn.ExecContext(ctx, query)
	if err != nil {
		return Summary{}, &AdapterError{Op: "exec", SQL: query, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Summary{}, &AdapterError{Op: "exec", SQL: query, Err: fmt.Errorf("rows affected: %w", err)}
	}

	// Not every driver supports LastInsertId; treat that as "no id".
	insertID, err := res.LastInsertId()
	if err != nil {
		insertID = 0
	}

	d.logger.DebugContext(ctx, "statement applied", "affected_rows", affected, "insert_id", insertID)
	return Summary{AffectedRows: affected, InsertID: insertID}, nil
}

// scanRecords reads every row into a Record keyed by column name.
func scanRecords(rows *sql.Rows) ([]sqlval.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var records []sqlval.Record
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		rec := make(sqlval.Record, len(cols))
		for i, col := range cols {
			v, err := sqlval.Of(raw[i])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col, err)
			}
			rec[i] = sqlval.Field{Name: col, Value: v}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}
