package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/sqlb/internal/exec"
	"github.com/roach88/sqlb/internal/sqlval"
)

// ErrEmptyStatement is returned when a statement with nothing to write
// (an INSERT without records, an UPDATE without assignments) is sent to
// an executor.
var ErrEmptyStatement = errors.New("statement renders no SQL")

// Kind identifies the statement verb.
type Kind string

const (
	KindSelect Kind = "select"
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Statement is implemented by all four builders.
type Statement interface {
	Kind() Kind
	Table() string
	ToSQL() (string, error)
}

// Result is the outcome of Run. Rows is set for SELECT, Summary for the
// other verbs.
type Result struct {
	Kind    Kind            `json:"kind"`
	SQL     string          `json:"sql"`
	Rows    []sqlval.Record `json:"-"`
	Summary *exec.Summary   `json:"summary,omitempty"`
}

// Run renders st and sends it to ex, using Query for SELECT and Exec for
// everything else.
func Run(ctx context.Context, ex exec.Executor, st Statement) (Result, error) {
	sql, err := render(st)
	if err != nil {
		return Result{}, err
	}

	res := Result{Kind: st.Kind(), SQL: sql}
	if st.Kind() == KindSelect {
		rows, err := ex.Query(ctx, sql)
		if err != nil {
			return res, err
		}
		res.Rows = rows
		return res, nil
	}

	sum, err := ex.Exec(ctx, sql)
	if err != nil {
		return res, err
	}
	res.Summary = &sum
	return res, nil
}

// render returns the statement text, refusing empty statements.
func render(st Statement) (string, error) {
	sql, err := st.ToSQL()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", st.Kind(), st.Table(), err)
	}
	if sql == "" {
		return "", fmt.Errorf("%s %s: %w", st.Kind(), st.Table(), ErrEmptyStatement)
	}
	return sql, nil
}

// execute renders st and runs it with ex.Exec.
func execute(ctx context.Context, ex exec.Executor, st Statement) (exec.Summary, error) {
	sql, err := render(st)
	if err != nil {
		return exec.Summary{}, err
	}
	return ex.Exec(ctx, sql)
}
