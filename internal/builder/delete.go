package builder

import (
	"context"
	"strings"

	"github.com/roach88/sqlb/internal/exec"
	"github.com/roach88/sqlb/internal/sqlval"
	"github.com/roach88/sqlb/internal/where"
)

// Delete builds a DELETE statement. Without a where expression it deletes
// every row of the table.
type Delete struct {
	table string
	where where.Expr
}

// DeleteTable starts a DELETE on the named table.
func DeleteTable(name string) Delete {
	return Delete{table: name}
}

// Clone returns a copy of d. Delete holds no shared state, so this is d
// itself.
func (d Delete) Clone() Delete { return d }

// SetTableName replaces the table name.
func (d Delete) SetTableName(name string) Delete {
	d.table = name
	return d
}

// SetWhere replaces the where expression.
func (d Delete) SetWhere(w where.Expr) Delete {
	d.where = w
	return d
}

// And adds p with AND, or seeds the where expression with it.
func (d Delete) And(p where.Predicate) Delete { return d.SetWhere(d.where.And(p)) }

// Or adds p with OR, or seeds the where expression with it.
func (d Delete) Or(p where.Predicate) Delete { return d.SetWhere(d.where.Or(p)) }

// AndAll folds ps in with AND, left to right.
func (d Delete) AndAll(ps ...where.Predicate) Delete { return d.SetWhere(d.where.AndAll(ps...)) }

// OrAll folds ps in with OR, left to right.
func (d Delete) OrAll(ps ...where.Predicate) Delete { return d.SetWhere(d.where.OrAll(ps...)) }

// Where returns the current where expression.
func (d Delete) Where() where.Expr { return d.where }

// Table implements Statement.
func (d Delete) Table() string { return d.table }

// Kind implements Statement.
func (d Delete) Kind() Kind { return KindDelete }

// ToSQL implements Statement.
func (d Delete) ToSQL() (string, error) {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(sqlval.Identifier(d.table))
	if err := writeWhere(&b, d.where); err != nil {
		return "", err
	}
	b.WriteString(";")
	return b.String(), nil
}

// Query runs the statement and returns the affected-rows summary.
func (d Delete) Query(ctx context.Context, ex exec.Executor) (exec.Summary, error) {
	return execute(ctx, ex, d)
}
