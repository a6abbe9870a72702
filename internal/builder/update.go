package builder

import (
	"context"
	"slices"
	"strings"

	"github.com/roach88/sqlb/internal/exec"
	"github.com/roach88/sqlb/internal/sqlval"
	"github.com/roach88/sqlb/internal/where"
)

// Assignment is one `field` = value term of an UPDATE.
type Assignment struct {
	Field string
	Value sqlval.Value
}

// Update builds an UPDATE statement.
//
// Semantics:
//
//	UPDATE `table` SET `f1` = v1, `f2` = v2 [WHERE <expr>];
//
// Assignments append. Setting the same field twice yields two terms.
type Update struct {
	table string
	sets  []Assignment
	where where.Expr
}

// UpdateTable starts an UPDATE on the named table.
func UpdateTable(name string) Update {
	return Update{}.SetTableName(name)
}

// Clone returns an independent copy of u.
func (u Update) Clone() Update {
	u.sets = slices.Clone(u.sets)
	return u
}

// SetTableName replaces the table name.
func (u Update) SetTableName(name string) Update {
	o := u.Clone()
	o.table = name
	return o
}

// Set appends one assignment.
func (u Update) Set(field string, v sqlval.Value) Update {
	o := u.Clone()
	o.sets = append(o.sets, Assignment{Field: field, Value: v})
	return o
}

// SetRecord appends one assignment per present field of r, in order.
func (u Update) SetRecord(r sqlval.Record) Update {
	o := u.Clone()
	for _, f := range r.Present() {
		o.sets = append(o.sets, Assignment{Field: f.Name, Value: f.Value})
	}
	return o
}

// Assignments returns a copy of the queued assignments.
func (u Update) Assignments() []Assignment { return slices.Clone(u.sets) }

// SetWhere replaces the where expression.
func (u Update) SetWhere(w where.Expr) Update {
	o := u.Clone()
	o.where = w
	return o
}

// And adds p with AND, or seeds the where expression with it.
func (u Update) And(p where.Predicate) Update { return u.SetWhere(u.where.And(p)) }

// Or adds p with OR, or seeds the where expression with it.
func (u Update) Or(p where.Predicate) Update { return u.SetWhere(u.where.Or(p)) }

// AndAll folds ps in with AND, left to right.
func (u Update) AndAll(ps ...where.Predicate) Update { return u.SetWhere(u.where.AndAll(ps...)) }

// OrAll folds ps in with OR, left to right.
func (u Update) OrAll(ps ...where.Predicate) Update { return u.SetWhere(u.where.OrAll(ps...)) }

// Where returns the current where expression.
func (u Update) Where() where.Expr { return u.where }

// Table implements Statement.
func (u Update) Table() string { return u.table }

// Kind implements Statement.
func (u Update) Kind() Kind { return KindUpdate }

// ToSQL implements Statement. It returns "" when no assignments exist.
func (u Update) ToSQL() (string, error) {
	if len(u.sets) == 0 {
		return "", nil
	}

	terms := make([]string, len(u.sets))
	for i, a := range u.sets {
		terms[i] = sqlval.Identifier(a.Field) + " = " + sqlval.Encode(a.Value)
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(sqlval.Identifier(u.table))
	b.WriteString(" SET ")
	b.WriteString(strings.Join(terms, ", "))
	if err := writeWhere(&b, u.where); err != nil {
		return "", err
	}
	b.WriteString(";")
	return b.String(), nil
}

// Query runs the statement and returns the affected-rows summary.
func (u Update) Query(ctx context.Context, ex exec.Executor) (exec.Summary, error) {
	return execute(ctx, ex, u)
}
