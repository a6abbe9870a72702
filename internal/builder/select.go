package builder

import (
	"context"
	"slices"
	"strings"

	"github.com/roach88/sqlb/internal/exec"
	"github.com/roach88/sqlb/internal/sqlval"
	"github.com/roach88/sqlb/internal/where"
)

// Select builds a SELECT statement.
//
// Semantics:
//
//	SELECT <projection | *> FROM `table` [WHERE <expr>];
//
// Every projection method replaces the previous projection, along with any
// error the previous projection carried; it does not append to it.
type Select struct {
	table   string
	selects []string
	where   where.Expr
	err     error
}

// SelectTable starts a SELECT on the named table.
func SelectTable(name string) Select {
	return Select{}.SetTableName(name)
}

// Clone returns an independent copy of s.
func (s Select) Clone() Select {
	s.selects = slices.Clone(s.selects)
	return s
}

// SetTableName replaces the table name.
func (s Select) SetTableName(name string) Select {
	o := s.Clone()
	o.table = name
	return o
}

// Select projects a single field.
func (s Select) Select(field string) Select {
	return s.SelectFields(field)
}

// SelectFields projects the given fields, in order.
func (s Select) SelectFields(fields ...string) Select {
	o := s.Clone()
	o.selects = make([]string, len(fields))
	o.err = nil
	for i, f := range fields {
		o.selects[i] = sqlval.Identifier(f)
	}
	return o
}

// SelectWithFunction projects one aggregate term, FUNC(`field`) as alias.
// An empty alias defaults to FUNC(`field`).
func (s Select) SelectWithFunction(fn Func, field, as string) Select {
	return s.SelectFieldsWithFunctions(FuncSelector{Func: fn, Field: field, As: as})
}

// SelectFieldsWithFunctions projects several aggregate terms, in order.
// An unknown function is reported by ToSQL.
func (s Select) SelectFieldsWithFunctions(specs ...FuncSelector) Select {
	o := s.Clone()
	o.selects = make([]string, 0, len(specs))
	o.err = nil
	for _, spec := range specs {
		term, err := spec.term()
		if err != nil {
			o.err = err
			break
		}
		o.selects = append(o.selects, term)
	}
	return o
}

// SetWhere replaces the where expression.
func (s Select) SetWhere(w where.Expr) Select {
	o := s.Clone()
	o.where = w
	return o
}

// And adds p with AND, or seeds the where expression with it.
func (s Select) And(p where.Predicate) Select {
	return s.SetWhere(s.where.And(p))
}

// Or adds p with OR, or seeds the where expression with it.
func (s Select) Or(p where.Predicate) Select {
	return s.SetWhere(s.where.Or(p))
}

// AndAll folds ps in with AND, left to right.
func (s Select) AndAll(ps ...where.Predicate) Select {
	return s.SetWhere(s.where.AndAll(ps...))
}

// OrAll folds ps in with OR, left to right.
func (s Select) OrAll(ps ...where.Predicate) Select {
	return s.SetWhere(s.where.OrAll(ps...))
}

// Where returns the current where expression.
func (s Select) Where() where.Expr { return s.where }

// Table implements Statement.
func (s Select) Table() string { return s.table }

// Kind implements Statement.
func (s Select) Kind() Kind { return KindSelect }

// ToSQL implements Statement.
func (s Select) ToSQL() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	if len(s.selects) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(s.selects, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(sqlval.Identifier(s.table))

	if err := writeWhere(&b, s.where); err != nil {
		return "", err
	}
	b.WriteString(";")
	return b.String(), nil
}

// Query runs the statement and returns the result rows.
func (s Select) Query(ctx context.Context, ex exec.Executor) ([]sqlval.Record, error) {
	sql, err := render(s)
	if err != nil {
		return nil, err
	}
	return ex.Query(ctx, sql)
}

// writeWhere appends " WHERE <expr>" when w is not empty.
func writeWhere(b *strings.Builder, w where.Expr) error {
	if w.IsZero() {
		return nil
	}
	text, err := w.SQL()
	if err != nil {
		return err
	}
	b.WriteString(" WHERE ")
	b.WriteString(text)
	return nil
}
