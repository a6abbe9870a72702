package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/sqlb/internal/builder"
	"github.com/roach88/sqlb/internal/sqlval"
	"github.com/roach88/sqlb/internal/where"
)

// ErrUnknownKind is returned for a statement kind other than select,
// insert, update or delete.
var ErrUnknownKind = errors.New("unknown statement kind")

// Compiled is a built statement with its label.
type Compiled struct {
	Name      string
	Statement builder.Statement
}

// Build turns every description into a statement. The first failure is
// returned as a LoadError naming the statement.
func (f *File) Build() ([]Compiled, error) {
	out := make([]Compiled, 0, len(f.Statements))
	for i, d := range f.Statements {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		st, err := d.Build()
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeInvalidStatement,
				Message: fmt.Sprintf("statements[%d] (%s): %v", i, name, err),
				Err:     err,
			}
		}
		out = append(out, Compiled{Name: name, Statement: st})
	}
	return out, nil
}

// Build turns one description into a statement.
func (d Description) Build() (builder.Statement, error) {
	table := normalizeName(d.Table)
	if table == "" {
		return nil, errors.New("table is required")
	}

	w, err := d.whereExpr()
	if err != nil {
		return nil, err
	}

	switch builder.Kind(strings.ToLower(strings.TrimSpace(d.Kind))) {
	case builder.KindSelect:
		return d.buildSelect(table, w)
	case builder.KindInsert:
		return d.buildInsert(table)
	case builder.KindUpdate:
		return d.buildUpdate(table, w)
	case builder.KindDelete:
		return builder.DeleteTable(table).SetWhere(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
}

func (d Description) buildSelect(table string, w where.Expr) (builder.Statement, error) {
	s := builder.SelectTable(table).SetWhere(w)

	if len(d.Functions) > 0 {
		specs := make([]builder.FuncSelector, len(d.Functions))
		for i, fn := range d.Functions {
			f, err := builder.ParseFunc(fn.Func)
			if err != nil {
				return nil, fmt.Errorf("functions[%d]: %w", i, err)
			}
			specs[i] = builder.FuncSelector{Func: f, Field: normalizeName(fn.Field), As: fn.As}
		}
		return s.SelectFieldsWithFunctions(specs...), nil
	}

	if len(d.Fields) > 0 {
		fields := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = normalizeName(f)
		}
		s = s.SelectFields(fields...)
	}
	return s, nil
}

func (d Description) buildInsert(table string) (builder.Statement, error) {
	records, err := where.NonEmpty(d.Records)
	if err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}

	ins := builder.InsertTable(table)
	for _, r := range records {
		ins = ins.Insert(r.Fields)
	}
	return ins, nil
}

func (d Description) buildUpdate(table string, w where.Expr) (builder.Statement, error) {
	sets, err := where.NonEmpty(d.Set.Fields.Present())
	if err != nil {
		return nil, fmt.Errorf("set: %w", err)
	}
	return builder.UpdateTable(table).SetRecord(sets).SetWhere(w), nil
}

// whereExpr folds the where conditions, then the match record.
func (d Description) whereExpr() (where.Expr, error) {
	var w where.Expr
	for i, c := range d.Where {
		p, err := c.predicate()
		if err != nil {
			return where.Expr{}, fmt.Errorf("where[%d]: %w", i, err)
		}
		join := where.And
		if c.Join != "" {
			join, err = where.ParseConnective(c.Join)
			if err != nil {
				return where.Expr{}, fmt.Errorf("where[%d]: %w", i, err)
			}
		}
		w = w.Combine(join, p)
	}

	if d.Match.Fields == nil {
		return w, nil
	}

	op, err := parseOp(d.MatchOp)
	if err != nil {
		return where.Expr{}, fmt.Errorf("match_op: %w", err)
	}
	preds, err := where.EnsureFromPartial(d.Match.Fields, op)
	if err != nil {
		return where.Expr{}, fmt.Errorf("match: %w", err)
	}

	joinToken := d.MatchJoin
	if joinToken == "" {
		joinToken = string(where.And)
	}
	if w.IsZero() {
		return where.All(joinToken, preds[0], preds[1:]...)
	}
	join, err := where.ParseConnective(joinToken)
	if err != nil {
		return where.Expr{}, fmt.Errorf("match_join: %w", err)
	}
	for _, p := range preds {
		w = w.Combine(join, p)
	}
	return w, nil
}

func (c Condition) predicate() (where.Predicate, error) {
	field := normalizeName(c.Field)
	if c.In != nil {
		values := make([]sqlval.Value, len(c.In))
		for i, l := range c.In {
			values[i] = l.Value()
		}
		return where.In(field, values...), nil
	}

	op, err := parseOp(c.Op)
	if err != nil {
		return nil, err
	}
	return where.Compare(field, op, c.Value.Value()), nil
}

func parseOp(s string) (where.Op, error) {
	if s == "" {
		return where.OpEq, nil
	}
	return where.ParseOp(s)
}
