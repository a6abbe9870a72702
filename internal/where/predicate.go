package where

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/sqlb/internal/sqlval"
)

// Predicate is a single test on one field.
//
// This is a sealed interface - only Comparison and Membership implement it.
// Serialize accepts the two value types; pointers to them are rejected
// as an unknown shape.
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Op is a comparison operator.
type Op string

const (
	OpEq Op = "="
	OpNe Op = "<>"
	OpLt Op = "<"
	OpGt Op = ">"
	OpGe Op = ">="
	OpLe Op = "<="
)

var validOps = []Op{OpEq, OpNe, OpLt, OpGt, OpGe, OpLe}

// Valid reports whether o is one of the supported operators.
func (o Op) Valid() bool {
	for _, v := range validOps {
		if o == v {
			return true
		}
	}
	return false
}

// ParseOp parses an operator token. "!=" is accepted as an alias for "<>".
func ParseOp(s string) (Op, error) {
	s = strings.TrimSpace(s)
	if s == "!=" {
		return OpNe, nil
	}
	op := Op(s)
	if !op.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOperator, s)
	}
	return op, nil
}

// Comparison is `field OP value`.
type Comparison struct {
	Field string
	Op    Op
	Value sqlval.Value
}

func (Comparison) predicateNode() {}

// Membership is `field in (values...)`. Values must not be empty.
type Membership struct {
	Field  string
	Values []sqlval.Value
}

func (Membership) predicateNode() {}

// Compare creates a comparison predicate.
func Compare(field string, op Op, v sqlval.Value) Comparison {
	return Comparison{Field: field, Op: op, Value: v}
}

func Eq(field string, v sqlval.Value) Comparison { return Compare(field, OpEq, v) }
func Ne(field string, v sqlval.Value) Comparison { return Compare(field, OpNe, v) }
func Lt(field string, v sqlval.Value) Comparison { return Compare(field, OpLt, v) }
func Gt(field string, v sqlval.Value) Comparison { return Compare(field, OpGt, v) }
func Ge(field string, v sqlval.Value) Comparison { return Compare(field, OpGe, v) }
func Le(field string, v sqlval.Value) Comparison { return Compare(field, OpLe, v) }

// In creates a membership predicate. The values are copied.
func In(field string, values ...sqlval.Value) Membership {
	vs := make([]sqlval.Value, len(values))
	copy(vs, values)
	return Membership{Field: field, Values: vs}
}

// Serialize renders a predicate as SQL text.
func Serialize(p Predicate) (string, error) {
	switch pred := p.(type) {
	case Comparison:
		return serializeComparison(pred)
	case Membership:
		return serializeMembership(pred)
	}

	slog.Error("unknown type of predicate", "type", fmt.Sprintf("%T", p))
	return "", fmt.Errorf("%w: %T", ErrUnknownSelectorShape, p)
}

func serializeComparison(c Comparison) (string, error) {
	if c.Field == "" {
		return "", fmt.Errorf("%w: comparison has no field name", ErrEmptyInput)
	}
	if !c.Op.Valid() {
		return "", fmt.Errorf("%w: %q on field %q", ErrUnsupportedOperator, string(c.Op), c.Field)
	}
	return sqlval.Identifier(c.Field) + " " + string(c.Op) + " " + sqlval.Encode(c.Value), nil
}

func serializeMembership(m Membership) (string, error) {
	if m.Field == "" {
		return "", fmt.Errorf("%w: membership has no field name", ErrEmptyInput)
	}
	if len(m.Values) == 0 {
		return "", fmt.Errorf("%w: empty in-list for field %q", ErrEmptyInput, m.Field)
	}

	lits := make([]string, len(m.Values))
	for i, v := range m.Values {
		lits[i] = sqlval.Encode(v)
	}
	return sqlval.Identifier(m.Field) + " in (" + strings.Join(lits, ", ") + ")", nil
}
