package where

import (
	"fmt"
	"strings"
)

// Connective joins two boolean expressions.
type Connective string

const (
	And Connective = "AND"
	Or  Connective = "OR"
)

// ParseConnective parses "and" or "or", ignoring case and surrounding space.
func ParseConnective(s string) (Connective, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(And):
		return And, nil
	case string(Or):
		return Or, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOperator, s)
	}
}

// Expr is an immutable, fully parenthesized boolean expression.
//
// The zero Expr is empty. Combining a predicate into an empty Expr seeds
// it with that predicate alone.
type Expr struct {
	text string
	err  error
}

// New creates a leaf expression from one predicate.
func New(p Predicate) Expr {
	text, err := Serialize(p)
	if err != nil {
		return Expr{err: err}
	}
	return Expr{text: text}
}

// Raw creates a leaf expression from pre-rendered text. The text is used
// verbatim.
func Raw(text string) Expr {
	return Expr{text: text}
}

// IsZero reports whether e is empty.
func (e Expr) IsZero() bool {
	return e.text == "" && e.err == nil
}

// And returns (e AND p).
func (e Expr) And(p Predicate) Expr {
	return e.Combine(And, p)
}

// Or returns (e OR p).
func (e Expr) Or(p Predicate) Expr {
	return e.Combine(Or, p)
}

// AndAll folds ps into e with AND, left to right.
func (e Expr) AndAll(ps ...Predicate) Expr {
	for _, p := range ps {
		e = e.And(p)
	}
	return e
}

// OrAll folds ps into e with OR, left to right.
func (e Expr) OrAll(ps ...Predicate) Expr {
	for _, p := range ps {
		e = e.Or(p)
	}
	return e
}

// Combine returns (e c p). An empty e is seeded with p. Once e holds an
// error it is returned unchanged.
func (e Expr) Combine(c Connective, p Predicate) Expr {
	if e.err != nil {
		return e
	}
	if c != And && c != Or {
		return Expr{text: e.text, err: fmt.Errorf("%w: %q", ErrUnsupportedOperator, string(c))}
	}
	if e.IsZero() {
		return New(p)
	}

	s, err := Serialize(p)
	if err != nil {
		return Expr{text: e.text, err: fmt.Errorf("%s: %w", c, err)}
	}
	return Expr{text: "(" + e.text + " " + string(c) + " " + s + ")"}
}

// SQL returns the accumulated expression text, or the first error met
// while building it.
func (e Expr) SQL() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.text, nil
}

// Err returns the first error met while building e.
func (e Expr) Err() error {
	return e.err
}

// String returns the expression text, ignoring any error.
func (e Expr) String() string {
	return e.text
}

// AndAll builds first AND rest[0] AND rest[1] ...
func AndAll(first Predicate, rest ...Predicate) Expr {
	return New(first).AndAll(rest...)
}

// OrAll builds first OR rest[0] OR rest[1] ...
func OrAll(first Predicate, rest ...Predicate) Expr {
	return New(first).OrAll(rest...)
}

// All dispatches to AndAll or OrAll by connective token ("and" or "or",
// case-insensitive). Any other token fails with ErrUnsupportedOperator.
func All(connective string, first Predicate, rest ...Predicate) (Expr, error) {
	c, err := ParseConnective(connective)
	if err != nil {
		return Expr{}, err
	}
	if c == And {
		return AndAll(first, rest...), nil
	}
	return OrAll(first, rest...), nil
}
