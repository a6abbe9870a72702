package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/sqlb/internal/sqlval"
)

// Func is an aggregate function usable in a projection.
type Func string

const (
	Sum   Func = "SUM"
	Count Func = "COUNT"
	Avg   Func = "AVG"
	Max   Func = "MAX"
	Min   Func = "MIN"
)

// ErrUnknownFunc is returned for an aggregate function outside Func's set.
var ErrUnknownFunc = errors.New("unknown aggregate function")

// Valid reports whether f is a supported aggregate.
func (f Func) Valid() bool {
	switch f {
	case Sum, Count, Avg, Max, Min:
		return true
	}
	return false
}

// FuncSelector describes one aggregate projection term. An empty As uses
// the rendered call itself as the alias. Field may be "*".
type FuncSelector struct {
	Func  Func
	Field string
	As    string
}

// call renders FUNC(`field`), leaving * unquoted.
func (fs FuncSelector) call() string {
	return string(fs.Func) + "(" + sqlval.Identifier(fs.Field) + ")"
}

// term renders FUNC(`field`) as alias.
func (fs FuncSelector) term() (string, error) {
	if !fs.Func.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFunc, string(fs.Func))
	}
	as := fs.As
	if as == "" {
		as = fs.call()
	}
	return fs.call() + " as " + as, nil
}

// ParseFunc parses an aggregate name, ignoring case.
func ParseFunc(s string) (Func, error) {
	f := Func(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFunc, s)
	}
	return f, nil
}
