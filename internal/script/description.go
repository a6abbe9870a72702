package script

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/sqlb/internal/sqlval"
)

// File is a decoded description file.
type File struct {
	// Path is the file the description was loaded from, if any.
	Path string `yaml:"-"`

	Statements []Description `yaml:"statements"`
}

// Description describes one statement.
type Description struct {
	// Name labels the statement in output. Defaults to "#<index>".
	Name string `yaml:"name,omitempty"`

	// Kind is select, insert, update or delete.
	Kind string `yaml:"kind"`

	Table string `yaml:"table"`

	// Fields is the plain projection of a select.
	Fields []string `yaml:"fields,omitempty"`

	// Functions is the aggregate projection of a select. It takes
	// precedence over Fields.
	Functions []Function `yaml:"functions,omitempty"`

	// Records are the rows of an insert.
	Records []Record `yaml:"records,omitempty"`

	// Set holds the assignments of an update, in order.
	Set Record `yaml:"set,omitempty"`

	// Where conditions are folded left to right.
	Where []Condition `yaml:"where,omitempty"`

	// Match derives one comparison per field and requires at least one.
	// MatchOp defaults to "=" and MatchJoin to "and".
	Match     Record `yaml:"match,omitempty"`
	MatchOp   string `yaml:"match_op,omitempty"`
	MatchJoin string `yaml:"match_join,omitempty"`
}

// Function is one aggregate projection term.
type Function struct {
	Func  string `yaml:"func"`
	Field string `yaml:"field"`
	As    string `yaml:"as,omitempty"`
}

// Condition is one where predicate. With In set it is a membership test;
// otherwise it compares Field to Value using Op (default "=").
// Join connects it to the conditions before it and is ignored on the
// first one.
type Condition struct {
	Join  string    `yaml:"join,omitempty"`
	Field string    `yaml:"field"`
	Op    string    `yaml:"op,omitempty"`
	Value Literal   `yaml:"value,omitempty"`
	In    []Literal `yaml:"in,omitempty"`
}

// Literal is a scalar value from a description file. A missing or null
// literal is SQL null.
type Literal struct {
	V sqlval.Value
}

// Value returns the literal, mapping unset to sqlval.Null.
func (l Literal) Value() sqlval.Value {
	if l.V == nil {
		return sqlval.Null{}
	}
	return l.V
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Literal) UnmarshalYAML(n *yaml.Node) error {
	v, err := scalarValue(n)
	if err != nil {
		return err
	}
	l.V = v
	return nil
}

// Record is an ordered mapping of field names to literals.
type Record struct {
	Fields sqlval.Record
}

// UnmarshalYAML implements yaml.Unmarshaler. Key order is preserved.
func (r *Record) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: record must be a mapping", n.Line)
	}

	fields := make(sqlval.Record, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		v, err := scalarValue(val)
		if err != nil {
			return fmt.Errorf("field %q: %w", key.Value, err)
		}
		fields = append(fields, sqlval.F(normalizeName(key.Value), v))
	}
	r.Fields = fields
	return nil
}

// scalarValue converts a YAML scalar to a Value. Timestamps stay strings.
func scalarValue(n *yaml.Node) (sqlval.Value, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: %w: expected a scalar", n.Line, sqlval.ErrUnsupportedValue)
	}
	if n.ShortTag() == "!!timestamp" {
		return sqlval.String(n.Value), nil
	}

	var x any
	if err := n.Decode(&x); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	v, err := sqlval.Of(x)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}

// normalizeName puts a table or field name in Unicode NFC so that
// visually equal names quote to the same bytes.
func normalizeName(s string) string {
	return norm.NFC.String(s)
}
