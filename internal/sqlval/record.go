package sqlval

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Field is one named value in a Record. A nil Value marks the field absent.
type Field struct {
	Name  string
	Value Value
}

// F is a shorthand for Field construction.
// Example: NewRecord(F("user_id", Int(1)), F("rank", Int(10)))
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Record is an ordered list of fields. Order is significant: it decides
// column order in INSERT statements and predicate order in derived
// where clauses.
type Record []Field

// NewRecord creates a Record from fields, in the given order.
func NewRecord(fields ...Field) Record {
	r := make(Record, len(fields))
	copy(r, fields)
	return r
}

// RecordFromMap creates a Record from a map. Keys are sorted for
// deterministic output.
func RecordFromMap(m map[string]Value) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := make(Record, 0, len(keys))
	for _, k := range keys {
		r = append(r, Field{Name: k, Value: m[k]})
	}
	return r
}

// RecordFromStruct creates a Record from the exported fields of a struct
// or pointer to struct.
//
// The column name comes from the `sql` tag, falling back to the Go field
// name. A tag of "-" skips the field. Nil pointer fields are absent, and
// so are zero-valued fields tagged with omitempty. Untagged embedded
// structs are flattened.
//
// Example:
//
//	type ranking struct {
//	    UserID int    `sql:"user_id"`
//	    Rank   *int   `sql:"rank"`
//	    Note   string `sql:"note,omitempty"`
//	}
func RecordFromStruct(v any) (Record, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("record from struct: nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record from struct: %w: %T is not a struct", ErrUnsupportedValue, v)
	}

	var r Record
	if err := appendStructFields(&r, rv); err != nil {
		return nil, fmt.Errorf("record from struct: %w", err)
	}
	return r, nil
}

var timeType = reflect.TypeOf(time.Time{})

func appendStructFields(r *Record, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, omitEmpty, skip := parseTag(sf)
		if skip {
			continue
		}

		fv := rv.Field(i)
		if sf.Anonymous && sf.Tag.Get("sql") == "" && fv.Kind() == reflect.Struct && sf.Type != timeType {
			if err := appendStructFields(r, fv); err != nil {
				return err
			}
			continue
		}

		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			*r = append(*r, Field{Name: name})
			continue
		}
		if omitEmpty && fv.IsZero() {
			*r = append(*r, Field{Name: name})
			continue
		}

		val, err := Of(fv.Interface())
		if err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}
		*r = append(*r, Field{Name: name, Value: val})
	}
	return nil
}

// parseTag reads the `sql:"name,omitempty"` tag of a struct field.
func parseTag(sf reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := sf.Tag.Get("sql")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// Get returns the value of the first field with the given name.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Present returns the fields whose value is not absent, in order.
func (r Record) Present() Record {
	out := make(Record, 0, len(r))
	for _, f := range r {
		if f.Value != nil {
			out = append(out, f)
		}
	}
	return out
}

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Map returns the present fields as native Go values keyed by name.
// Useful for JSON output and assertions.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, f := range r {
		if f.Value != nil {
			m[f.Name] = Native(f.Value)
		}
	}
	return m
}
