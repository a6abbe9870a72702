package sqlval

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// ErrUnsupportedValue is returned when a Go value has no scalar SQL literal form.
var ErrUnsupportedValue = errors.New("unsupported value")

// Value is a sealed interface over the scalar types that can be rendered
// as SQL literals.
type Value interface {
	sqlValue() // Sealed - only types in this package implement it
}

// Null is the SQL null literal.
type Null struct{}

func (Null) sqlValue() {}

// String is a text value.
type String string

func (String) sqlValue() {}

// Int is a signed integer value.
type Int int64

func (Int) sqlValue() {}

// Uint is an unsigned integer value.
type Uint uint64

func (Uint) sqlValue() {}

// Float is a floating point value. NaN and infinities render as null.
type Float float64

func (Float) sqlValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) sqlValue() {}

// Time is a timestamp. It renders as its JSON (RFC 3339) string; it is not
// reformatted for SQL.
type Time time.Time

func (Time) sqlValue() {}

// Of converts a dynamic Go value to a Value.
//
// nil and nil pointers become Null. []byte becomes String, which is also
// how text columns come back from database/sql drivers. Named types are
// converted by kind. Slices, maps, structs and other composite values fail
// with ErrUnsupportedValue.
func Of(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case []byte:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return Uint(val), nil
	case uint8:
		return Uint(val), nil
	case uint16:
		return Uint(val), nil
	case uint32:
		return Uint(val), nil
	case uint64:
		return Uint(val), nil
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return Int(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: json number %q", ErrUnsupportedValue, val)
		}
		return Float(f), nil
	case time.Time:
		return Time(val), nil
	}
	return ofReflect(reflect.ValueOf(v))
}

// MustOf is like Of but panics on error. Intended for literals in tests
// and fixed call sites.
func MustOf(v any) Value {
	val, err := Of(v)
	if err != nil {
		panic(err)
	}
	return val
}

// ofReflect handles pointers and named scalar types.
func ofReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		return Of(rv.Elem().Interface())
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(rv.Bytes()), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, rv.Type())
}

// Native returns the Go value underlying v, as database/sql would accept
// it. Null and a nil Value both return nil.
func Native(v Value) any {
	switch val := v.(type) {
	case String:
		return string(val)
	case Int:
		return int64(val)
	case Uint:
		return uint64(val)
	case Float:
		return float64(val)
	case Bool:
		return bool(val)
	case Time:
		return time.Time(val)
	default:
		return nil
	}
}
