// Package sqlval renders Go values as SQL literal text.
//
// Values are a sealed set of scalar types (Null, String, Int, Uint, Float,
// Bool, Time). Only types in this package implement Value, so encoders can
// switch over them exhaustively.
//
// Literal encoding follows JSON rules: strings are double-quoted with
// JSON escapes, numbers print as JSON numbers, and null prints as null.
// Timestamps are not converted to SQL datetime text automatically; use
// TimeToSQL or MillisToSQL and pass the result as a String.
//
// Records are ordered field lists. A field holding a nil Value is absent:
// it is skipped when columns or predicates are derived from the record.
// Null{} is a present SQL null.
//
// # Security
//
// There is no parameterized path. Values are literal-encoded and
// identifiers are wrapped in backticks without validation, so a table or
// field name taken from untrusted input ends up verbatim in the SQL text.
// Callers must only pass trusted names.
package sqlval
