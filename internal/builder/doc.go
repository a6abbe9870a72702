// Package builder provides immutable builders for SELECT, INSERT, UPDATE
// and DELETE statements.
//
// Every builder is a value type. Each method returns a new builder and
// leaves the receiver untouched, so partially built statements can be
// shared and extended independently:
//
//	base := builder.SelectTable("ranking").And(where.Eq("user_id", sqlval.Int(12)))
//	top := base.SelectFields("rank", "user_id").And(where.Eq("step", sqlval.Int(34)))
//	all := base.Select("rank")
//
// ToSQL renders the statement as literal SQL text terminated with ";".
// Identifiers are backtick-quoted and values are literal-encoded by
// package sqlval; nothing is parameterized.
//
// Query hands the rendered text to an exec.Executor. SELECT returns rows;
// the other statements return an exec.Summary.
package builder
