// Package store opens the database handle that the CLI hands to the
// executor.
//
// Two drivers are registered:
//
//   - mysql (github.com/go-sql-driver/mysql): the dialect the generated SQL
//     targets. The DSN is either given verbatim or assembled from host,
//     port, user, password and database name.
//   - sqlite3 (github.com/mattn/go-sqlite3): a file-backed database for
//     local runs and end-to-end tests. SQLite accepts backtick-quoted
//     identifiers.
//
// # SQLite Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// # SQLite and double-quoted strings
//
// String values are encoded as double-quoted JSON text. MySQL reads those
// as string literals. SQLite first tries to resolve a double-quoted token
// as a column name and only falls back to a string when no such column
// exists. A value that happens to equal a column name of the table is
// therefore compared against that column, with no error:
//
//	WHERE `name` = "name"   -- true for every row with a non-null name
//
// Prefer numeric or otherwise unambiguous values when running against
// SQLite. The exec command logs a warning when it opens a sqlite3 target.
//
// The store does no pooling, migrations or transaction control of its
// own beyond what database/sql provides.
package store
