package builder

import (
	"context"
	"slices"
	"strings"

	"github.com/roach88/sqlb/internal/exec"
	"github.com/roach88/sqlb/internal/sqlval"
)

// Insert builds a multi-row INSERT statement.
//
// Semantics:
//
//	INSERT INTO `table` (`c1`, `c2`) VALUES
//	(v1, v2),
//	(v1, v2);
//
// The column list is the union of present fields across all records, in
// first-seen order. A record without a value for a column gets null.
type Insert struct {
	table   string
	records []sqlval.Record
}

// InsertTable starts an INSERT into the named table.
func InsertTable(name string) Insert {
	return Insert{}.SetTableName(name)
}

// Clone returns an independent copy of ins.
func (ins Insert) Clone() Insert {
	ins.records = slices.Clone(ins.records)
	return ins
}

// SetTableName replaces the table name.
func (ins Insert) SetTableName(name string) Insert {
	o := ins.Clone()
	o.table = name
	return o
}

// Insert appends one record.
func (ins Insert) Insert(rec sqlval.Record) Insert {
	return ins.InsertAll(rec)
}

// InsertAll appends records, in order.
func (ins Insert) InsertAll(recs ...sqlval.Record) Insert {
	o := ins.Clone()
	for _, r := range recs {
		o.records = append(o.records, sqlval.NewRecord(r...))
	}
	return o
}

// Records returns the number of records queued.
func (ins Insert) Records() int { return len(ins.records) }

// Columns returns the column list ToSQL will emit.
func (ins Insert) Columns() []string {
	var cols []string
	seen := make(map[string]bool)
	for _, r := range ins.records {
		for _, f := range r.Present() {
			if !seen[f.Name] {
				seen[f.Name] = true
				cols = append(cols, f.Name)
			}
		}
	}
	return cols
}

// Table implements Statement.
func (ins Insert) Table() string { return ins.table }

// Kind implements Statement.
func (ins Insert) Kind() Kind { return KindInsert }

// ToSQL implements Statement. It returns "" when no records were added.
func (ins Insert) ToSQL() (string, error) {
	if len(ins.records) == 0 {
		return "", nil
	}

	cols := ins.Columns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = sqlval.Identifier(c)
	}

	rows := make([]string, len(ins.records))
	for i, r := range ins.records {
		lits := make([]string, len(cols))
		for j, c := range cols {
			v, _ := r.Get(c)
			lits[j] = sqlval.Encode(v)
		}
		rows[i] = "(" + strings.Join(lits, ", ") + ")"
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(sqlval.Identifier(ins.table))
	b.WriteString(" (")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(") VALUES\n")
	b.WriteString(strings.Join(rows, ",\n"))
	b.WriteString(";")
	return b.String(), nil
}

// Query runs the statement and returns the affected-rows summary.
func (ins Insert) Query(ctx context.Context, ex exec.Executor) (exec.Summary, error) {
	return execute(ctx, ex, ins)
}
