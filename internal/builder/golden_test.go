package builder

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlb/internal/sqlval"
	"github.com/roach88/sqlb/internal/where"
)

// To regenerate golden files, run:
//
//	go test ./internal/builder -update
func TestGoldenStatements(t *testing.T) {
	played := sqlval.Time(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC))

	tests := []struct {
		name string
		st   Statement
	}{
		{
			name: "select_ranking_top",
			st: SelectTable("ranking").
				SelectFields("rank", "user_id").
				And(where.Eq("user_id", sqlval.Int(12))).
				And(where.Eq("step", sqlval.Int(34))).
				Or(where.Ge("rank", sqlval.Int(100))),
		},
		{
			name: "select_aggregates",
			st: SelectTable("ranking").SelectFieldsWithFunctions(
				FuncSelector{Func: Count, Field: "*", As: "n"},
				FuncSelector{Func: Min, Field: "rank"},
			).AndAll(where.In("step", sqlval.Int(1), sqlval.Int(2), sqlval.Int(3))),
		},
		{
			name: "insert_heterogeneous",
			st: InsertTable("ranking").InsertAll(
				sqlval.NewRecord(
					sqlval.F("user_id", sqlval.Int(12)),
					sqlval.F("rank", sqlval.Float(1.5)),
					sqlval.F("played_at", played),
				),
				sqlval.NewRecord(
					sqlval.F("user_id", sqlval.Int(13)),
					sqlval.F("nick", sqlval.String("o\"neil")),
				),
			),
		},
		{
			name: "update_guarded",
			st: UpdateTable("ranking").
				Set("rank", sqlval.Int(1)).
				Set("cheater", sqlval.Bool(false)).
				OrAll(where.Eq("user_id", sqlval.Int(12)), where.Lt("rank", sqlval.Int(0))),
		},
		{
			name: "delete_all",
			st:   DeleteTable("ranking"),
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := tt.st.ToSQL()
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(sql))
		})
	}
}
