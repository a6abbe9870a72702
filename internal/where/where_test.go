package where

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlb/internal/sqlval"
)

func TestPredicateSealed(t *testing.T) {
	var _ Predicate = Comparison{}
	var _ Predicate = Membership{}
}

func TestSerialize_Comparison(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate
		want string
	}{
		{"eq int", Eq("user_id", sqlval.Int(1)), "`user_id` = 1"},
		{"ne string", Ne("status", sqlval.String("done")), "`status` <> \"done\""},
		{"lt", Lt("fee", sqlval.Float(2.5)), "`fee` < 2.5"},
		{"gt", Gt("step", sqlval.Int(3)), "`step` > 3"},
		{"ge datetime text", Ge("create_timestamp", sqlval.String("2024-01-01 00:00:00")), "`create_timestamp` >= \"2024-01-01 00:00:00\""},
		{"le", Le("rank", sqlval.Int(10)), "`rank` <= 10"},
		{"null", Eq("deleted_at", sqlval.Null{}), "`deleted_at` = null"},
		{"absent value", Eq("x", nil), "`x` = null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.pred)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerialize_Membership(t *testing.T) {
	got, err := Serialize(In("user_id", sqlval.Int(1), sqlval.Int(2), sqlval.String("3")))
	require.NoError(t, err)
	assert.Equal(t, "`user_id` in (1, 2, \"3\")", got)

	got, err = Serialize(Membership{Field: "a", Values: []sqlval.Value{sqlval.Null{}}})
	require.NoError(t, err)
	assert.Equal(t, "`a` in (null)", got)
}

func TestSerialize_Errors(t *testing.T) {
	var nilCmp *Comparison
	var nilMem *Membership

	tests := []struct {
		name string
		pred Predicate
		want error
	}{
		{"nil predicate", nil, ErrUnknownSelectorShape},
		{"nil comparison pointer", nilCmp, ErrUnknownSelectorShape},
		{"nil membership pointer", nilMem, ErrUnknownSelectorShape},
		{"comparison pointer", &Comparison{Field: "a", Op: OpEq, Value: sqlval.Bool(true)}, ErrUnknownSelectorShape},
		{"membership pointer", &Membership{Field: "a", Values: []sqlval.Value{sqlval.Int(1)}}, ErrUnknownSelectorShape},
		{"empty in-list", In("user_id"), ErrEmptyInput},
		{"empty field", Eq("", sqlval.Int(1)), ErrEmptyInput},
		{"empty membership field", In("", sqlval.Int(1)), ErrEmptyInput},
		{"bad operator", Compare("a", Op("LIKE"), sqlval.String("x")), ErrUnsupportedOperator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Serialize(tt.pred)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIn_CopiesValues(t *testing.T) {
	vals := []sqlval.Value{sqlval.Int(1), sqlval.Int(2)}
	m := In("a", vals...)
	vals[0] = sqlval.Int(99)

	assert.Equal(t, sqlval.Int(1), m.Values[0])
}

func TestParseOp(t *testing.T) {
	for _, s := range []string{"=", "<>", "<", ">", ">=", "<="} {
		op, err := ParseOp(s)
		require.NoError(t, err)
		assert.Equal(t, Op(s), op)
	}

	op, err := ParseOp(" != ")
	require.NoError(t, err)
	assert.Equal(t, OpNe, op)

	_, err = ParseOp("LIKE")
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestExpr_MixedFolding(t *testing.T) {
	sql, err := New(Eq("user_id", sqlval.Int(1))).
		And(Eq("step", sqlval.Int(2))).
		Or(Eq("raw_id", sqlval.Int(3))).
		SQL()
	require.NoError(t, err)

	assert.Equal(t, "((`user_id` = 1 AND `step` = 2) OR `raw_id` = 3)", sql)
}

func TestExpr_NestingDepth(t *testing.T) {
	preds := []Predicate{
		Eq("a", sqlval.Int(1)),
		Eq("b", sqlval.Int(2)),
		Eq("c", sqlval.Int(3)),
		Eq("d", sqlval.Int(4)),
		Eq("e", sqlval.Int(5)),
	}

	for n := 1; n <= len(preds); n++ {
		sql, err := AndAll(preds[0], preds[1:n]...).SQL()
		require.NoError(t, err)
		assert.Equal(t, n-1, strings.Count(sql, "("), "n=%d", n)
		assert.Equal(t, n-1, strings.Count(sql, ")"), "n=%d", n)
	}

	sql, err := AndAll(preds[0], preds[1:]...).SQL()
	require.NoError(t, err)
	assert.Equal(t, "((((`a` = 1 AND `b` = 2) AND `c` = 3) AND `d` = 4) AND `e` = 5)", sql)
}

func TestExpr_Immutable(t *testing.T) {
	base := New(Eq("a", sqlval.Int(1)))
	left := base.And(Eq("b", sqlval.Int(2)))
	right := base.Or(Eq("c", sqlval.Int(3)))

	assert.Equal(t, "`a` = 1", base.String())
	assert.Equal(t, "(`a` = 1 AND `b` = 2)", left.String())
	assert.Equal(t, "(`a` = 1 OR `c` = 3)", right.String())
}

func TestExpr_ZeroSeeds(t *testing.T) {
	var e Expr
	assert.True(t, e.IsZero())

	e = e.Or(Eq("a", sqlval.Int(1)))
	assert.False(t, e.IsZero())
	assert.Equal(t, "`a` = 1", e.String())
}

func TestExpr_Raw(t *testing.T) {
	e := Raw("`a` = 1").And(Eq("b", sqlval.Int(2)))

	sql, err := e.SQL()
	require.NoError(t, err)
	assert.Equal(t, "(`a` = 1 AND `b` = 2)", sql)
}

func TestExpr_ErrorSticks(t *testing.T) {
	e := New(Eq("a", sqlval.Int(1))).
		And(In("b")).
		And(Eq("c", sqlval.Int(3)))

	_, err := e.SQL()
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Contains(t, err.Error(), "AND")
	assert.ErrorIs(t, e.Err(), ErrEmptyInput)
	assert.False(t, e.IsZero())
}

func TestExpr_LeafError(t *testing.T) {
	e := New(nil)
	_, err := e.SQL()
	assert.ErrorIs(t, err, ErrUnknownSelectorShape)
}

func TestExpr_CombineBadConnective(t *testing.T) {
	e := New(Eq("a", sqlval.Int(1))).Combine(Connective("XOR"), Eq("b", sqlval.Int(2)))
	_, err := e.SQL()
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestOrAll(t *testing.T) {
	sql, err := OrAll(Eq("a", sqlval.Int(1)), Eq("b", sqlval.Int(2)), Eq("c", sqlval.Int(3))).SQL()
	require.NoError(t, err)
	assert.Equal(t, "((`a` = 1 OR `b` = 2) OR `c` = 3)", sql)
}

func TestAll_Dispatch(t *testing.T) {
	a := Eq("a", sqlval.Int(1))
	b := Eq("b", sqlval.Int(2))

	e, err := All("and", a, b)
	require.NoError(t, err)
	assert.Equal(t, "(`a` = 1 AND `b` = 2)", e.String())

	e, err = All(" OR ", a, b)
	require.NoError(t, err)
	assert.Equal(t, "(`a` = 1 OR `b` = 2)", e.String())

	_, err = All("xor", a, b)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestParseConnective(t *testing.T) {
	c, err := ParseConnective("And")
	require.NoError(t, err)
	assert.Equal(t, And, c)

	_, err = ParseConnective("")
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestFromPartial(t *testing.T) {
	r := sqlval.NewRecord(
		sqlval.F("raw_id", sqlval.Int(4)),
		sqlval.F("note", nil),
		sqlval.F("sender_user_id", sqlval.Int(2)),
		sqlval.F("deleted_at", sqlval.Null{}),
	)

	preds := FromPartial(r, "")
	require.Len(t, preds, len(r.Present()))
	assert.Equal(t, []Predicate{
		Eq("raw_id", sqlval.Int(4)),
		Eq("sender_user_id", sqlval.Int(2)),
		Eq("deleted_at", sqlval.Null{}),
	}, preds)

	preds = FromPartial(r, OpGe)
	for _, p := range preds {
		assert.Equal(t, OpGe, p.(Comparison).Op)
	}
}

func TestFromPartial_Empty(t *testing.T) {
	assert.Empty(t, FromPartial(nil, OpEq))
	assert.Empty(t, FromPartial(sqlval.NewRecord(sqlval.F("a", nil)), OpEq))
}

func TestEnsureFromPartial(t *testing.T) {
	_, err := EnsureFromPartial(nil, OpEq)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = EnsureFromPartial(sqlval.NewRecord(sqlval.F("a", nil), sqlval.F("b", nil)), OpEq)
	assert.ErrorIs(t, err, ErrEmptyInput)

	preds, err := EnsureFromPartial(sqlval.NewRecord(sqlval.F("a", sqlval.Int(1))), OpEq)
	require.NoError(t, err)
	assert.Len(t, preds, 1)
}

func TestNonEmpty(t *testing.T) {
	_, err := NonEmpty([]int{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	xs, err := NonEmpty([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, xs)
}
