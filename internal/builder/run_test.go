package builder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlb/internal/exec"
	"github.com/roach88/sqlb/internal/sqlval"
	"github.com/roach88/sqlb/internal/where"
)

func newExecutor(t *testing.T) (*exec.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return exec.New(db).WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestSelectQuery_Rows(t *testing.T) {
	ex, mock := newExecutor(t)
	mock.ExpectQuery("SELECT `rank` FROM `ranking` WHERE `user_id` = 12;").
		WillReturnRows(sqlmock.NewRows([]string{"rank"}).AddRow(int64(3)).AddRow(int64(7)))

	rows, err := SelectTable("ranking").Select("rank").
		And(where.Eq("user_id", sqlval.Int(12))).
		Query(context.Background(), ex)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	v, ok := rows[1].Get("rank")
	require.True(t, ok)
	assert.Equal(t, sqlval.Int(7), v)
}

func TestSelectQuery_BuildErrorNotSent(t *testing.T) {
	ex, _ := newExecutor(t)

	_, err := SelectTable("t").And(where.In("a")).Query(context.Background(), ex)
	require.ErrorIs(t, err, where.ErrEmptyInput)
	assert.Contains(t, err.Error(), "select t:")
}

func TestInsertQuery_Summary(t *testing.T) {
	ex, mock := newExecutor(t)
	mock.ExpectExec("INSERT INTO `t` (`a`) VALUES\n(1),\n(2);").
		WillReturnResult(sqlmock.NewResult(41, 2))

	sum, err := InsertTable("t").InsertAll(
		sqlval.NewRecord(sqlval.F("a", sqlval.Int(1))),
		sqlval.NewRecord(sqlval.F("a", sqlval.Int(2))),
	).Query(context.Background(), ex)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.AffectedRows)
	assert.Equal(t, int64(41), sum.InsertID)
}

func TestInsertQuery_EmptyRefused(t *testing.T) {
	ex, _ := newExecutor(t)

	_, err := InsertTable("t").Query(context.Background(), ex)
	assert.ErrorIs(t, err, ErrEmptyStatement)
}

func TestUpdateQuery_AdapterErrorPropagates(t *testing.T) {
	ex, mock := newExecutor(t)
	lost := errors.New("connection lost")
	mock.ExpectExec("UPDATE `t` SET `a` = 1;").WillReturnError(lost)

	_, err := UpdateTable("t").Set("a", sqlval.Int(1)).Query(context.Background(), ex)
	require.ErrorIs(t, err, lost)

	var adapterErr *exec.AdapterError
	assert.ErrorAs(t, err, &adapterErr)
}

func TestDeleteQuery_Summary(t *testing.T) {
	ex, mock := newExecutor(t)
	mock.ExpectExec("DELETE FROM `t` WHERE `a` in (1, 2);").
		WillReturnResult(sqlmock.NewResult(0, 2))

	sum, err := DeleteTable("t").And(where.In("a", sqlval.Int(1), sqlval.Int(2))).
		Query(context.Background(), ex)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.AffectedRows)
}

func TestRun_Dispatch(t *testing.T) {
	ex, mock := newExecutor(t)
	mock.ExpectQuery("SELECT * FROM `t`;").
		WillReturnRows(sqlmock.NewRows([]string{"a"}).AddRow("x"))
	mock.ExpectExec("DELETE FROM `t`;").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := Run(context.Background(), ex, SelectTable("t"))
	require.NoError(t, err)
	assert.Equal(t, KindSelect, res.Kind)
	assert.Equal(t, "SELECT * FROM `t`;", res.SQL)
	assert.Len(t, res.Rows, 1)
	assert.Nil(t, res.Summary)

	res, err = Run(context.Background(), ex, DeleteTable("t"))
	require.NoError(t, err)
	assert.Equal(t, KindDelete, res.Kind)
	require.NotNil(t, res.Summary)
	assert.Equal(t, int64(1), res.Summary.AffectedRows)
	assert.Nil(t, res.Rows)
}
