package exec

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlb/internal/sqlval"
)

var errConnLost = errors.New("connection lost")

func newMock(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db).WithLogger(quiet), mock
}

func TestQuery_Records(t *testing.T) {
	d, mock := newMock(t)

	mock.ExpectQuery("SELECT `rank`, `user_id` FROM `ranking`;").
		WillReturnRows(sqlmock.NewRows([]string{"rank", "user_id"}).
			AddRow(int64(10), []byte("12")).
			AddRow(int64(23), nil))

	records, err := d.Query(context.Background(), "SELECT `rank`, `user_id` FROM `ranking`;")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, sqlval.NewRecord(
		sqlval.F("rank", sqlval.Int(10)),
		sqlval.F("user_id", sqlval.String("12")),
	), records[0])
	assert.Equal(t, sqlval.NewRecord(
		sqlval.F("rank", sqlval.Int(23)),
		sqlval.F("user_id", sqlval.Null{}),
	), records[1])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_NoRows(t *testing.T) {
	d, mock := newMock(t)
	mock.ExpectQuery("SELECT * FROM `t`;").WillReturnRows(sqlmock.NewRows([]string{"a"}))

	records, err := d.Query(context.Background(), "SELECT * FROM `t`;")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestQuery_AdapterError(t *testing.T) {
	d, mock := newMock(t)
	mock.ExpectQuery("SELECT * FROM `t`;").WillReturnError(errConnLost)

	_, err := d.Query(context.Background(), "SELECT * FROM `t`;")
	require.Error(t, err)

	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, "query", adapterErr.Op)
	assert.Equal(t, "SELECT * FROM `t`;", adapterErr.SQL)
	assert.ErrorIs(t, err, errConnLost)
	assert.Equal(t, "exec: query: connection lost", err.Error())
}

func TestQuery_RowError(t *testing.T) {
	d, mock := newMock(t)
	mock.ExpectQuery("SELECT * FROM `t`;").
		WillReturnRows(sqlmock.NewRows([]string{"a"}).AddRow(int64(1)).RowError(0, errConnLost))

	_, err := d.Query(context.Background(), "SELECT * FROM `t`;")
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.ErrorIs(t, err, errConnLost)
}

func TestExec_Summary(t *testing.T) {
	d, mock := newMock(t)
	mock.ExpectExec("DELETE FROM `t`;").WillReturnResult(sqlmock.NewResult(7, 2))

	sum, err := d.Exec(context.Background(), "DELETE FROM `t`;")
	require.NoError(t, err)
	assert.Equal(t, Summary{AffectedRows: 2, InsertID: 7}, sum)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExec_AdapterError(t *testing.T) {
	d, mock := newMock(t)
	mock.ExpectExec("DELETE FROM `t`;").WillReturnError(errConnLost)

	_, err := d.Exec(context.Background(), "DELETE FROM `t`;")
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, "exec", adapterErr.Op)
	assert.ErrorIs(t, err, errConnLost)
}

func TestExec_ResultError(t *testing.T) {
	d, mock := newMock(t)
	mock.ExpectExec("DELETE FROM `t`;").WillReturnResult(sqlmock.NewErrorResult(errConnLost))

	_, err := d.Exec(context.Background(), "DELETE FROM `t`;")
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.ErrorIs(t, err, errConnLost)
	assert.Contains(t, err.Error(), "rows affected")
}

func TestDB_ImplementsExecutor(t *testing.T) {
	var _ Executor = (*DB)(nil)
}
