package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectEntrySQL = `SELECT value FROM kv_entries WHERE map_name = $1 AND key = $2`
	upsertEntrySQL = `INSERT INTO kv_entries (map_name, key, value)`
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresStoreGet(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectEntrySQL)).
		WithArgs("products", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"id":"p1"}`))
	mock.ExpectQuery(regexp.QuoteMeta(selectEntrySQL)).
		WithArgs("products", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, ok, err := s.Get(ctx, MapProducts, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"p1"}`, string(v))

	v, ok, err = s.Get(ctx, MapProducts, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetError(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(selectEntrySQL)).WillReturnError(boom)

	_, ok, err := s.Get(context.Background(), MapProducts, "p1")
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestPostgresStoreCommitInOneTransaction(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(upsertEntrySQL))
	prep.ExpectExec().WithArgs("products", "p1", `{"id":"p1"}`).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("product_list", "all", `["p1"]`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Commit(context.Background(), []Write{
		{Map: MapProducts, Key: "p1", Value: []byte(`{"id":"p1"}`)},
		{Map: MapProductList, Key: "all", Value: []byte(`["p1"]`)},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreCommitRollsBackOnFailure(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	boom := errors.New("value too long")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(upsertEntrySQL))
	prep.ExpectExec().WithArgs("products", "p1", `{"id":"p1"}`).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("product_list", "all", `["p1"]`).WillReturnError(boom)
	mock.ExpectRollback()

	err := s.Commit(context.Background(), []Write{
		{Map: MapProducts, Key: "p1", Value: []byte(`{"id":"p1"}`)},
		{Map: MapProductList, Key: "all", Value: []byte(`["p1"]`)},
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
