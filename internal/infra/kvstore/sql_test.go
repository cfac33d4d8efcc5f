package kvstore_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-client/internal/infra/kvstore"
)

func TestSQLStore_Get(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM cache_entries")).
		WithArgs("listing:abc").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"items":[]}`))

	store := kvstore.NewSQLStore(db)
	got, err := store.Get(context.Background(), "listing:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_GetMissing(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM cache_entries")).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	store := kvstore.NewSQLStore(db)
	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Set(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cache_entries")).
		WithArgs("listing:abc", "payload", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := kvstore.NewSQLStore(db)
	err := store.Set(context.Background(), "listing:abc", "payload", 5*time.Minute)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_SetWithoutTTL(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cache_entries")).
		WithArgs("k", "v", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := kvstore.NewSQLStore(db)
	require.NoError(t, store.Set(context.Background(), "k", "v", 0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_DeleteByPrefix(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_entries WHERE key LIKE")).
		WithArgs("listing:").
		WillReturnResult(sqlmock.NewResult(0, 3))

	store := kvstore.NewSQLStore(db)
	removed, err := store.DeleteByPrefix(context.Background(), "listing:")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_entries WHERE expires_at")).
		WillReturnResult(sqlmock.NewResult(0, 7))

	store := kvstore.NewSQLStore(db)
	removed, err := store.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}
