package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	platformsqlite "github.com/Apurer/petcare-reminders/internal/platform/sqlite"
)

func TestDocumentStore_RoundTripOnDisk(t *testing.T) {
	ctx := context.Background()
	db, err := platformsqlite.Open(ctx, filepath.Join(t.TempDir(), "data", "petcare.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewDocumentStore(ctx, db)
	require.NoError(t, err)

	missing, err := store.Get(ctx, "petcare.reminders")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, store.Set(ctx, "petcare.reminders", []byte(`[{"id":"a"}]`)))
	require.NoError(t, store.Set(ctx, "petcare.reminders", []byte(`[{"id":"b"}]`)))

	got, err := store.Get(ctx, "petcare.reminders")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"b"}]`, string(got))
}

func TestDocumentStore_SQL(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS documents`).WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewDocumentStore(ctx, db)
	require.NoError(t, err)
	store.now = func() time.Time { return time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC) }

	mock.ExpectQuery(`SELECT value FROM documents WHERE key = \?`).
		WithArgs("petcare.reminders").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	got, err := store.Get(ctx, "petcare.reminders")
	require.NoError(t, err)
	require.Nil(t, got)

	mock.ExpectExec(`INSERT INTO documents \(key, value, updated_at\)`).
		WithArgs("petcare.reminders", `[]`, "2024-03-01T08:00:00Z").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, store.Set(ctx, "petcare.reminders", []byte(`[]`)))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_PropagatesDriverErrors(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS documents`).WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewDocumentStore(ctx, db)
	require.NoError(t, err)

	diskIO := errors.New("disk I/O error")
	mock.ExpectQuery(`SELECT value FROM documents`).WillReturnError(diskIO)
	_, err = store.Get(ctx, "petcare.reminders")
	require.ErrorIs(t, err, diskIO)

	mock.ExpectExec(`INSERT INTO documents`).WillReturnError(diskIO)
	require.ErrorIs(t, store.Set(ctx, "petcare.reminders", []byte(`[]`)), diskIO)

	require.NoError(t, mock.ExpectationsWereMet())
}
