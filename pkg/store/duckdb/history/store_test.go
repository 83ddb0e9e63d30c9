package history

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/bucket-doctor/pkg/models/store"
	"github.com/de-tools/bucket-doctor/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: s,
	}
}

func record(bucket string, score int, start time.Time) store.ScanHistory {
	return store.ScanHistory{
		Bucket:    bucket,
		Region:    "us-east-1",
		Score:     score,
		Health:    "GOOD",
		Total:     14,
		Passed:    10,
		Failed:    1,
		Warnings:  2,
		Errors:    0,
		ScanStart: start,
		ScanEnd:   start.Add(3 * time.Second),
		Report:    []byte(`{"bucket_name":"` + bucket + `"}`),
	}
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		s, err := NewStore(nil)
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestStore_SaveAndList(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, f.store.Save(ctx, record("assets", 60, base)))
	require.NoError(t, f.store.Save(ctx, record("assets", 75, base.Add(time.Hour))))
	require.NoError(t, f.store.Save(ctx, record("assets", 92, base.Add(2*time.Hour))))
	require.NoError(t, f.store.Save(ctx, record("logs", 40, base)))

	t.Run("newest first", func(t *testing.T) {
		records, err := f.store.List(ctx, "assets", 0)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []int{92, 75, 60}, []int{records[0].Score, records[1].Score, records[2].Score})
		assert.Equal(t, base.Add(2*time.Hour), records[0].ScanStart.UTC())
		assert.JSONEq(t, `{"bucket_name":"assets"}`, string(records[0].Report))
		assert.Equal(t, "us-east-1", records[0].Region)
		assert.Equal(t, 2, records[0].Warnings)
	})

	t.Run("limit", func(t *testing.T) {
		records, err := f.store.List(ctx, "assets", 2)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("unknown bucket", func(t *testing.T) {
		records, err := f.store.List(ctx, "missing", 5)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestStore_Save_RequiresBucket(t *testing.T) {
	f := setupFixture(t)

	err := f.store.Save(context.Background(), store.ScanHistory{})

	assert.Error(t, err)
}

func TestStore_SaveAll(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := f.store.SaveAll(ctx, []store.ScanHistory{record("a", 50, base), record("b", 70, base)})
	require.NoError(t, err)

	for _, bucket := range []string{"a", "b"} {
		records, err := f.store.List(ctx, bucket, 0)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	}

	assert.NoError(t, f.store.SaveAll(ctx, nil))
}

func TestStore_SaveAll_RollsBackOnFailure(t *testing.T) {
	// Given: the second insert fails
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO scan_history").
		WithArgs("a", "us-east-1", 50, "GOOD", 14, 10, 1, 2, 0, base, base.Add(3*time.Second), `{"bucket_name":"a"}`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO scan_history").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s, err := NewStore(db)
	require.NoError(t, err)

	// When
	err = s.SaveAll(context.Background(), []store.ScanHistory{record("a", 50, base), record("b", 70, base)})

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM scan_history").
		WithArgs("assets", 3).
		WillReturnError(errors.New("connection reset"))

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.List(context.Background(), "assets", 3)

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
