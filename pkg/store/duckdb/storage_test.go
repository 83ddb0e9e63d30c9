package duckdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesScanHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	now := time.Now().UTC()
	_, err = db.Exec(
		`INSERT INTO scan_history (bucket, region, score, health, total, passed, failed, warnings, errors, scan_start, scan_end, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"assets", "us-east-1", 92, "HEALTHY", 14, 12, 0, 0, 0, now, now, "{}",
	)
	require.NoError(t, err)

	var count, id int
	err = db.QueryRow("SELECT COUNT(*), MAX(id) FROM scan_history WHERE bucket = ?", "assets").Scan(&count, &id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, id)
}

func TestNewDB_BootIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	for range 2 {
		db, err := NewDB(Settings{DbPath: dbPath})
		require.NoError(t, err)
		require.NoError(t, db.Ping())
		require.NoError(t, db.Close())
	}
}
