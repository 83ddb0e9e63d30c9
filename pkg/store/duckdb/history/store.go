package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/bucket-doctor/pkg/models/store"
	"github.com/de-tools/bucket-doctor/pkg/store/duckdb"
)

// Store persists scan summaries per bucket.
type Store interface {
	Save(ctx context.Context, record store.ScanHistory) error
	SaveAll(ctx context.Context, records []store.ScanHistory) error
	List(ctx context.Context, bucket string, limit int) ([]store.ScanHistory, error)
}

type historyStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &historyStore{db: db}, nil
}

const insertQuery = `
	INSERT INTO scan_history (
		bucket, region, score, health, total, passed, failed, warnings, errors,
		scan_start, scan_end, report
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	)`

// Save joins the transaction carried by ctx, if any.
func (s *historyStore) Save(ctx context.Context, record store.ScanHistory) error {
	if record.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}

	args := []any{
		record.Bucket,
		record.Region,
		record.Score,
		record.Health,
		record.Total,
		record.Passed,
		record.Failed,
		record.Warnings,
		record.Errors,
		record.ScanStart.UTC(),
		record.ScanEnd.UTC(),
		nullableJSON(record.Report),
	}

	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, insertQuery, args...)
	} else {
		_, err = s.db.ExecContext(ctx, insertQuery, args...)
	}
	if err != nil {
		return fmt.Errorf("insert scan history: %w", err)
	}
	return nil
}

// SaveAll stores every record or none of them.
func (s *historyStore) SaveAll(ctx context.Context, records []store.ScanHistory) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	txCtx := duckdb.WithTransaction(ctx, tx)

	for _, record := range records {
		if err := s.Save(txCtx, record); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scan history: %w", err)
	}
	return nil
}

// List returns the newest records first. A non-positive limit returns all.
func (s *historyStore) List(ctx context.Context, bucket string, limit int) ([]store.ScanHistory, error) {
	query := `
		SELECT bucket, region, score, health, total, passed, failed, warnings, errors,
			scan_start, scan_end, CAST(report AS VARCHAR)
		FROM scan_history
		WHERE bucket = ?
		ORDER BY scan_start DESC, id DESC
	`
	args := []any{bucket}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scan history: %w", err)
	}
	defer rows.Close()

	records := make([]store.ScanHistory, 0)
	for rows.Next() {
		var (
			record store.ScanHistory
			region sql.NullString
			report sql.NullString
		)
		if err := rows.Scan(
			&record.Bucket, &region, &record.Score, &record.Health, &record.Total,
			&record.Passed, &record.Failed, &record.Warnings, &record.Errors,
			&record.ScanStart, &record.ScanEnd, &report,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		record.Region = region.String
		if report.Valid {
			record.Report = []byte(report.String)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan history: %w", err)
	}
	return records, nil
}

func nullableJSON(doc []byte) any {
	if len(doc) == 0 {
		return nil
	}
	return string(doc)
}
