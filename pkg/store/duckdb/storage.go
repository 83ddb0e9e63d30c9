package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ScanHistorySequence = `CREATE SEQUENCE IF NOT EXISTS scan_history_id START 1;`

const ScanHistorySchema = `
	CREATE TABLE IF NOT EXISTS scan_history (
		id BIGINT PRIMARY KEY DEFAULT nextval('scan_history_id'),
		bucket VARCHAR NOT NULL,
		region VARCHAR,
		score INTEGER NOT NULL,
		health VARCHAR NOT NULL,
		total INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		scan_start TIMESTAMP NOT NULL,
		scan_end TIMESTAMP NOT NULL,
		report JSON
	);
`

const ScanHistoryIndex = `CREATE INDEX IF NOT EXISTS scan_history_bucket_idx ON scan_history (bucket, scan_start);`

var bootQueries = []string{
	ScanHistorySequence,
	ScanHistorySchema,
	ScanHistoryIndex,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
