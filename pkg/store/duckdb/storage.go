package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const MemoryPath = ":memory:"

const UploadFilesSchema = `
	CREATE TABLE IF NOT EXISTS upload_files (
		table_id VARCHAR NOT NULL,
		file_name VARCHAR NOT NULL,
		row_count INTEGER NOT NULL,
		column_count INTEGER NOT NULL,
		loaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	UploadFilesSchema,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	path := settings.DbPath
	if path == "" {
		path = MemoryPath
	}
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", path, threads), func(exec driver.ExecerContext) error {
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
