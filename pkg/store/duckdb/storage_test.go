package duckdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootsRegistry(t *testing.T) {
	db, err := NewDB(Settings{DbPath: MemoryPath})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO upload_files (table_id, file_name, row_count, column_count) VALUES (?, ?, ?, ?)`,
		"t1", "scores.csv", 10, 3,
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM upload_files WHERE table_id = ?", "t1").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTransactionContext(t *testing.T) {
	db, err := NewDB(Settings{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	assert.Nil(t, GetTransaction(ctx))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	assert.Same(t, tx, GetTransaction(WithTransaction(ctx, tx)))
}
