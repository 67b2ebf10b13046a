package tables

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/store/duckdb"
)

// Store mirrors uploaded tables into DuckDB so grouped aggregates run in SQL.
type Store interface {
	Load(ctx context.Context, table *domain.Table) error
	GroupStats(ctx context.Context, tableID, groupBy, value string) ([]domain.GroupStat, error)
	Drop(ctx context.Context, tableID string) error
}

type tableStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &tableStore{db: db}, nil
}

var tableIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// TableName maps a table id to its DuckDB relation name.
func TableName(tableID string) (string, error) {
	if !tableIDPattern.MatchString(tableID) {
		return "", fmt.Errorf("invalid table id %q", tableID)
	}
	return "upload_" + strings.ReplaceAll(tableID, "-", "_"), nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Load creates the relation for table and inserts its rows. It joins the
// transaction carried by ctx, or runs in its own.
func (s *tableStore) Load(ctx context.Context, table *domain.Table) error {
	name, err := TableName(table.ID)
	if err != nil {
		return err
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", table.ID)
	}

	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return s.load(ctx, tx, name, table)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := s.load(ctx, tx, name, table); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *tableStore) load(ctx context.Context, exec execer, name string, table *domain.Table) error {
	defs := make([]string, len(table.Columns))
	cols := make([]string, len(table.Columns))
	marks := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		typ := "VARCHAR"
		if c.Kind == domain.ColumnNumeric {
			typ = "DOUBLE"
		}
		cols[i] = quoteIdent(c.Name)
		defs[i] = cols[i] + " " + typ
		marks[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))
	if _, err := exec.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", name, strings.Join(cols, ", "), strings.Join(marks, ", "))
	stmt, err := exec.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(table.Columns))
	for row := range table.Rows {
		for col, c := range table.Columns {
			args[col] = cellValue(table.Cell(row, col), c.Kind)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", row, err)
		}
	}

	for _, f := range table.Files {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO upload_files (table_id, file_name, row_count, column_count) VALUES (?, ?, ?, ?)`,
			table.ID, f.Name, f.Rows, f.Columns,
		)
		if err != nil {
			return fmt.Errorf("register file %s: %w", f.Name, err)
		}
	}
	return nil
}

func cellValue(cell string, kind domain.ColumnKind) any {
	if cell == "" {
		return nil
	}
	if kind == domain.ColumnNumeric {
		v, ok := domain.ParseNumber(cell)
		if !ok {
			return nil
		}
		return v
	}
	return cell
}

// GroupStats returns mean, count and sample standard deviation of value per
// distinct non-null groupBy, ordered by group.
func (s *tableStore) GroupStats(ctx context.Context, tableID, groupBy, value string) ([]domain.GroupStat, error) {
	name, err := TableName(tableID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			CAST(%[1]s AS VARCHAR) AS grp,
			avg(%[2]s) AS mean,
			count(%[2]s) AS cnt,
			coalesce(stddev_samp(%[2]s), 0) AS std
		FROM %[3]s
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
		ORDER BY grp`, quoteIdent(groupBy), quoteIdent(value), name)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query group stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.GroupStat
	for rows.Next() {
		var (
			stat domain.GroupStat
			mean sql.NullFloat64
		)
		if err := rows.Scan(&stat.Group, &mean, &stat.Count, &stat.StdDev); err != nil {
			return nil, fmt.Errorf("scan group stats: %w", err)
		}
		stat.Mean = mean.Float64
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group stats: %w", err)
	}
	return stats, nil
}

func (s *tableStore) Drop(ctx context.Context, tableID string) error {
	name, err := TableName(tableID)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM upload_files WHERE table_id = ?`, tableID); err != nil {
		return fmt.Errorf("unregister files: %w", err)
	}
	return nil
}
