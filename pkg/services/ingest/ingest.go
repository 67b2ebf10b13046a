package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Source is one uploaded file. Name carries the extension that selects the
// parser.
type Source struct {
	Name   string
	Reader io.Reader
}

// Loader parses and concatenates uploaded files. OnFile, when set, is called
// after each file is parsed.
type Loader struct {
	OnFile func(domain.FileInfo)
}

// Load parses sources with a default Loader.
func Load(ctx context.Context, sources ...Source) (*domain.Table, error) {
	return (&Loader{}).Load(ctx, sources...)
}

type sheet struct {
	header []string
	rows   [][]string
}

// Load parses every source and concatenates them by column name. Columns
// keep first-seen order; cells a file does not provide are empty.
func (l *Loader) Load(ctx context.Context, sources ...Source) (*domain.Table, error) {
	if len(sources) == 0 {
		return nil, domain.Unprocessable("ingest", "no files")
	}
	logger := zerolog.Ctx(ctx)

	table := &domain.Table{ID: uuid.NewString()}
	index := make(map[string]int)
	var names []string

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sh, err := parse(src)
		if err != nil {
			return nil, err
		}

		positions := make([]int, len(sh.header))
		for i, name := range sh.header {
			pos, ok := index[name]
			if !ok {
				pos = len(names)
				index[name] = pos
				names = append(names, name)
			}
			positions[i] = pos
		}
		for _, row := range sh.rows {
			table.Rows = append(table.Rows, placeRow(row, positions, len(names)))
		}

		info := domain.FileInfo{Name: src.Name, Rows: len(sh.rows), Columns: len(sh.header)}
		table.Files = append(table.Files, info)
		logger.Debug().
			Str("file", info.Name).
			Int("rows", info.Rows).
			Int("columns", info.Columns).
			Msg("parsed upload")
		if l.OnFile != nil {
			l.OnFile(info)
		}
	}

	if len(table.Rows) == 0 {
		return nil, domain.Unprocessable("ingest", "no data rows")
	}

	// earlier files may be narrower than the final union
	for i, row := range table.Rows {
		if len(row) < len(names) {
			padded := make([]string, len(names))
			copy(padded, row)
			table.Rows[i] = padded
		}
	}
	table.Columns = DetectKinds(names, table.Rows)
	return table, nil
}

func placeRow(row []string, positions []int, width int) []string {
	out := make([]string, width)
	for i, p := range positions {
		if i < len(row) {
			out[p] = strings.TrimSpace(row[i])
		}
	}
	return out
}

func parse(src Source) (sheet, error) {
	var (
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(src.Name)); ext {
	case ".csv":
		records, err = readCSV(src.Reader)
	case ".xlsx", ".xlsm":
		records, err = readXLSX(src.Reader)
	default:
		return sheet{}, domain.Unprocessable("ingest", fmt.Sprintf("%s: unsupported file type %q", src.Name, ext))
	}
	if err != nil {
		return sheet{}, &domain.UnprocessableInputError{Op: "ingest", Reason: src.Name, Err: err}
	}
	if len(records) == 0 {
		return sheet{}, domain.Unprocessable("ingest", src.Name+": empty file")
	}

	header, err := normalizeHeader(records[0])
	if err != nil {
		return sheet{}, &domain.UnprocessableInputError{Op: "ingest", Reason: src.Name, Err: err}
	}
	rows := records[1:]
	for i, row := range rows {
		if len(row) > len(header) && !isBlank(row[len(header):]) {
			return sheet{}, domain.Unprocessable("ingest",
				fmt.Sprintf("%s: row %d has %d cells, header has %d", src.Name, i+2, len(row), len(header)))
		}
	}
	return sheet{header: header, rows: rows}, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read: %w", err)
	}
	return records, nil
}

// readXLSX reads the first sheet. Trailing empty cells are dropped by the
// spreadsheet reader, so short rows are expected and padded later.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx read %s: %w", sheets[0], err)
	}
	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
	}
	return rows, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// normalizeHeader trims names and rejects headers that cannot identify
// columns: all-blank, or repeating a name.
func normalizeHeader(raw []string) ([]string, error) {
	if isBlank(raw) {
		return nil, errors.New("missing header row")
	}
	header := make([]string, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = struct{}{}
		header[i] = name
	}
	return header, nil
}
