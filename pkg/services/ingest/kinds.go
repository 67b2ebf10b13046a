package ingest

import (
	"strings"
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
)

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"01-02-06",
	"2006-01",
}

// ParseDate accepts the date layouts found in exported spreadsheets.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DetectKinds tags each column once. Blank, NaN and infinite cells are
// missing and do not vote. A column is numeric when every other cell parses
// as a number, temporal when every non-empty cell
// non-missing cell parses as a date, and categorical otherwise, including
// when nothing is left.
func DetectKinds(names []string, rows [][]string) []domain.Column {
	columns := make([]domain.Column, len(names))
	for i, name := range names {
		columns[i] = domain.Column{Name: name, Kind: detect(rows, i)}
	}
	return columns
}

func detect(rows [][]string, col int) domain.ColumnKind {
	numeric, temporal, seen := true, true, false
	for _, row := range rows {
		if col >= len(row) || domain.IsMissing(row[col]) {
			continue
		}
		seen = true
		cell := row[col]
		if numeric {
			if _, ok := domain.ParseNumber(cell); !ok {
				numeric = false
			}
		}
		if temporal {
			if _, ok := ParseDate(cell); !ok {
				temporal = false
			}
		}
		if !numeric && !temporal {
			break
		}
	}
	switch {
	case !seen:
		return domain.ColumnCategorical
	case numeric:
		return domain.ColumnNumeric
	case temporal:
		return domain.ColumnTemporal
	default:
		return domain.ColumnCategorical
	}
}
