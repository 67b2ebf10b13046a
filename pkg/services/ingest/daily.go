package ingest

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
)

const (
	DateColumn  = "date"
	ScoreColumn = "satisfaction_score"
)

// ToDailyRecords converts a table following the daily-score schema into
// records sorted by date. Rows missing either value are skipped.
func ToDailyRecords(t *domain.Table) ([]domain.DailyRecord, error) {
	dateCol, err := requireColumn(t, DateColumn, domain.ColumnTemporal)
	if err != nil {
		return nil, err
	}
	scoreCol, err := requireColumn(t, ScoreColumn, domain.ColumnNumeric)
	if err != nil {
		return nil, err
	}

	var records []domain.DailyRecord
	for row := range t.Rows {
		date, ok := ParseDate(t.Cell(row, dateCol))
		if !ok {
			continue
		}
		score, ok := domain.ParseNumber(t.Cell(row, scoreCol))
		if !ok {
			continue
		}
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		records = append(records, domain.NewDailyRecord(day, score))
	}
	if len(records) == 0 {
		return nil, domain.Unprocessable("daily records", "no rows with both date and score")
	}

	slices.SortStableFunc(records, func(a, b domain.DailyRecord) int {
		return a.Date.Compare(b.Date)
	})
	return records, nil
}

func requireColumn(t *domain.Table, name string, kind domain.ColumnKind) (int, error) {
	for i, c := range t.Columns {
		if !strings.EqualFold(c.Name, name) {
			continue
		}
		if c.Kind != kind {
			return -1, domain.Unprocessable("daily records", fmt.Sprintf("column %q is %s, want %s", c.Name, c.Kind, kind))
		}
		return i, nil
	}
	return -1, domain.Unprocessable("daily records", fmt.Sprintf("missing column %q", name))
}
