package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
)

// Dataset is a named rectangular table ready for serialization. Cells hold
// string, float64, int or bool values.
type Dataset struct {
	Name    string
	Headers []string
	Rows    [][]any
}

const (
	DailyDataset   = "daily_data"
	EventsDataset  = "events_data"
	SummaryDataset = "summary_report"
	UploadDataset  = "uploaded_data"
)

// Daily lays out the daily series with its derived columns.
func Daily(records []domain.DailyRecord) Dataset {
	ds := Dataset{
		Name:    DailyDataset,
		Headers: []string{"date", "satisfaction_score", "month", "month_short", "day_name", "is_weekend", "week"},
		Rows:    make([][]any, 0, len(records)),
	}
	for _, r := range records {
		ds.Rows = append(ds.Rows, []any{
			r.Date.Format(time.DateOnly),
			r.SatisfactionScore,
			r.CalendarMonth,
			r.MonthShort,
			r.DayName,
			r.IsWeekend,
			r.ISOWeek,
		})
	}
	return ds
}

func Events(events []domain.EventRecord) Dataset {
	ds := Dataset{
		Name:    EventsDataset,
		Headers: []string{"date", "day_of_week", "failed_metrics", "failure_percentage", "promotion", "severity"},
		Rows:    make([][]any, 0, len(events)),
	}
	for _, e := range events {
		ds.Rows = append(ds.Rows, []any{
			e.Date.Format(time.DateOnly),
			e.DayOfWeek(),
			fmt.Sprintf("%d/%d", e.FailedMetrics, e.TotalMetrics),
			e.FailurePercentage(),
			e.Promotion,
			e.Severity.String(),
		})
	}
	return ds
}

func Summary(rows []domain.SummaryRow) Dataset {
	ds := Dataset{
		Name:    SummaryDataset,
		Headers: []string{"Metric", "Value"},
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		ds.Rows = append(ds.Rows, []any{r.Metric, r.Value})
	}
	return ds
}

// Table re-emits an uploaded table. Numeric cells are written as numbers.
func Table(t *domain.Table) Dataset {
	ds := Dataset{
		Name:    UploadDataset,
		Headers: make([]string, len(t.Columns)),
		Rows:    make([][]any, 0, len(t.Rows)),
	}
	for i, c := range t.Columns {
		ds.Headers[i] = c.Name
	}
	for row := range t.Rows {
		out := make([]any, len(t.Columns))
		for col, c := range t.Columns {
			cell := t.Cell(row, col)
			out[col] = cell
			if c.Kind == domain.ColumnNumeric {
				if v, ok := domain.ParseNumber(cell); ok {
					out[col] = v
				} else {
					out[col] = ""
				}
			}
		}
		ds.Rows = append(ds.Rows, out)
	}
	return ds
}

// FileName builds download names such as daily_data_20251015.csv.
func FileName(dataset string, now time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", dataset, now.Format("20060102"), ext)
}

func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case bool:
		if c {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(c)
	}
}
