package aggregation

import (
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/stat"
)

// Filter selects daily records; Summarize keeps a record only when every
// filter accepts it.
type Filter func(domain.DailyRecord) bool

// ByMonth matches the reporting label ("May-June 2025") or the calendar
// label ("June 2025").
func ByMonth(label string) Filter {
	return func(r domain.DailyRecord) bool {
		return r.MonthLabel == label || r.CalendarMonth == label
	}
}

// Between keeps records dated within [from, to].
func Between(from, to time.Time) Filter {
	return func(r domain.DailyRecord) bool {
		return !r.Date.Before(from) && !r.Date.After(to)
	}
}

func WeekendsOnly(r domain.DailyRecord) bool { return r.IsWeekend }

func WeekdaysOnly(r domain.DailyRecord) bool { return !r.IsWeekend }

// Apply returns the records accepted by all filters, preserving order.
func Apply(records []domain.DailyRecord, filters ...Filter) []domain.DailyRecord {
	if len(filters) == 0 {
		return records
	}
	out := make([]domain.DailyRecord, 0, len(records))
	for _, r := range records {
		if accept(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func accept(r domain.DailyRecord, filters []Filter) bool {
	for _, f := range filters {
		if f != nil && !f(r) {
			return false
		}
	}
	return true
}

// Summarize computes the KPI statistics of the records passing filters.
// Ties on min and max resolve to the earliest record.
func Summarize(records []domain.DailyRecord, target float64, filters ...Filter) domain.SummaryStats {
	selected := Apply(records, filters...)
	stats := domain.SummaryStats{Target: target, Count: len(selected)}
	if len(selected) == 0 {
		stats.Empty = true
		return stats
	}

	for i, r := range selected {
		score := r.SatisfactionScore
		if i == 0 || score < stats.Min {
			stats.Min, stats.MinDate = score, r.Date
		}
		if i == 0 || score > stats.Max {
			stats.Max, stats.MaxDate = score, r.Date
		}
		if score < target {
			stats.BelowTarget++
		}
	}

	scores := domain.Scores(selected)
	n := float64(stats.Count)
	stats.Mean = stat.Mean(scores, nil)
	stats.StdDev = stdDev(scores)
	stats.BelowTargetPct = float64(stats.BelowTarget) / n * 100
	stats.TargetAchievementPct = float64(stats.Count-stats.BelowTarget) / n * 100
	return stats
}

// stdDev is the sample (n-1) standard deviation; it is zero below two values.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// GroupByMonth partitions records by reporting month in first-seen order and
// summarizes each partition.
func GroupByMonth(records []domain.DailyRecord, target float64) []domain.MonthlyAggregate {
	var (
		order  []string
		groups = make(map[string][]domain.DailyRecord)
	)
	for _, r := range records {
		if _, ok := groups[r.MonthLabel]; !ok {
			order = append(order, r.MonthLabel)
		}
		groups[r.MonthLabel] = append(groups[r.MonthLabel], r)
	}

	out := make([]domain.MonthlyAggregate, 0, len(order))
	for _, label := range order {
		out = append(out, domain.MonthlyAggregate{
			Label: label,
			Stats: Summarize(groups[label], target),
		})
	}
	return out
}

// MonthLabels lists the distinct calendar months of records in order.
func MonthLabels(records []domain.DailyRecord) []string {
	var labels []string
	seen := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seen[r.CalendarMonth]; ok {
			continue
		}
		seen[r.CalendarMonth] = struct{}{}
		labels = append(labels, r.CalendarMonth)
	}
	return labels
}
