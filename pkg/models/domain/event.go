package domain

import "time"

// EventRecord is a row of the critical-events reference table.
type EventRecord struct {
	Date          time.Time
	FailedMetrics int
	TotalMetrics  int
	Promotion     string
	Severity      Severity
}

// DayOfWeek is always derived from Date.
func (e EventRecord) DayOfWeek() string {
	return e.Date.Weekday().String()
}

func (e EventRecord) FailurePercentage() float64 {
	if e.TotalMetrics == 0 {
		return 0
	}
	return float64(e.FailedMetrics) / float64(e.TotalMetrics) * 100
}

type EventSort string

const (
	EventSortDate     EventSort = "date"
	EventSortFailure  EventSort = "failure_percentage"
	EventSortSeverity EventSort = "severity"
)

type EventFilter struct {
	MinFailurePct float64
	Severities    []Severity // empty means all
	SortBy        EventSort
}

type EventSummary struct {
	Count         int
	AvgFailurePct float64
	CriticalCount int
	HighRiskDays  int
	RiskLevel     Severity
	Empty         bool
}
