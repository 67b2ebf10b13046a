package domain

import (
	"fmt"
	"time"
)

// DailyRecord is one day of the satisfaction series. Build it with
// NewDailyRecord so that the derived fields always agree with Date.
type DailyRecord struct {
	Date              time.Time
	SatisfactionScore float64
	IsWeekend         bool
	MonthLabel        string // reporting period, May and June merged
	CalendarMonth     string // "June 2025"
	MonthShort        string // "Jun"
	DayName           string // "Monday"
	ISOWeek           int
}

func NewDailyRecord(date time.Time, score float64) DailyRecord {
	_, week := date.ISOWeek()
	return DailyRecord{
		Date:              date,
		SatisfactionScore: score,
		IsWeekend:         IsWeekend(date),
		MonthLabel:        ReportingMonth(date),
		CalendarMonth:     date.Format("January 2006"),
		MonthShort:        date.Format("Jan"),
		DayName:           date.Weekday().String(),
		ISOWeek:           week,
	}
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ReportingMonth returns the grouping key for monthly aggregates.
func ReportingMonth(date time.Time) string {
	switch date.Month() {
	case time.May, time.June:
		return fmt.Sprintf("May-June %d", date.Year())
	default:
		return date.Format("January 2006")
	}
}

// Scores extracts the satisfaction scores in record order.
func Scores(records []DailyRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.SatisfactionScore
	}
	return out
}
