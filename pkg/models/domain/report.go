package domain

import "time"

// Report represents a complete analysis report
type Report struct {
	Title       string
	Source      DataSource
	Period      TimePeriod
	Sections    []ReportSection
	Average     float64
	Unit        string
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}

// SummaryRow is one line of the exported summary report.
type SummaryRow struct {
	Metric string
	Value  string
}
