package dashboard

import "github.com/de-tools/csat-atlas/pkg/models/domain"

// AllMonths disables the month filter of the timeline.
const AllMonths = "All Months"

type Overview struct {
	Source         domain.DataSource
	FallbackReason string
	// Daily is set whenever the context carries daily scores.
	Daily  *domain.SummaryStats
	Events *domain.EventSummary
	Upload *UploadOverview
}

type UploadOverview struct {
	TableID        string
	Files          []domain.FileInfo
	Records        int
	Columns        int
	NumericColumns int
	// AverageNumeric is the mean of numeric column means; HasAverage is false
	// when no numeric column holds a value.
	AverageNumeric float64
	HasAverage     bool
	Completeness   domain.Completeness
}

type Timeline struct {
	Month    string
	Points   []domain.DailyRecord
	Stats    domain.SummaryStats
	Weekend  domain.SummaryStats
	Weekday  domain.SummaryStats
	Outliers domain.OutlierResult
}

type EventsView struct {
	Events  []domain.EventRecord
	Summary domain.EventSummary
}

type GroupRequest struct {
	GroupBy string
	Value   string
}

type UploadAnalysis struct {
	TableID      string
	Files        []domain.FileInfo
	Columns      []domain.Column
	Describe     []domain.ColumnSummary
	Completeness domain.Completeness
	Correlation  *domain.CorrelationMatrix
	Variability  []domain.VariabilityRow
	Groups       []domain.GroupStat
	// Notes explains sections left empty because the table lacks the
	// column kinds they need.
	Notes []string
}
