package domain

type DataSource string

const (
	SourceSynthetic DataSource = "synthetic"
	SourceUploaded  DataSource = "uploaded"
)

// ReportContext carries the dataset a view is evaluated against. Daily is
// empty when an uploaded table does not follow the daily-score schema.
type ReportContext struct {
	Source         DataSource
	Daily          []DailyRecord
	Events         []EventRecord
	Catalog        Catalog
	Table          *Table
	Target         float64
	FallbackReason string
}

func (rc ReportContext) Uploaded() bool {
	return rc.Source == SourceUploaded
}

// HasDaily reports whether the daily-score views can be computed.
func (rc ReportContext) HasDaily() bool {
	return len(rc.Daily) > 0
}
