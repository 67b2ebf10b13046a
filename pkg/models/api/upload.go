package api

type FileInfo struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

type Column struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type Completeness struct {
	Rows         int     `json:"rows"`
	Columns      int     `json:"columns"`
	Cells        int     `json:"cells"`
	Missing      int     `json:"missing"`
	Pct          float64 `json:"pct"`
	UniqueValues int     `json:"unique_values"`
}

type UploadOverview struct {
	TableID        string       `json:"table_id"`
	Files          []FileInfo   `json:"files"`
	Records        int          `json:"records"`
	Columns        int          `json:"columns"`
	NumericColumns int          `json:"numeric_columns"`
	AverageNumeric *float64     `json:"average_numeric"`
	Completeness   Completeness `json:"completeness"`
}

type Overview struct {
	Source         string          `json:"source"`
	FallbackReason string          `json:"fallback_reason,omitempty"`
	Daily          *SummaryStats   `json:"daily,omitempty"`
	Events         *EventSummary   `json:"events,omitempty"`
	Upload         *UploadOverview `json:"upload,omitempty"`
}

type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Correlation carries null for pairs without a defined coefficient.
type Correlation struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

type VariabilityRow struct {
	Column    string   `json:"column"`
	Mean      float64  `json:"mean"`
	StdDev    float64  `json:"std_dev"`
	CV        float64  `json:"cv"`
	RiskLevel Severity `json:"risk_level"`
}

type GroupStat struct {
	Group  string  `json:"group"`
	Mean   float64 `json:"mean"`
	Count  int     `json:"count"`
	StdDev float64 `json:"std_dev"`
}

type UploadAnalysis struct {
	TableID      string           `json:"table_id"`
	Files        []FileInfo       `json:"files"`
	Columns      []Column         `json:"columns"`
	Describe     []ColumnSummary  `json:"describe"`
	Completeness Completeness     `json:"completeness"`
	Correlation  *Correlation     `json:"correlation,omitempty"`
	Variability  []VariabilityRow `json:"variability"`
	Groups       []GroupStat      `json:"groups,omitempty"`
	Notes        []string         `json:"notes,omitempty"`
}

// UploadResponse answers an upload. Error is set, with a 422 status, when
// the upload could not be used; Overview then describes the fallback data.
type UploadResponse struct {
	Overview Overview        `json:"overview"`
	Analysis *UploadAnalysis `json:"analysis,omitempty"`
	Error    string          `json:"error,omitempty"`
}
