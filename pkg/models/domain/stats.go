package domain

import "time"

// SummaryStats describes a set of daily scores. Empty is set when no record
// matched; every other field is then zero.
type SummaryStats struct {
	Count                int
	Mean                 float64
	StdDev               float64 // sample standard deviation
	Min                  float64
	MinDate              time.Time
	Max                  float64
	MaxDate              time.Time
	Target               float64
	BelowTarget          int
	BelowTargetPct       float64
	TargetAchievementPct float64
	Empty                bool
}

type MonthlyAggregate struct {
	Label string
	Stats SummaryStats
}

type OutlierResult struct {
	Q1         float64
	Q3         float64
	IQR        float64
	LowerBound float64
	UpperBound float64
	Indexes    []int // positions in the input sequence
	Values     []float64
	Empty      bool
}

type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

type Completeness struct {
	Rows         int
	Columns      int
	Cells        int
	Missing      int
	Pct          float64
	UniqueValues int
}

type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64 // NaN when a pair has fewer than two observations
}

type VariabilityRow struct {
	Column    string
	Mean      float64
	StdDev    float64
	CV        float64
	RiskLevel Severity
}

type GroupStat struct {
	Group  string
	Mean   float64
	Count  int
	StdDev float64 // zero for single-row groups
}
