package api

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type SummaryStats struct {
	Count                int     `json:"count"`
	Mean                 float64 `json:"mean"`
	StdDev               float64 `json:"std_dev"`
	Min                  float64 `json:"min"`
	MinDate              string  `json:"min_date,omitempty"`
	Max                  float64 `json:"max"`
	MaxDate              string  `json:"max_date,omitempty"`
	Target               float64 `json:"target"`
	BelowTarget          int     `json:"below_target"`
	BelowTargetPct       float64 `json:"below_target_pct"`
	TargetAchievementPct float64 `json:"target_achievement_pct"`
	Empty                bool    `json:"empty"`
}

type DailyPoint struct {
	Date              string  `json:"date"`
	SatisfactionScore float64 `json:"satisfaction_score"`
	IsWeekend         bool    `json:"is_weekend"`
	Month             string  `json:"month"`
	ReportingMonth    string  `json:"reporting_month"`
	MonthShort        string  `json:"month_short"`
	DayName           string  `json:"day_name"`
	Week              int     `json:"week"`
}

type Outliers struct {
	Q1         float64   `json:"q1"`
	Q3         float64   `json:"q3"`
	IQR        float64   `json:"iqr"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
	Indexes    []int     `json:"indexes"`
	Values     []float64 `json:"values"`
	Empty      bool      `json:"empty"`
}

type Timeline struct {
	Month    string       `json:"month"`
	Points   []DailyPoint `json:"points"`
	Stats    SummaryStats `json:"stats"`
	Weekend  SummaryStats `json:"weekend"`
	Weekday  SummaryStats `json:"weekday"`
	Outliers Outliers     `json:"outliers"`
}

type MonthlyAggregate struct {
	Label string       `json:"label"`
	Stats SummaryStats `json:"stats"`
}

type PeriodCard struct {
	Period        string   `json:"period"`
	Score         float64  `json:"score"`
	DeltaVsTarget float64  `json:"delta_vs_target"`
	Risk          Severity `json:"risk"`
}

type MetricAssessment struct {
	Metric          string       `json:"metric"`
	Target          float64      `json:"target"`
	Current         float64      `json:"current"`
	Average         float64      `json:"average"`
	TrendDelta      float64      `json:"trend_delta"`
	Gap             float64      `json:"gap"`
	RiskLevel       Severity     `json:"risk_level"`
	Trend           string       `json:"trend"`
	Priority        Severity     `json:"priority"`
	Periods         []PeriodCard `json:"periods"`
	Recommendations []string     `json:"recommendations"`
}

type PriorityRow struct {
	Metric   string   `json:"metric"`
	Current  float64  `json:"current"`
	Target   float64  `json:"target"`
	Trend    float64  `json:"trend"`
	Gap      float64  `json:"gap"`
	Priority Severity `json:"priority"`
}

type Event struct {
	Date              string   `json:"date"`
	DayOfWeek         string   `json:"day_of_week"`
	FailedMetrics     int      `json:"failed_metrics"`
	TotalMetrics      int      `json:"total_metrics"`
	FailurePercentage float64  `json:"failure_percentage"`
	Promotion         string   `json:"promotion"`
	Severity          Severity `json:"severity"`
}

type EventSummary struct {
	Count         int      `json:"count"`
	AvgFailurePct float64  `json:"avg_failure_pct"`
	CriticalCount int      `json:"critical_count"`
	HighRiskDays  int      `json:"high_risk_days"`
	RiskLevel     Severity `json:"risk_level"`
	Empty         bool     `json:"empty"`
}

type Events struct {
	Events  []Event      `json:"events"`
	Summary EventSummary `json:"summary"`
}
