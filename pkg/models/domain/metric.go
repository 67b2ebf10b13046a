package domain

// MetricSeries holds one sub-metric's average score per reporting period.
type MetricSeries struct {
	Name   string
	Scores []float64
	Target float64
}

// Catalog is the canonical per-metric score table.
type Catalog struct {
	Periods         []string
	Metrics         []MetricSeries
	Recommendations map[string][]string
}

func (c Catalog) Metric(name string) (MetricSeries, bool) {
	for _, m := range c.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return MetricSeries{}, false
}

func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Metrics))
	for _, m := range c.Metrics {
		names = append(names, m.Name)
	}
	return names
}

type Trend string

const (
	TrendImproving Trend = "Improving"
	TrendDeclining Trend = "Declining"
	TrendStable    Trend = "Stable"
)

type RiskClassification struct {
	Gap   float64
	Level Severity
	Trend Trend
}

// MetricRow is the input of priority ranking.
type MetricRow struct {
	Metric  string
	Current float64
	Target  float64
	Trend   float64
}

type PriorityRow struct {
	MetricRow
	Gap      float64
	Priority Severity
}

type PeriodCard struct {
	Period        string
	Score         float64
	DeltaVsTarget float64
	Risk          Severity
}

type MetricAssessment struct {
	Metric          string
	Target          float64
	Current         float64
	Average         float64
	TrendDelta      float64
	Risk            RiskClassification
	Priority        Severity
	Periods         []PeriodCard
	Recommendations []string
}
