package aggregation

import (
	"cmp"
	"slices"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var (
	highRiskGap   = decimal.RequireFromString("0.5")
	mediumRiskGap = decimal.RequireFromString("0.2")
	trendBand     = decimal.RequireFromString("0.1")

	priorityCriticalGap = decimal.RequireFromString("0.5")
	priorityHighGap     = decimal.RequireFromString("0.3")
	priorityMediumGap   = decimal.RequireFromString("0.1")
	priorityHighTrend   = decimal.RequireFromString("-0.2")
	priorityTrend       = decimal.RequireFromString("-0.1")
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func gapOf(current, target float64) decimal.Decimal {
	return dec(target).Sub(dec(current))
}

// ClassifyRisk grades the gap target-current (> 0.5 High, > 0.2 Medium) and
// labels the trend against a +/-0.1 deadband. All comparisons are strict.
func ClassifyRisk(current, target, trendDelta float64) domain.RiskClassification {
	gap := gapOf(current, target)
	return domain.RiskClassification{
		Gap:   gap.InexactFloat64(),
		Level: riskLevel(gap),
		Trend: trendLabel(dec(trendDelta)),
	}
}

func riskLevel(gap decimal.Decimal) domain.Severity {
	switch {
	case gap.GreaterThan(highRiskGap):
		return domain.SeverityHigh
	case gap.GreaterThan(mediumRiskGap):
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

func trendLabel(delta decimal.Decimal) domain.Trend {
	switch {
	case delta.GreaterThan(trendBand):
		return domain.TrendImproving
	case delta.LessThan(trendBand.Neg()):
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// TrendDelta is the last score minus the first; zero for fewer than two.
func TrendDelta(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	return dec(scores[len(scores)-1]).Sub(dec(scores[0])).InexactFloat64()
}

// Priority combines gap and trend into four tiers.
func Priority(row domain.MetricRow) domain.Severity {
	gap := gapOf(row.Current, row.Target)
	trend := dec(row.Trend)
	switch {
	case gap.GreaterThan(priorityCriticalGap) && trend.LessThan(priorityTrend):
		return domain.SeverityCritical
	case gap.GreaterThan(priorityHighGap) || trend.LessThan(priorityHighTrend):
		return domain.SeverityHigh
	case gap.GreaterThan(priorityMediumGap) || trend.LessThan(priorityTrend):
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// RankPriority orders rows by priority, most urgent first. Rows of equal
// priority keep their input order.
func RankPriority(rows []domain.MetricRow) []domain.PriorityRow {
	out := make([]domain.PriorityRow, len(rows))
	for i, r := range rows {
		out[i] = domain.PriorityRow{
			MetricRow: r,
			Gap:       gapOf(r.Current, r.Target).InexactFloat64(),
			Priority:  Priority(r),
		}
	}
	slices.SortStableFunc(out, func(a, b domain.PriorityRow) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return out
}

// MetricRows evaluates every series at its latest period against its
// whole-series trend.
func MetricRows(series []domain.MetricSeries) []domain.MetricRow {
	rows := make([]domain.MetricRow, 0, len(series))
	for _, s := range series {
		if len(s.Scores) == 0 {
			continue
		}
		rows = append(rows, domain.MetricRow{
			Metric:  s.Name,
			Current: s.Scores[len(s.Scores)-1],
			Target:  s.Target,
			Trend:   TrendDelta(s.Scores),
		})
	}
	return rows
}

// AssessMetric builds the risk view of one series. periods labels the scores
// positionally.
func AssessMetric(series domain.MetricSeries, periods []string, recommendations []string) domain.MetricAssessment {
	a := domain.MetricAssessment{
		Metric:          series.Name,
		Target:          series.Target,
		Recommendations: recommendations,
	}
	if len(series.Scores) == 0 {
		return a
	}

	sum := decimal.Zero
	for _, s := range series.Scores {
		sum = sum.Add(dec(s))
	}
	a.Current = series.Scores[len(series.Scores)-1]
	a.Average = sum.Div(decimal.NewFromInt(int64(len(series.Scores)))).InexactFloat64()
	a.TrendDelta = TrendDelta(series.Scores)
	a.Risk = ClassifyRisk(a.Current, series.Target, a.TrendDelta)
	a.Priority = Priority(domain.MetricRow{
		Metric:  series.Name,
		Current: a.Current,
		Target:  series.Target,
		Trend:   a.TrendDelta,
	})

	for i, score := range series.Scores {
		label := ""
		if i < len(periods) {
			label = periods[i]
		}
		a.Periods = append(a.Periods, domain.PeriodCard{
			Period:        label,
			Score:         score,
			DeltaVsTarget: dec(score).Sub(dec(series.Target)).InexactFloat64(),
			Risk:          riskLevel(gapOf(score, series.Target)),
		})
	}
	return a
}
