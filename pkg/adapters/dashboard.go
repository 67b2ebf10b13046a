package adapters

import (
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/api"
	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/dashboard"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityLow:
		return api.SeverityLow
	case domain.SeverityMedium:
		return api.SeverityMedium
	case domain.SeverityHigh:
		return api.SeverityHigh
	case domain.SeverityCritical:
		return api.SeverityCritical
	default:
		return api.SeverityLow
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func MapSummaryStatsDomainToApi(s domain.SummaryStats) api.SummaryStats {
	return api.SummaryStats{
		Count:                s.Count,
		Mean:                 s.Mean,
		StdDev:               s.StdDev,
		Min:                  s.Min,
		MinDate:              formatDate(s.MinDate),
		Max:                  s.Max,
		MaxDate:              formatDate(s.MaxDate),
		Target:               s.Target,
		BelowTarget:          s.BelowTarget,
		BelowTargetPct:       s.BelowTargetPct,
		TargetAchievementPct: s.TargetAchievementPct,
		Empty:                s.Empty,
	}
}

func MapDailyRecordDomainToApi(r domain.DailyRecord) api.DailyPoint {
	return api.DailyPoint{
		Date:              formatDate(r.Date),
		SatisfactionScore: r.SatisfactionScore,
		IsWeekend:         r.IsWeekend,
		Month:             r.CalendarMonth,
		ReportingMonth:    r.MonthLabel,
		MonthShort:        r.MonthShort,
		DayName:           r.DayName,
		Week:              r.ISOWeek,
	}
}

func MapOutliersDomainToApi(o domain.OutlierResult) api.Outliers {
	res := api.Outliers{
		Q1:         o.Q1,
		Q3:         o.Q3,
		IQR:        o.IQR,
		LowerBound: o.LowerBound,
		UpperBound: o.UpperBound,
		Indexes:    []int{},
		Values:     []float64{},
		Empty:      o.Empty,
	}
	res.Indexes = append(res.Indexes, o.Indexes...)
	res.Values = append(res.Values, o.Values...)
	return res
}

func MapTimelineDomainToApi(tl dashboard.Timeline) api.Timeline {
	res := api.Timeline{
		Month:    tl.Month,
		Points:   make([]api.DailyPoint, 0, len(tl.Points)),
		Stats:    MapSummaryStatsDomainToApi(tl.Stats),
		Weekend:  MapSummaryStatsDomainToApi(tl.Weekend),
		Weekday:  MapSummaryStatsDomainToApi(tl.Weekday),
		Outliers: MapOutliersDomainToApi(tl.Outliers),
	}
	for _, p := range tl.Points {
		res.Points = append(res.Points, MapDailyRecordDomainToApi(p))
	}
	return res
}

func MapMonthlyAggregatesDomainToApi(months []domain.MonthlyAggregate) []api.MonthlyAggregate {
	res := make([]api.MonthlyAggregate, 0, len(months))
	for _, m := range months {
		res = append(res, api.MonthlyAggregate{Label: m.Label, Stats: MapSummaryStatsDomainToApi(m.Stats)})
	}
	return res
}

func MapMetricAssessmentDomainToApi(a domain.MetricAssessment) api.MetricAssessment {
	res := api.MetricAssessment{
		Metric:          a.Metric,
		Target:          a.Target,
		Current:         a.Current,
		Average:         a.Average,
		TrendDelta:      a.TrendDelta,
		Gap:             a.Risk.Gap,
		RiskLevel:       MapSeverityDomainToApi(a.Risk.Level),
		Trend:           string(a.Risk.Trend),
		Priority:        MapSeverityDomainToApi(a.Priority),
		Periods:         make([]api.PeriodCard, 0, len(a.Periods)),
		Recommendations: []string{},
	}
	for _, p := range a.Periods {
		res.Periods = append(res.Periods, api.PeriodCard{
			Period:        p.Period,
			Score:         p.Score,
			DeltaVsTarget: p.DeltaVsTarget,
			Risk:          MapSeverityDomainToApi(p.Risk),
		})
	}
	res.Recommendations = append(res.Recommendations, a.Recommendations...)
	return res
}

func MapMetricAssessmentsDomainToApi(as []domain.MetricAssessment) []api.MetricAssessment {
	res := make([]api.MetricAssessment, 0, len(as))
	for _, a := range as {
		res = append(res, MapMetricAssessmentDomainToApi(a))
	}
	return res
}

func MapPriorityRowsDomainToApi(rows []domain.PriorityRow) []api.PriorityRow {
	res := make([]api.PriorityRow, 0, len(rows))
	for _, r := range rows {
		res = append(res, api.PriorityRow{
			Metric:   r.Metric,
			Current:  r.Current,
			Target:   r.Target,
			Trend:    r.Trend,
			Gap:      r.Gap,
			Priority: MapSeverityDomainToApi(r.Priority),
		})
	}
	return res
}

func MapEventDomainToApi(e domain.EventRecord) api.Event {
	return api.Event{
		Date:              formatDate(e.Date),
		DayOfWeek:         e.DayOfWeek(),
		FailedMetrics:     e.FailedMetrics,
		TotalMetrics:      e.TotalMetrics,
		FailurePercentage: e.FailurePercentage(),
		Promotion:         e.Promotion,
		Severity:          MapSeverityDomainToApi(e.Severity),
	}
}

func MapEventSummaryDomainToApi(s domain.EventSummary) api.EventSummary {
	return api.EventSummary{
		Count:         s.Count,
		AvgFailurePct: s.AvgFailurePct,
		CriticalCount: s.CriticalCount,
		HighRiskDays:  s.HighRiskDays,
		RiskLevel:     MapSeverityDomainToApi(s.RiskLevel),
		Empty:         s.Empty,
	}
}

func MapEventsViewDomainToApi(v dashboard.EventsView) api.Events {
	res := api.Events{
		Events:  make([]api.Event, 0, len(v.Events)),
		Summary: MapEventSummaryDomainToApi(v.Summary),
	}
	for _, e := range v.Events {
		res.Events = append(res.Events, MapEventDomainToApi(e))
	}
	return res
}

func MapOverviewDomainToApi(o dashboard.Overview) api.Overview {
	res := api.Overview{
		Source:         string(o.Source),
		FallbackReason: o.FallbackReason,
	}
	if o.Daily != nil {
		daily := MapSummaryStatsDomainToApi(*o.Daily)
		res.Daily = &daily
	}
	if o.Events != nil {
		events := MapEventSummaryDomainToApi(*o.Events)
		res.Events = &events
	}
	if o.Upload != nil {
		upload := MapUploadOverviewDomainToApi(*o.Upload)
		res.Upload = &upload
	}
	return res
}
