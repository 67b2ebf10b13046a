package dashboard

import (
	"fmt"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/aggregation"
)

const scoreUnit = "pts"

// Report assembles the text report of a context. month narrows the
// satisfaction summary the same way Timeline does.
func (s *Service) Report(rc domain.ReportContext, month string) (*domain.Report, error) {
	report := &domain.Report{
		Title:  "Customer Satisfaction Report",
		Source: rc.Source,
		Unit:   scoreUnit,
	}

	if rc.HasDaily() {
		tl, err := s.Timeline(rc, month)
		if err != nil {
			return nil, err
		}
		report.Average = tl.Stats.Mean
		report.Period = periodOf(tl.Points)
		report.Sections = append(report.Sections, summarySection(tl), monthlySection(aggregation.GroupByMonth(tl.Points, rc.Target)))
	}

	if rc.Table != nil {
		report.Title = "Uploaded Data Report"
		report.Sections = append(report.Sections, uploadSection(s.Overview(rc).Upload))
	}

	report.Sections = append(report.Sections, prioritySection(s.Priorities(rc)))

	if !rc.Uploaded() {
		ev, err := s.Events(rc, domain.EventFilter{SortBy: domain.EventSortFailure})
		if err != nil {
			return nil, err
		}
		report.Sections = append(report.Sections, eventsSection(ev))
	}
	if rc.FallbackReason != "" {
		report.Title += " (synthetic fallback)"
	}
	return report, nil
}

func periodOf(records []domain.DailyRecord) domain.TimePeriod {
	if len(records) == 0 {
		return domain.TimePeriod{}
	}
	start := records[0].Date
	end := records[len(records)-1].Date
	return domain.TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start).Hours()/24) + 1,
	}
}

func summarySection(tl Timeline) domain.ReportSection {
	st := tl.Stats
	section := domain.ReportSection{
		Title: "Satisfaction Summary: " + tl.Month,
		Summary: map[string]interface{}{
			"Days":               st.Count,
			"Target":             fmt.Sprintf("%.1f", st.Target),
			"Days Below Target":  st.BelowTarget,
			"Target Achievement": fmt.Sprintf("%.1f%%", st.TargetAchievementPct),
		},
	}
	if st.Empty {
		section.Summary["Note"] = "no days match the selected month"
		return section
	}
	section.Details = []domain.ReportDetail{
		{Name: "Average", Value: fmt.Sprintf("%.2f", st.Mean), Unit: scoreUnit},
		{Name: "Standard Deviation", Value: fmt.Sprintf("%.2f", st.StdDev), Unit: scoreUnit},
		{Name: "Best Day", Value: fmt.Sprintf("%.1f", st.Max), Unit: scoreUnit, Description: st.MaxDate.Format("Mon 2006-01-02")},
		{Name: "Worst Day", Value: fmt.Sprintf("%.1f", st.Min), Unit: scoreUnit, Description: st.MinDate.Format("Mon 2006-01-02")},
		{Name: "Weekend Average", Value: meanOrNA(tl.Weekend), Unit: scoreUnit, Description: fmt.Sprintf("%d days", tl.Weekend.Count)},
		{Name: "Weekday Average", Value: meanOrNA(tl.Weekday), Unit: scoreUnit, Description: fmt.Sprintf("%d days", tl.Weekday.Count)},
		{Name: "Outlier Days", Value: len(tl.Outliers.Indexes), Description: fmt.Sprintf("outside [%.2f, %.2f]", tl.Outliers.LowerBound, tl.Outliers.UpperBound)},
	}
	return section
}

func meanOrNA(st domain.SummaryStats) string {
	if st.Empty {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", st.Mean)
}

func monthlySection(months []domain.MonthlyAggregate) domain.ReportSection {
	section := domain.ReportSection{Title: "Monthly Breakdown", Summary: map[string]interface{}{"Months": len(months)}}
	for _, m := range months {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        m.Label,
			Value:       fmt.Sprintf("%.2f", m.Stats.Mean),
			Unit:        scoreUnit,
			Description: fmt.Sprintf("%d days, %d below target", m.Stats.Count, m.Stats.BelowTarget),
		})
	}
	return section
}

func uploadSection(u *UploadOverview) domain.ReportSection {
	section := domain.ReportSection{
		Title: "Uploaded Data",
		Summary: map[string]interface{}{
			"Files":           len(u.Files),
			"Records":         u.Records,
			"Columns":         u.Columns,
			"Numeric Columns": u.NumericColumns,
		},
		Details: []domain.ReportDetail{
			{Name: "Data Completeness", Value: fmt.Sprintf("%.1f", u.Completeness.Pct), Unit: "%", Description: fmt.Sprintf("%d missing cells", u.Completeness.Missing)},
			{Name: "Unique Values", Value: u.Completeness.UniqueValues},
		},
	}
	if u.HasAverage {
		section.Details = append(section.Details, domain.ReportDetail{
			Name: "Average Numeric Value", Value: fmt.Sprintf("%.2f", u.AverageNumeric),
		})
	}
	for _, f := range u.Files {
		section.Details = append(section.Details, domain.ReportDetail{
			Name: f.Name, Value: f.Rows, Unit: "rows", Description: fmt.Sprintf("%d columns", f.Columns),
		})
	}
	return section
}

func prioritySection(rows []domain.PriorityRow) domain.ReportSection {
	section := domain.ReportSection{Title: "Metric Priorities", Summary: map[string]interface{}{}}
	counts := make(map[domain.Severity]int)
	for _, r := range rows {
		counts[r.Priority]++
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        r.Metric,
			Value:       fmt.Sprintf("%.2f", r.Current),
			Unit:        scoreUnit,
			Description: fmt.Sprintf("%s priority, gap %+.2f, trend %+.2f", r.Priority, r.Gap, r.Trend),
		})
	}
	for _, sev := range domain.AllSeverities() {
		section.Summary[sev.String()+" Priority"] = counts[sev]
	}
	return section
}

func eventsSection(ev EventsView) domain.ReportSection {
	section := domain.ReportSection{
		Title: "Critical Events",
		Summary: map[string]interface{}{
			"Events":           ev.Summary.Count,
			"Average Failure":  fmt.Sprintf("%.1f%%", ev.Summary.AvgFailurePct),
			"Critical Events":  ev.Summary.CriticalCount,
			"High Risk Days":   ev.Summary.HighRiskDays,
			"Event Risk Level": ev.Summary.RiskLevel.String(),
		},
	}
	for _, e := range ev.Events {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        e.Date.Format("Mon 2006-01-02"),
			Value:       fmt.Sprintf("%.1f", e.FailurePercentage()),
			Unit:        "% failed",
			Description: fmt.Sprintf("%s: %s", e.Severity, e.Promotion),
		})
	}
	return section
}
