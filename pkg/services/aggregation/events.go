package aggregation

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
)

const highRiskFailurePct = 70.0

// FilterEvents returns the events meeting the filter, sorted as requested.
// The input slice is not modified.
func FilterEvents(events []domain.EventRecord, f domain.EventFilter) ([]domain.EventRecord, error) {
	out := make([]domain.EventRecord, 0, len(events))
	for _, e := range events {
		if e.FailurePercentage() < f.MinFailurePct {
			continue
		}
		if len(f.Severities) > 0 && !slices.Contains(f.Severities, e.Severity) {
			continue
		}
		out = append(out, e)
	}

	var compare func(a, b domain.EventRecord) int
	switch f.SortBy {
	case "", domain.EventSortDate:
		compare = func(a, b domain.EventRecord) int { return b.Date.Compare(a.Date) }
	case domain.EventSortFailure:
		compare = func(a, b domain.EventRecord) int { return cmp.Compare(b.FailurePercentage(), a.FailurePercentage()) }
	case domain.EventSortSeverity:
		compare = func(a, b domain.EventRecord) int { return cmp.Compare(b.Severity, a.Severity) }
	default:
		return nil, fmt.Errorf("unsupported event sort %q", f.SortBy)
	}
	slices.SortStableFunc(out, compare)
	return out, nil
}

// SummarizeEvents computes the headline numbers of an event selection. The
// overall risk level is High above 60% average failure and Medium above 30%.
func SummarizeEvents(events []domain.EventRecord) domain.EventSummary {
	if len(events) == 0 {
		return domain.EventSummary{Empty: true}
	}
	s := domain.EventSummary{Count: len(events)}
	var total float64
	for _, e := range events {
		pct := e.FailurePercentage()
		total += pct
		if e.Severity == domain.SeverityCritical {
			s.CriticalCount++
		}
		if pct >= highRiskFailurePct {
			s.HighRiskDays++
		}
	}
	s.AvgFailurePct = total / float64(len(events))
	switch {
	case s.AvgFailurePct > 60:
		s.RiskLevel = domain.SeverityHigh
	case s.AvgFailurePct > 30:
		s.RiskLevel = domain.SeverityMedium
	default:
		s.RiskLevel = domain.SeverityLow
	}
	return s
}
