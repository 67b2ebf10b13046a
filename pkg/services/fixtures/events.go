package fixtures

import (
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
)

const metricsPerSurvey = 8

func event(month time.Month, day, failed int, promotion string, sev domain.Severity) domain.EventRecord {
	return domain.EventRecord{
		Date:          time.Date(2025, month, day, 0, 0, 0, 0, time.UTC),
		FailedMetrics: failed,
		TotalMetrics:  metricsPerSurvey,
		Promotion:     promotion,
		Severity:      sev,
	}
}

// Events returns a fresh copy of the critical-events reference table in its
// canonical order.
func Events() []domain.EventRecord {
	return []domain.EventRecord{
		// critical
		event(time.August, 11, 7, "Without promo", domain.SeverityCritical),
		event(time.August, 13, 6, "No promotion", domain.SeverityHigh),
		event(time.June, 29, 6, "4th of July Event 7% OFF", domain.SeverityHigh),
		event(time.August, 7, 4, "No promotion", domain.SeverityMedium),
		event(time.August, 25, 4, "Without promo", domain.SeverityMedium),
		event(time.September, 22, 4, "Without promo", domain.SeverityMedium),

		// non-critical
		event(time.July, 14, 3, "Anniversary Sale Kick Off", domain.SeverityLow),
		event(time.July, 8, 3, "No promotion", domain.SeverityLow),
		event(time.August, 2, 3, "No promotion", domain.SeverityLow),
		event(time.August, 13, 3, "No promotion", domain.SeverityLow),
		event(time.August, 18, 3, "No promotion", domain.SeverityLow),

		// good performance, kept for context
		event(time.June, 15, 2, "Father Day Special 15% OFF", domain.SeverityLow),
		event(time.September, 1, 2, "Labor Day Sale", domain.SeverityLow),
		event(time.July, 20, 1, "Summer Clearance 20% OFF", domain.SeverityLow),
		event(time.August, 24, 1, "Back to School Furniture", domain.SeverityLow),
		event(time.September, 15, 0, "Fall Collection Launch", domain.SeverityLow),
	}
}
