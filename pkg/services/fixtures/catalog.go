package fixtures

import (
	"fmt"
	"slices"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
)

const DefaultTarget = 9.0

var periods = []string{"May-June 2025", "July 2025", "August 2025", "September 2025"}

var metricScores = []struct {
	name   string
	scores []float64
}{
	{"Overall Satisfaction", []float64{9.48, 9.38, 9.36, 9.48}},
	{"Likelihood to Buy Again", []float64{9.58, 9.33, 9.21, 9.56}},
	{"Likelihood to Recommend", []float64{9.43, 9.25, 9.06, 9.60}},
	{"Site Design", []float64{9.68, 9.37, 9.26, 9.73}},
	{"Ease of Finding", []float64{9.63, 9.30, 9.21, 9.66}},
	{"Product Information Clarity", []float64{9.60, 9.28, 9.18, 9.63}},
	{"Charges Stated Clearly", []float64{9.48, 9.22, 9.16, 9.43}},
	{"Checkout Process", []float64{9.28, 9.07, 8.91, 9.31}},
}

var recommendations = map[string][]string{
	"Overall Satisfaction":        {"Implement customer feedback loops", "Enhance service quality training", "Regular satisfaction surveys"},
	"Likelihood to Buy Again":     {"Develop loyalty programs", "Improve customer service", "Competitive pricing analysis"},
	"Likelihood to Recommend":     {"Create referral incentives", "Monitor online reviews", "Social media engagement"},
	"Site Design":                 {"UX/UI improvements", "Mobile optimization", "User testing sessions"},
	"Ease of Finding":             {"Search functionality enhancement", "Navigation improvements", "Category optimization"},
	"Product Information Clarity": {"Content quality review", "Product description standards", "Visual content enhancement"},
	"Charges Stated Clearly":      {"Pricing transparency", "Fee disclosure improvements", "Checkout clarity"},
	"Checkout Process":            {"Process simplification", "Multiple payment options", "Mobile checkout optimization"},
}

// DefaultCatalog returns a fresh copy of the canonical metric table.
func DefaultCatalog() domain.Catalog {
	cat := domain.Catalog{
		Periods:         slices.Clone(periods),
		Metrics:         make([]domain.MetricSeries, 0, len(metricScores)),
		Recommendations: make(map[string][]string, len(recommendations)),
	}
	for _, m := range metricScores {
		cat.Metrics = append(cat.Metrics, domain.MetricSeries{
			Name:   m.name,
			Scores: slices.Clone(m.scores),
			Target: DefaultTarget,
		})
	}
	for name, recs := range recommendations {
		cat.Recommendations[name] = slices.Clone(recs)
	}
	return cat
}

// ValidateCatalog checks that every series has one score per period.
func ValidateCatalog(cat domain.Catalog) error {
	if len(cat.Periods) == 0 {
		return &domain.ConfigError{Field: "catalog.periods", Reason: "no reporting periods"}
	}
	seen := make(map[string]struct{}, len(cat.Metrics))
	for _, m := range cat.Metrics {
		if m.Name == "" {
			return &domain.ConfigError{Field: "catalog.metrics", Reason: "metric without a name"}
		}
		if _, dup := seen[m.Name]; dup {
			return &domain.ConfigError{Field: "catalog.metrics", Reason: fmt.Sprintf("duplicate metric %q", m.Name)}
		}
		seen[m.Name] = struct{}{}
		if len(m.Scores) != len(cat.Periods) {
			return &domain.ConfigError{
				Field:  "catalog." + m.Name,
				Reason: fmt.Sprintf("expected %d scores, got %d", len(cat.Periods), len(m.Scores)),
			}
		}
	}
	return nil
}
