package fixtures

import (
	"testing"
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents_SeverityMatchesFailureBand(t *testing.T) {
	events := Events()
	require.Len(t, events, 16)

	for _, e := range events {
		assert.Truef(t, e.Severity.ConsistentWithFailure(e.FailurePercentage()),
			"%s: severity %s vs %.1f%%", e.Date.Format(time.DateOnly), e.Severity, e.FailurePercentage())
		assert.Equal(t, 8, e.TotalMetrics)
	}
}

func TestEvents_DerivedFields(t *testing.T) {
	first := Events()[0]
	assert.Equal(t, time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Monday", first.DayOfWeek())
	assert.Equal(t, 87.5, first.FailurePercentage())
	assert.Equal(t, domain.SeverityCritical, first.Severity)
}

func TestEvents_ReturnsCopy(t *testing.T) {
	a := Events()
	a[0].Promotion = "changed"
	assert.Equal(t, "Without promo", Events()[0].Promotion)
}

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	require.NoError(t, ValidateCatalog(cat))

	assert.Equal(t, []string{"May-June 2025", "July 2025", "August 2025", "September 2025"}, cat.Periods)
	assert.Len(t, cat.Metrics, 8)

	checkout, ok := cat.Metric("Checkout Process")
	require.True(t, ok)
	assert.Equal(t, []float64{9.28, 9.07, 8.91, 9.31}, checkout.Scores)
	assert.Equal(t, 9.0, checkout.Target)

	for _, name := range cat.Names() {
		assert.Len(t, cat.Recommendations[name], 3, name)
	}
}

func TestValidateCatalog_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Catalog)
	}{
		{"no periods", func(c *domain.Catalog) { c.Periods = nil }},
		{"short series", func(c *domain.Catalog) { c.Metrics[0].Scores = c.Metrics[0].Scores[:3] }},
		{"duplicate metric", func(c *domain.Catalog) { c.Metrics[1].Name = c.Metrics[0].Name }},
		{"unnamed metric", func(c *domain.Catalog) { c.Metrics[2].Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := DefaultCatalog()
			tt.mutate(&cat)

			err := ValidateCatalog(cat)
			var cfgErr *domain.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}
