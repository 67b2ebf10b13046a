package aggregation

import (
	"testing"
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventDates(events []domain.EventRecord) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Date.Format(time.DateOnly)
	}
	return out
}

func TestFilterEvents_MinFailureSortedByFailure(t *testing.T) {
	events, err := FilterEvents(fixtures.Events(), domain.EventFilter{
		MinFailurePct: 50,
		SortBy:        domain.EventSortFailure,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2025-08-11", "2025-08-13", "2025-06-29", "2025-08-07", "2025-08-25", "2025-09-22",
	}, eventDates(events))
}

func TestFilterEvents_SortedByDate(t *testing.T) {
	events, err := FilterEvents(fixtures.Events(), domain.EventFilter{MinFailurePct: 50})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2025-09-22", "2025-08-25", "2025-08-13", "2025-08-11", "2025-08-07", "2025-06-29",
	}, eventDates(events))
}

func TestFilterEvents_BySeverity(t *testing.T) {
	events, err := FilterEvents(fixtures.Events(), domain.EventFilter{
		Severities: []domain.Severity{domain.SeverityHigh, domain.SeverityCritical},
		SortBy:     domain.EventSortSeverity,
	})
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, domain.SeverityCritical, events[0].Severity)
	assert.Equal(t, "2025-08-13", events[1].Date.Format(time.DateOnly))
	assert.Equal(t, "2025-06-29", events[2].Date.Format(time.DateOnly))
}

func TestFilterEvents_DoesNotMutateInput(t *testing.T) {
	input := fixtures.Events()

	_, err := FilterEvents(input, domain.EventFilter{SortBy: domain.EventSortFailure})
	require.NoError(t, err)

	assert.Equal(t, fixtures.Events(), input)
}

func TestFilterEvents_UnknownSort(t *testing.T) {
	_, err := FilterEvents(fixtures.Events(), domain.EventFilter{SortBy: "promotion"})
	assert.Error(t, err)
}

func TestSummarizeEvents(t *testing.T) {
	s := SummarizeEvents(fixtures.Events())

	assert.False(t, s.Empty)
	assert.Equal(t, 16, s.Count)
	assert.InDelta(t, 40.625, s.AvgFailurePct, 1e-9)
	assert.Equal(t, 1, s.CriticalCount)
	assert.Equal(t, 3, s.HighRiskDays)
	assert.Equal(t, domain.SeverityMedium, s.RiskLevel)
}

func TestSummarizeEvents_Empty(t *testing.T) {
	events, err := FilterEvents(fixtures.Events(), domain.EventFilter{MinFailurePct: 95})
	require.NoError(t, err)

	s := SummarizeEvents(events)

	assert.True(t, s.Empty)
	assert.Zero(t, s.Count)
}
