package aggregation

import (
	"math"
	"testing"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *domain.Table {
	return &domain.Table{
		ID: "t1",
		Columns: []domain.Column{
			{Name: "region", Kind: domain.ColumnCategorical},
			{Name: "score", Kind: domain.ColumnNumeric},
			{Name: "orders", Kind: domain.ColumnNumeric},
			{Name: "delta", Kind: domain.ColumnNumeric},
		},
		Rows: [][]string{
			{"east", "8", "10", "-1"},
			{"west", "9", "20", "1"},
			{"east", "10", "30", ""},
			{"", "", "40", "0"},
		},
	}
}

func TestDescribe(t *testing.T) {
	summaries, err := Describe(sampleTable())
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	score := summaries[0]
	assert.Equal(t, "score", score.Column)
	assert.Equal(t, 3, score.Count)
	assert.InDelta(t, 9.0, score.Mean, 1e-9)
	assert.InDelta(t, 1.0, score.StdDev, 1e-9)
	assert.Equal(t, 8.0, score.Min)
	assert.InDelta(t, 8.5, score.Q25, 1e-9)
	assert.InDelta(t, 9.0, score.Median, 1e-9)
	assert.InDelta(t, 9.5, score.Q75, 1e-9)
	assert.Equal(t, 10.0, score.Max)
}

func TestDescribe_NoNumericColumns(t *testing.T) {
	table := &domain.Table{
		Columns: []domain.Column{{Name: "region", Kind: domain.ColumnCategorical}},
		Rows:    [][]string{{"east"}},
	}

	_, err := Describe(table)

	assert.True(t, domain.IsUnprocessable(err))
}

func TestCompleteness(t *testing.T) {
	c := Completeness(sampleTable())

	assert.Equal(t, 4, c.Rows)
	assert.Equal(t, 4, c.Columns)
	assert.Equal(t, 16, c.Cells)
	assert.Equal(t, 3, c.Missing)
	assert.InDelta(t, 81.25, c.Pct, 1e-9)
	// region 2, score 3, orders 4, delta 3
	assert.Equal(t, 12, c.UniqueValues)
}

func TestCompleteness_NonFiniteCellsAreMissing(t *testing.T) {
	table := &domain.Table{
		Columns: []domain.Column{
			{Name: "region", Kind: domain.ColumnCategorical},
			{Name: "orders", Kind: domain.ColumnNumeric},
		},
		Rows: [][]string{
			{"east", "10"},
			{"west", "NaN"},
			{"east", "Inf"},
		},
	}

	c := Completeness(table)
	assert.Equal(t, 2, c.Missing)
	assert.Equal(t, 3, c.UniqueValues)

	summaries, err := Describe(table)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Count)
	assert.Equal(t, 10.0, summaries[0].Mean)
	assert.Zero(t, summaries[0].StdDev)
}

func TestCorrelation(t *testing.T) {
	m, err := Correlation(sampleTable())
	require.NoError(t, err)

	assert.Equal(t, []string{"score", "orders", "delta"}, m.Columns)
	assert.InDelta(t, 1.0, m.Values[0][0], 1e-9)
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-9)
	assert.Equal(t, m.Values[0][1], m.Values[1][0])
	// score and delta share only two rows
	assert.InDelta(t, 1.0, m.Values[0][2], 1e-9)
}

func TestCorrelation_UndefinedPair(t *testing.T) {
	table := &domain.Table{
		Columns: []domain.Column{
			{Name: "a", Kind: domain.ColumnNumeric},
			{Name: "b", Kind: domain.ColumnNumeric},
		},
		Rows: [][]string{{"1", "5"}, {"2", "5"}, {"3", "5"}},
	}

	m, err := Correlation(table)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(m.Values[0][1]))
}

func TestCorrelation_InverseAndSparsePairs(t *testing.T) {
	table := &domain.Table{
		Columns: []domain.Column{
			{Name: "a", Kind: domain.ColumnNumeric},
			{Name: "b", Kind: domain.ColumnNumeric},
			{Name: "c", Kind: domain.ColumnNumeric},
		},
		Rows: [][]string{
			{"1", "3", "1"},
			{"2", "2", ""},
			{"3", "1", ""},
			{"", "", "5"},
		},
	}

	m, err := Correlation(table)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, m.Values[0][1], 1e-9)
	// c shares a single row with each of a and b
	assert.True(t, math.IsNaN(m.Values[0][2]))
	assert.True(t, math.IsNaN(m.Values[1][2]))
	assert.InDelta(t, 1.0, m.Values[2][2], 1e-9)
}

func TestCorrelation_NeedsTwoNumericColumns(t *testing.T) {
	table := &domain.Table{
		Columns: []domain.Column{{Name: "a", Kind: domain.ColumnNumeric}},
		Rows:    [][]string{{"1"}, {"2"}},
	}

	_, err := Correlation(table)

	assert.True(t, domain.IsUnprocessable(err))
}

func TestVariability(t *testing.T) {
	rows, err := Variability(sampleTable())
	require.NoError(t, err)

	// delta has a zero mean and is skipped
	require.Len(t, rows, 2)

	assert.Equal(t, "score", rows[0].Column)
	assert.InDelta(t, 100.0/9.0, rows[0].CV, 1e-9)
	assert.Equal(t, domain.SeverityLow, rows[0].RiskLevel)

	assert.Equal(t, "orders", rows[1].Column)
	assert.InDelta(t, 51.639778, rows[1].CV, 1e-6)
	assert.Equal(t, domain.SeverityHigh, rows[1].RiskLevel)
}

func TestAverageNumeric(t *testing.T) {
	avg, ok := AverageNumeric(sampleTable())

	assert.True(t, ok)
	assert.InDelta(t, (9.0+25.0+0.0)/3, avg, 1e-9)

	_, ok = AverageNumeric(&domain.Table{})
	assert.False(t, ok)
}

func TestColumnOutliers(t *testing.T) {
	table := &domain.Table{
		Columns: []domain.Column{{Name: "score", Kind: domain.ColumnNumeric}},
		Rows:    [][]string{{"9"}, {""}, {"9"}, {"9"}, {"9"}, {"1"}},
	}

	res, err := ColumnOutliers(table, "score")
	require.NoError(t, err)

	assert.Equal(t, []int{5}, res.Indexes)
	assert.Equal(t, []float64{1}, res.Values)
}

func TestColumnOutliers_Errors(t *testing.T) {
	_, err := ColumnOutliers(sampleTable(), "missing")
	assert.True(t, domain.IsUnprocessable(err))

	_, err = ColumnOutliers(sampleTable(), "region")
	assert.True(t, domain.IsUnprocessable(err))
}
