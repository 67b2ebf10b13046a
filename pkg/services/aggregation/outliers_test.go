package aggregation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.75, Quantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 2.5, Quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 3.25, Quantile(sorted, 0.75), 1e-9)
	assert.Equal(t, 1.0, Quantile(sorted, 0))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.25))
}

func TestClassifyOutliers(t *testing.T) {
	values := []float64{8.5, 8.7, 8.6, 8.4, 8.8, 3.0, 8.5, 12.0}

	res := ClassifyOutliers(values)

	assert.False(t, res.Empty)
	assert.Equal(t, []int{5, 7}, res.Indexes)
	assert.Equal(t, []float64{3.0, 12.0}, res.Values)
	assert.InDelta(t, res.Q3-res.Q1, res.IQR, 1e-9)
	assert.InDelta(t, res.Q1-1.5*res.IQR, res.LowerBound, 1e-9)
	assert.InDelta(t, res.Q3+1.5*res.IQR, res.UpperBound, 1e-9)
}

func TestClassifyOutliers_Idempotent(t *testing.T) {
	values := []float64{8.5, 8.7, 8.6, 8.4, 8.8, 3.0, 8.5, 12.0}

	first := ClassifyOutliers(values)
	second := ClassifyOutliers(values)

	assert.Equal(t, first, second)
	assert.Equal(t, []float64{8.5, 8.7, 8.6, 8.4, 8.8, 3.0, 8.5, 12.0}, values)
}

func TestClassifyOutliers_Empty(t *testing.T) {
	assert.True(t, ClassifyOutliers(nil).Empty)
	assert.True(t, ClassifyOutliers([]float64{math.NaN()}).Empty)
}

func TestClassifyOutliers_SkipsNaN(t *testing.T) {
	res := ClassifyOutliers([]float64{1, math.NaN(), 1, 1, 1, 50})

	assert.Equal(t, []int{5}, res.Indexes)
	assert.Equal(t, []float64{50}, res.Values)
}

func TestClassifyOutliers_ConstantSeries(t *testing.T) {
	res := ClassifyOutliers([]float64{9, 9, 9, 9})

	assert.Zero(t, res.IQR)
	assert.Empty(t, res.Indexes)
}
