package aggregation

import (
	"math"
	"slices"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
)

const iqrFactor = 1.5

// Quantile uses linear interpolation between closest ranks, h = (n-1)q.
// sorted must be ascending and non-empty.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := float64(len(sorted)-1) * q
	lo := math.Floor(h)
	hi := math.Ceil(h)
	loV := sorted[int(lo)]
	return loV + (h-lo)*(sorted[int(hi)]-loV)
}

// ClassifyOutliers applies the 1.5 x IQR rule. NaN values are ignored; the
// reported indexes refer to positions in values.
func ClassifyOutliers(values []float64) domain.OutlierResult {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return domain.OutlierResult{Empty: true}
	}
	slices.Sort(clean)

	q1 := Quantile(clean, 0.25)
	q3 := Quantile(clean, 0.75)
	iqr := q3 - q1
	res := domain.OutlierResult{
		Q1:         q1,
		Q3:         q3,
		IQR:        iqr,
		LowerBound: q1 - iqrFactor*iqr,
		UpperBound: q3 + iqrFactor*iqr,
	}
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < res.LowerBound || v > res.UpperBound {
			res.Indexes = append(res.Indexes, i)
			res.Values = append(res.Values, v)
		}
	}
	return res
}
