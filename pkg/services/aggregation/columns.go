package aggregation

import (
	"fmt"
	"math"
	"slices"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/stat"
)

// Describe summarizes every numeric column of an uploaded table.
func Describe(t *domain.Table) ([]domain.ColumnSummary, error) {
	numeric := t.ColumnsOf(domain.ColumnNumeric)
	if len(numeric) == 0 {
		return nil, domain.Unprocessable("describe", "no numeric columns")
	}
	out := make([]domain.ColumnSummary, 0, len(numeric))
	for _, c := range numeric {
		values, _ := t.Floats(c.Name)
		s := domain.ColumnSummary{Column: c.Name, Count: len(values)}
		if len(values) > 0 {
			sorted := slices.Sorted(slices.Values(values))
			s.Mean = stat.Mean(values, nil)
			s.StdDev = stdDev(values)
			s.Min = sorted[0]
			s.Q25 = Quantile(sorted, 0.25)
			s.Median = Quantile(sorted, 0.5)
			s.Q75 = Quantile(sorted, 0.75)
			s.Max = sorted[len(sorted)-1]
		}
		out = append(out, s)
	}
	return out, nil
}

// Completeness counts missing cells and distinct non-missing values per
// column, summed over the table.
func Completeness(t *domain.Table) domain.Completeness {
	c := domain.Completeness{
		Rows:    len(t.Rows),
		Columns: len(t.Columns),
		Cells:   len(t.Rows) * len(t.Columns),
	}
	for col := range t.Columns {
		distinct := make(map[string]struct{})
		for row := range t.Rows {
			v := t.Cell(row, col)
			if domain.IsMissing(v) {
				c.Missing++
				continue
			}
			distinct[v] = struct{}{}
		}
		c.UniqueValues += len(distinct)
	}
	if c.Cells > 0 {
		c.Pct = float64(c.Cells-c.Missing) / float64(c.Cells) * 100
	} else {
		c.Pct = 100
	}
	return c
}

// AverageNumeric is the mean of the per-column means of numeric columns.
func AverageNumeric(t *domain.Table) (float64, bool) {
	var means []float64
	for _, c := range t.ColumnsOf(domain.ColumnNumeric) {
		values, _ := t.Floats(c.Name)
		if len(values) > 0 {
			means = append(means, stat.Mean(values, nil))
		}
	}
	if len(means) == 0 {
		return 0, false
	}
	return stat.Mean(means, nil), true
}

// Correlation computes pairwise Pearson coefficients over rows where both
// columns hold a value.
func Correlation(t *domain.Table) (domain.CorrelationMatrix, error) {
	numeric := t.ColumnsOf(domain.ColumnNumeric)
	if len(numeric) < 2 {
		return domain.CorrelationMatrix{}, domain.Unprocessable("correlation", "need at least 2 numeric columns")
	}

	series := make([]map[int]float64, len(numeric))
	names := make([]string, len(numeric))
	for i, c := range numeric {
		names[i] = c.Name
		values, rows := t.Floats(c.Name)
		series[i] = make(map[int]float64, len(values))
		for j, row := range rows {
			series[i][row] = values[j]
		}
	}

	m := domain.CorrelationMatrix{Columns: names, Values: make([][]float64, len(numeric))}
	for i := range numeric {
		m.Values[i] = make([]float64, len(numeric))
	}
	for i := range numeric {
		for j := i; j < len(numeric); j++ {
			r := pearson(series[i], series[j], len(t.Rows))
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

func pearson(a, b map[int]float64, rows int) float64 {
	var xs, ys []float64
	for row := 0; row < rows; row++ {
		x, okX := a[row]
		y, okY := b[row]
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 || stdDev(xs) == 0 || stdDev(ys) == 0 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// Variability grades each numeric column by its coefficient of variation:
// above 50% High, above 20% Medium. Columns with fewer than two values or a
// zero mean have no defined coefficient and are skipped.
func Variability(t *domain.Table) ([]domain.VariabilityRow, error) {
	numeric := t.ColumnsOf(domain.ColumnNumeric)
	if len(numeric) == 0 {
		return nil, domain.Unprocessable("variability", "no numeric columns")
	}
	var out []domain.VariabilityRow
	for _, c := range numeric {
		values, _ := t.Floats(c.Name)
		if len(values) < 2 {
			continue
		}
		m := stat.Mean(values, nil)
		if m == 0 {
			continue
		}
		sd := stdDev(values)
		cv := sd / m * 100
		row := domain.VariabilityRow{Column: c.Name, Mean: m, StdDev: sd, CV: cv, RiskLevel: domain.SeverityLow}
		switch {
		case cv > 50:
			row.RiskLevel = domain.SeverityHigh
		case cv > 20:
			row.RiskLevel = domain.SeverityMedium
		}
		out = append(out, row)
	}
	return out, nil
}

// ColumnOutliers runs the IQR rule on one numeric column. Indexes in the
// result are table row numbers.
func ColumnOutliers(t *domain.Table, column string) (domain.OutlierResult, error) {
	c, ok := t.Column(column)
	if !ok {
		return domain.OutlierResult{}, domain.Unprocessable("outliers", fmt.Sprintf("unknown column %q", column))
	}
	if c.Kind != domain.ColumnNumeric {
		return domain.OutlierResult{}, domain.Unprocessable("outliers", fmt.Sprintf("column %q is %s, not numeric", column, c.Kind))
	}
	values, rows := t.Floats(column)
	res := ClassifyOutliers(values)
	for i, idx := range res.Indexes {
		res.Indexes[i] = rows[idx]
	}
	return res, nil
}
