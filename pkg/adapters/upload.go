package adapters

import (
	"math"

	"github.com/de-tools/csat-atlas/pkg/models/api"
	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/dashboard"
)

func MapFilesDomainToApi(files []domain.FileInfo) []api.FileInfo {
	res := make([]api.FileInfo, 0, len(files))
	for _, f := range files {
		res = append(res, api.FileInfo{Name: f.Name, Rows: f.Rows, Columns: f.Columns})
	}
	return res
}

func MapCompletenessDomainToApi(c domain.Completeness) api.Completeness {
	return api.Completeness{
		Rows:         c.Rows,
		Columns:      c.Columns,
		Cells:        c.Cells,
		Missing:      c.Missing,
		Pct:          c.Pct,
		UniqueValues: c.UniqueValues,
	}
}

func MapUploadOverviewDomainToApi(u dashboard.UploadOverview) api.UploadOverview {
	res := api.UploadOverview{
		TableID:        u.TableID,
		Files:          MapFilesDomainToApi(u.Files),
		Records:        u.Records,
		Columns:        u.Columns,
		NumericColumns: u.NumericColumns,
		Completeness:   MapCompletenessDomainToApi(u.Completeness),
	}
	if u.HasAverage {
		avg := u.AverageNumeric
		res.AverageNumeric = &avg
	}
	return res
}

func MapCorrelationDomainToApi(m domain.CorrelationMatrix) api.Correlation {
	res := api.Correlation{
		Columns: append([]string{}, m.Columns...),
		Values:  make([][]*float64, len(m.Values)),
	}
	for i, row := range m.Values {
		res.Values[i] = make([]*float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			res.Values[i][j] = &v
		}
	}
	return res
}

func MapUploadAnalysisDomainToApi(a dashboard.UploadAnalysis) api.UploadAnalysis {
	res := api.UploadAnalysis{
		TableID:      a.TableID,
		Files:        MapFilesDomainToApi(a.Files),
		Columns:      make([]api.Column, 0, len(a.Columns)),
		Describe:     make([]api.ColumnSummary, 0, len(a.Describe)),
		Completeness: MapCompletenessDomainToApi(a.Completeness),
		Variability:  make([]api.VariabilityRow, 0, len(a.Variability)),
		Notes:        a.Notes,
	}
	for _, c := range a.Columns {
		res.Columns = append(res.Columns, api.Column{Name: c.Name, Kind: string(c.Kind)})
	}
	for _, s := range a.Describe {
		res.Describe = append(res.Describe, api.ColumnSummary{
			Column: s.Column,
			Count:  s.Count,
			Mean:   s.Mean,
			StdDev: s.StdDev,
			Min:    s.Min,
			Q25:    s.Q25,
			Median: s.Median,
			Q75:    s.Q75,
			Max:    s.Max,
		})
	}
	if a.Correlation != nil {
		corr := MapCorrelationDomainToApi(*a.Correlation)
		res.Correlation = &corr
	}
	for _, v := range a.Variability {
		res.Variability = append(res.Variability, api.VariabilityRow{
			Column:    v.Column,
			Mean:      v.Mean,
			StdDev:    v.StdDev,
			CV:        v.CV,
			RiskLevel: MapSeverityDomainToApi(v.RiskLevel),
		})
	}
	for _, g := range a.Groups {
		res.Groups = append(res.Groups, api.GroupStat{Group: g.Group, Mean: g.Mean, Count: g.Count, StdDev: g.StdDev})
	}
	return res
}
