package config

import (
	"fmt"
	"slices"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/fixtures"
	"gopkg.in/ini.v1"
)

// CatalogSection holds catalog-wide keys; every other non-empty section is a
// metric named by its header:
//
//	[catalog]
//	periods = May-June 2025, July 2025, August 2025, September 2025
//
//	[Checkout Process]
//	scores = 9.28, 9.07, 8.91, 9.31
//	target = 9.0
//	recommendations = Process simplification | Multiple payment options
const CatalogSection = "catalog"

// LoadCatalog applies the overrides in the INI file at path to base. Known
// metrics are updated in place, unknown ones are appended.
func LoadCatalog(path string, base domain.Catalog) (domain.Catalog, error) {
	file, err := ini.Load(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	cat := cloneCatalog(base)

	if file.HasSection(CatalogSection) {
		section := file.Section(CatalogSection)
		if section.HasKey("periods") {
			cat.Periods = section.Key("periods").Strings(",")
		}
	}

	for _, section := range file.Sections() {
		name := section.Name()
		if name == CatalogSection || len(section.Keys()) == 0 {
			continue
		}
		if err := applyMetric(&cat, name, section); err != nil {
			return domain.Catalog{}, err
		}
	}

	if err := fixtures.ValidateCatalog(cat); err != nil {
		return domain.Catalog{}, err
	}
	return cat, nil
}

func applyMetric(cat *domain.Catalog, name string, section *ini.Section) error {
	idx := slices.IndexFunc(cat.Metrics, func(m domain.MetricSeries) bool { return m.Name == name })
	if idx < 0 {
		cat.Metrics = append(cat.Metrics, domain.MetricSeries{Name: name, Target: fixtures.DefaultTarget})
		idx = len(cat.Metrics) - 1
	}
	metric := &cat.Metrics[idx]

	if section.HasKey("scores") {
		scores, err := section.Key("scores").StrictFloat64s(",")
		if err != nil {
			return &domain.ConfigError{Field: "catalog." + name + ".scores", Reason: err.Error()}
		}
		metric.Scores = scores
	}
	if section.HasKey("target") {
		target, err := section.Key("target").Float64()
		if err != nil {
			return &domain.ConfigError{Field: "catalog." + name + ".target", Reason: err.Error()}
		}
		metric.Target = target
	}
	if section.HasKey("recommendations") {
		cat.Recommendations[name] = section.Key("recommendations").Strings("|")
	}
	return nil
}

func cloneCatalog(c domain.Catalog) domain.Catalog {
	out := domain.Catalog{
		Periods:         slices.Clone(c.Periods),
		Metrics:         make([]domain.MetricSeries, len(c.Metrics)),
		Recommendations: make(map[string][]string, len(c.Recommendations)),
	}
	for i, m := range c.Metrics {
		m.Scores = slices.Clone(m.Scores)
		out.Metrics[i] = m
	}
	for name, recs := range c.Recommendations {
		out.Recommendations[name] = slices.Clone(recs)
	}
	return out
}
