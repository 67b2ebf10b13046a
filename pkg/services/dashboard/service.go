package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/aggregation"
	"github.com/de-tools/csat-atlas/pkg/services/fixtures"
	"github.com/de-tools/csat-atlas/pkg/services/generator"
	"github.com/de-tools/csat-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
)

// GroupStore runs grouped aggregates over an uploaded table.
type GroupStore interface {
	Load(ctx context.Context, table *domain.Table) error
	GroupStats(ctx context.Context, tableID, groupBy, value string) ([]domain.GroupStat, error)
	Drop(ctx context.Context, tableID string) error
}

type Options struct {
	Settings generator.Settings
	Catalog  domain.Catalog
	Target   float64
	Cache    *generator.Cache
	Store    GroupStore
	// OnFile reports ingestion progress per uploaded file.
	OnFile func(domain.FileInfo)
}

type Service struct {
	settings generator.Settings
	catalog  domain.Catalog
	target   float64
	cache    *generator.Cache
	store    GroupStore
	loader   *ingest.Loader
}

func NewService(opts Options) *Service {
	if opts.Cache == nil {
		opts.Cache = generator.NewCache()
	}
	if opts.Target == 0 {
		opts.Target = fixtures.DefaultTarget
	}
	if opts.Catalog.Metrics == nil {
		opts.Catalog = fixtures.DefaultCatalog()
	}
	if opts.Settings.Start.IsZero() {
		opts.Settings = generator.DefaultSettings()
	}
	return &Service{
		settings: opts.Settings,
		catalog:  opts.Catalog,
		target:   opts.Target,
		cache:    opts.Cache,
		store:    opts.Store,
		loader:   &ingest.Loader{OnFile: opts.OnFile},
	}
}

// SyntheticContext evaluates views against the generated series and the
// reference tables.
func (s *Service) SyntheticContext(_ context.Context) (domain.ReportContext, error) {
	records, err := s.cache.Get(s.settings)
	if err != nil {
		return domain.ReportContext{}, fmt.Errorf("generate series: %w", err)
	}
	return domain.ReportContext{
		Source:  domain.SourceSynthetic,
		Daily:   records,
		Events:  fixtures.Events(),
		Catalog: s.catalog,
		Target:  s.target,
	}, nil
}

// UploadedContext ingests sources. Any ingestion failure is logged and
// answered with the synthetic context, FallbackReason set; a partial table
// is never returned.
func (s *Service) UploadedContext(ctx context.Context, sources ...ingest.Source) (domain.ReportContext, error) {
	logger := zerolog.Ctx(ctx)

	table, err := s.loader.Load(ctx, sources...)
	if err != nil {
		if !domain.IsUnprocessable(err) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.ReportContext{}, ctxErr
			}
		}
		logger.Warn().Err(err).Int("files", len(sources)).Msg("upload rejected, using synthetic data")

		rc, synthErr := s.SyntheticContext(ctx)
		if synthErr != nil {
			return domain.ReportContext{}, synthErr
		}
		rc.FallbackReason = err.Error()
		return rc, nil
	}

	rc := domain.ReportContext{
		Source:  domain.SourceUploaded,
		Table:   table,
		Catalog: s.catalog,
		Target:  s.target,
	}
	if daily, err := ingest.ToDailyRecords(table); err == nil {
		rc.Daily = daily
	} else {
		logger.Debug().Err(err).Str("table", table.ID).Msg("upload has no daily score schema")
	}

	logger.Info().
		Str("table", table.ID).
		Int("rows", len(table.Rows)).
		Int("columns", len(table.Columns)).
		Bool("daily", rc.HasDaily()).
		Msg("upload ingested")
	return rc, nil
}

func (s *Service) Overview(rc domain.ReportContext) Overview {
	o := Overview{Source: rc.Source, FallbackReason: rc.FallbackReason}
	if rc.HasDaily() {
		stats := aggregation.Summarize(rc.Daily, rc.Target)
		o.Daily = &stats
	}
	if !rc.Uploaded() {
		events := aggregation.SummarizeEvents(rc.Events)
		o.Events = &events
	}
	if rc.Table != nil {
		avg, ok := aggregation.AverageNumeric(rc.Table)
		o.Upload = &UploadOverview{
			TableID:        rc.Table.ID,
			Files:          rc.Table.Files,
			Records:        len(rc.Table.Rows),
			Columns:        len(rc.Table.Columns),
			NumericColumns: len(rc.Table.ColumnsOf(domain.ColumnNumeric)),
			AverageNumeric: avg,
			HasAverage:     ok,
			Completeness:   aggregation.Completeness(rc.Table),
		}
	}
	return o
}

func requireDaily(rc domain.ReportContext, op string) error {
	if !rc.HasDaily() {
		return domain.Unprocessable(op, "dataset has no daily satisfaction scores")
	}
	return nil
}

// Timeline returns the daily points of one month, or of every month when
// month is empty or AllMonths. An unknown month yields an empty timeline.
func (s *Service) Timeline(rc domain.ReportContext, month string) (Timeline, error) {
	if err := requireDaily(rc, "timeline"); err != nil {
		return Timeline{}, err
	}

	var filter aggregation.Filter
	if month != "" && month != AllMonths {
		filter = aggregation.ByMonth(month)
	} else {
		month = AllMonths
	}

	points := aggregation.Apply(rc.Daily, filter)
	return Timeline{
		Month:    month,
		Points:   points,
		Stats:    aggregation.Summarize(points, rc.Target),
		Weekend:  aggregation.Summarize(points, rc.Target, aggregation.WeekendsOnly),
		Weekday:  aggregation.Summarize(points, rc.Target, aggregation.WeekdaysOnly),
		Outliers: aggregation.ClassifyOutliers(domain.Scores(points)),
	}, nil
}

func (s *Service) Months(rc domain.ReportContext) ([]domain.MonthlyAggregate, error) {
	if err := requireDaily(rc, "months"); err != nil {
		return nil, err
	}
	return aggregation.GroupByMonth(rc.Daily, rc.Target), nil
}

// MonthOptions lists the calendar months selectable in the timeline.
func (s *Service) MonthOptions(rc domain.ReportContext) []string {
	labels := aggregation.MonthLabels(rc.Daily)
	return append([]string{AllMonths}, labels...)
}

func (s *Service) Metrics(rc domain.ReportContext) []domain.MetricAssessment {
	out := make([]domain.MetricAssessment, 0, len(rc.Catalog.Metrics))
	for _, m := range rc.Catalog.Metrics {
		out = append(out, aggregation.AssessMetric(m, rc.Catalog.Periods, rc.Catalog.Recommendations[m.Name]))
	}
	return out
}

func (s *Service) MetricAssessment(rc domain.ReportContext, name string) (domain.MetricAssessment, error) {
	m, ok := rc.Catalog.Metric(name)
	if !ok {
		return domain.MetricAssessment{}, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, name)
	}
	return aggregation.AssessMetric(m, rc.Catalog.Periods, rc.Catalog.Recommendations[name]), nil
}

func (s *Service) Priorities(rc domain.ReportContext) []domain.PriorityRow {
	return aggregation.RankPriority(aggregation.MetricRows(rc.Catalog.Metrics))
}

func (s *Service) Events(rc domain.ReportContext, filter domain.EventFilter) (EventsView, error) {
	events, err := aggregation.FilterEvents(rc.Events, filter)
	if err != nil {
		return EventsView{}, err
	}
	return EventsView{Events: events, Summary: aggregation.SummarizeEvents(events)}, nil
}

// Outliers classifies the daily scores, or a numeric column of an uploaded
// table. An empty column picks the satisfaction score when present and the
// first numeric column otherwise.
func (s *Service) Outliers(rc domain.ReportContext, column string) (domain.OutlierResult, error) {
	useDaily := rc.HasDaily() && (column == "" || column == ingest.ScoreColumn)
	if useDaily {
		return aggregation.ClassifyOutliers(domain.Scores(rc.Daily)), nil
	}
	if rc.Table == nil {
		if column != "" && column != ingest.ScoreColumn {
			return domain.OutlierResult{}, domain.Unprocessable("outliers", fmt.Sprintf("unknown column %q", column))
		}
		return domain.OutlierResult{}, domain.Unprocessable("outliers", "no data")
	}
	if column == "" {
		numeric := rc.Table.ColumnsOf(domain.ColumnNumeric)
		if len(numeric) == 0 {
			return domain.OutlierResult{}, domain.Unprocessable("outliers", "no numeric columns")
		}
		column = numeric[0].Name
	}
	return aggregation.ColumnOutliers(rc.Table, column)
}

// UploadAnalysis runs the column-generic statistics of an uploaded table.
// Sections the table cannot support are skipped with a note; a group
// request naming unusable columns fails.
func (s *Service) UploadAnalysis(ctx context.Context, rc domain.ReportContext, req GroupRequest) (UploadAnalysis, error) {
	t := rc.Table
	if t == nil {
		return UploadAnalysis{}, domain.Unprocessable("upload analysis", "no uploaded table")
	}

	a := UploadAnalysis{
		TableID:      t.ID,
		Files:        t.Files,
		Columns:      t.Columns,
		Completeness: aggregation.Completeness(t),
	}

	note := func(err error) error {
		if domain.IsUnprocessable(err) {
			a.Notes = append(a.Notes, err.Error())
			return nil
		}
		return err
	}

	describe, err := aggregation.Describe(t)
	if err := note(err); err != nil {
		return UploadAnalysis{}, err
	}
	a.Describe = describe

	corr, err := aggregation.Correlation(t)
	if err == nil {
		a.Correlation = &corr
	} else if err := note(err); err != nil {
		return UploadAnalysis{}, err
	}

	variability, err := aggregation.Variability(t)
	if err := note(err); err != nil {
		return UploadAnalysis{}, err
	}
	a.Variability = variability

	if req.GroupBy != "" || req.Value != "" {
		groups, err := s.groupStats(ctx, t, req)
		if err != nil {
			return UploadAnalysis{}, err
		}
		a.Groups = groups
	}
	return a, nil
}

func (s *Service) groupStats(ctx context.Context, t *domain.Table, req GroupRequest) ([]domain.GroupStat, error) {
	group, ok := t.Column(req.GroupBy)
	if !ok || group.Kind == domain.ColumnNumeric {
		return nil, domain.Unprocessable("group stats", fmt.Sprintf("%q is not a categorical column", req.GroupBy))
	}
	value, ok := t.Column(req.Value)
	if !ok || value.Kind != domain.ColumnNumeric {
		return nil, domain.Unprocessable("group stats", fmt.Sprintf("%q is not a numeric column", req.Value))
	}
	if s.store == nil {
		return nil, errors.New("grouped statistics need a table store")
	}

	logger := zerolog.Ctx(ctx)
	if err := s.store.Load(ctx, t); err != nil {
		return nil, fmt.Errorf("load table %s: %w", t.ID, err)
	}
	defer func() {
		if err := s.store.Drop(ctx, t.ID); err != nil {
			logger.Error().Err(err).Str("table", t.ID).Msg("failed to drop upload table")
		}
	}()

	stats, err := s.store.GroupStats(ctx, t.ID, group.Name, value.Name)
	if err != nil {
		return nil, fmt.Errorf("group %s by %s: %w", value.Name, group.Name, err)
	}
	return stats, nil
}

// SummaryRows builds the exported summary report. Uploaded tables are
// described structurally; daily series by their KPIs.
func (s *Service) SummaryRows(rc domain.ReportContext) []domain.SummaryRow {
	if rc.Uploaded() && rc.Table != nil {
		c := aggregation.Completeness(rc.Table)
		return []domain.SummaryRow{
			{Metric: "Total Records", Value: fmt.Sprint(c.Rows)},
			{Metric: "Total Columns", Value: fmt.Sprint(c.Columns)},
			{Metric: "Numeric Columns", Value: fmt.Sprint(len(rc.Table.ColumnsOf(domain.ColumnNumeric)))},
			{Metric: "Missing Values", Value: fmt.Sprint(c.Missing)},
		}
	}

	stats := aggregation.Summarize(rc.Daily, rc.Target)
	return []domain.SummaryRow{
		{Metric: "Average Satisfaction", Value: fmt.Sprintf("%.2f", stats.Mean)},
		{Metric: "Target Achievement", Value: fmt.Sprintf("%.1f%%", stats.TargetAchievementPct)},
		{Metric: "Total Days", Value: fmt.Sprint(stats.Count)},
		{Metric: "Days Below Target", Value: fmt.Sprint(stats.BelowTarget)},
	}
}

// MetricNames lists catalog metrics in catalog order.
func (s *Service) MetricNames(rc domain.ReportContext) []string {
	return rc.Catalog.Names()
}
