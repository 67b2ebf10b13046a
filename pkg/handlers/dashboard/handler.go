package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/csat-atlas/pkg/adapters"
	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/dashboard"
	"github.com/de-tools/csat-atlas/pkg/services/export"
	"github.com/de-tools/csat-atlas/pkg/services/ingest"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Service is the subset of the dashboard the HTTP API renders.
type Service interface {
	SyntheticContext(ctx context.Context) (domain.ReportContext, error)
	UploadedContext(ctx context.Context, sources ...ingest.Source) (domain.ReportContext, error)
	Overview(rc domain.ReportContext) dashboard.Overview
	Timeline(rc domain.ReportContext, month string) (dashboard.Timeline, error)
	Months(rc domain.ReportContext) ([]domain.MonthlyAggregate, error)
	Metrics(rc domain.ReportContext) []domain.MetricAssessment
	MetricAssessment(rc domain.ReportContext, name string) (domain.MetricAssessment, error)
	Priorities(rc domain.ReportContext) []domain.PriorityRow
	Events(rc domain.ReportContext, filter domain.EventFilter) (dashboard.EventsView, error)
	Outliers(rc domain.ReportContext, column string) (domain.OutlierResult, error)
	UploadAnalysis(ctx context.Context, rc domain.ReportContext, req dashboard.GroupRequest) (dashboard.UploadAnalysis, error)
	Dataset(rc domain.ReportContext, name string) (export.Dataset, error)
}

type Handler struct {
	svc            Service
	maxUploadBytes int64
	now            func() time.Time
}

func NewHandler(svc Service, maxUploadBytes int64) *Handler {
	return &Handler{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

type badRequest struct {
	msg string
}

func (e *badRequest) Error() string {
	return e.msg
}

func invalidParam(msg string) error {
	return &badRequest{msg: msg}
}

func statusOf(err error) int {
	var bad *badRequest
	switch {
	case errors.As(err, &bad), errors.Is(err, domain.ErrUnknownDataset):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownMetric):
		return http.StatusNotFound
	case domain.IsUnprocessable(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	logger := zerolog.Ctx(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
		http.Error(w, "internal error", status)
		return
	}
	logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	http.Error(w, err.Error(), status)
}

// writeJSON encodes v before committing the status, so a value that cannot be
// encoded turns into a 500 rather than a truncated success.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("failed to write response")
	}
}

func (h *Handler) synthetic(w http.ResponseWriter, r *http.Request) (domain.ReportContext, bool) {
	rc, err := h.svc.SyntheticContext(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return domain.ReportContext{}, false
	}
	return rc, true
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.synthetic(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapOverviewDomainToApi(h.svc.Overview(rc)))
}

func (h *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.synthetic(w, r)
	if !ok {
		return
	}
	tl, err := h.svc.Timeline(rc, r.URL.Query().Get("month"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapTimelineDomainToApi(tl))
}

func (h *Handler) GetMonths(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.synthetic(w, r)
	if !ok {
		return
	}
	months, err := h.svc.Months(rc)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapMonthlyAggregatesDomainToApi(months))
}

func (h *Handler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.synthetic(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapMetricAssessmentsDomainToApi(h.svc.Metrics(rc)))
}

func (h *Handler) GetMetric(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.synthetic(w, r)
	if !ok {
		return
	}
	a, err := h.svc.MetricAssessment(rc, chi.URLParam(r, "metric"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapMetricAssessmentDomainToApi(a))
}

func (h *Handler) GetPriorities(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.synthetic(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapPriorityRowsDomainToApi(h.svc.Priorities(rc)))
}

// ParseEventFilter reads min_failure, severity (comma separated or
// repeated) and sort from the query.
func ParseEventFilter(q map[string][]string) (domain.EventFilter, error) {
	var f domain.EventFilter
	if v := first(q, "min_failure"); v != "" {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil || pct < 0 || pct > 100 {
			return f, invalidParam("invalid 'min_failure'. Expected a percentage between 0 and 100")
		}
		f.MinFailurePct = pct
	}
	for _, raw := range q["severity"] {
		for _, name := range strings.Split(raw, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			sev, err := domain.ParseSeverity(name)
			if err != nil {
				return f, invalidParam("invalid 'severity'. Expected Critical, High, Medium or Low")
			}
			f.Severities = append(f.Severities, sev)
		}
	}
	switch sort := domain.EventSort(first(q, "sort")); sort {
	case "", domain.EventSortDate, domain.EventSortFailure, domain.EventSortSeverity:
		f.SortBy = sort
	default:
		return f, invalidParam("invalid 'sort'. Expected date, failure_percentage or severity")
	}
	return f, nil
}

func first(q map[string][]string, key string) string {
	if vs := q[key]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseEventFilter(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rc, ok := h.synthetic(w, r)
	if !ok {
		return
	}
	view, err := h.svc.Events(rc, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapEventsViewDomainToApi(view))
}

func (h *Handler) GetOutliers(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.synthetic(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Outliers(rc, r.URL.Query().Get("column"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapOutliersDomainToApi(res))
}
