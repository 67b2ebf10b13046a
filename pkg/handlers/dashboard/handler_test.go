package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/api"
	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/dashboard"
	"github.com/de-tools/csat-atlas/pkg/services/export"
	"github.com/de-tools/csat-atlas/pkg/services/ingest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) SyntheticContext(ctx context.Context) (domain.ReportContext, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ReportContext), args.Error(1)
}

func (m *mockService) UploadedContext(ctx context.Context, sources ...ingest.Source) (domain.ReportContext, error) {
	args := m.Called(ctx, len(sources))
	return args.Get(0).(domain.ReportContext), args.Error(1)
}

func (m *mockService) Overview(rc domain.ReportContext) dashboard.Overview {
	return dashboard.Overview{Source: rc.Source, FallbackReason: rc.FallbackReason}
}

func (m *mockService) Timeline(rc domain.ReportContext, month string) (dashboard.Timeline, error) {
	args := m.Called(rc, month)
	return args.Get(0).(dashboard.Timeline), args.Error(1)
}

func (m *mockService) Months(rc domain.ReportContext) ([]domain.MonthlyAggregate, error) {
	args := m.Called(rc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyAggregate), args.Error(1)
}

func (m *mockService) Metrics(rc domain.ReportContext) []domain.MetricAssessment {
	return nil
}

func (m *mockService) MetricAssessment(rc domain.ReportContext, name string) (domain.MetricAssessment, error) {
	args := m.Called(rc, name)
	return args.Get(0).(domain.MetricAssessment), args.Error(1)
}

func (m *mockService) Priorities(rc domain.ReportContext) []domain.PriorityRow {
	return nil
}

func (m *mockService) Events(rc domain.ReportContext, filter domain.EventFilter) (dashboard.EventsView, error) {
	args := m.Called(rc, filter)
	return args.Get(0).(dashboard.EventsView), args.Error(1)
}

func (m *mockService) Outliers(rc domain.ReportContext, column string) (domain.OutlierResult, error) {
	args := m.Called(rc, column)
	return args.Get(0).(domain.OutlierResult), args.Error(1)
}

func (m *mockService) UploadAnalysis(ctx context.Context, rc domain.ReportContext, req dashboard.GroupRequest) (dashboard.UploadAnalysis, error) {
	args := m.Called(ctx, rc, req)
	return args.Get(0).(dashboard.UploadAnalysis), args.Error(1)
}

func (m *mockService) Dataset(rc domain.ReportContext, name string) (export.Dataset, error) {
	args := m.Called(rc, name)
	return args.Get(0).(export.Dataset), args.Error(1)
}

var syntheticRC = domain.ReportContext{Source: domain.SourceSynthetic, Target: 8}

func TestParseEventFilter(t *testing.T) {
	tests := []struct {
		name    string
		query   map[string][]string
		want    domain.EventFilter
		wantErr string
	}{
		{
			name:  "empty",
			query: map[string][]string{},
			want:  domain.EventFilter{},
		},
		{
			name: "all parameters",
			query: map[string][]string{
				"min_failure": {"37.5"},
				"severity":    {"critical,High", "low"},
				"sort":        {"severity"},
			},
			want: domain.EventFilter{
				MinFailurePct: 37.5,
				Severities:    []domain.Severity{domain.SeverityCritical, domain.SeverityHigh, domain.SeverityLow},
				SortBy:        domain.EventSortSeverity,
			},
		},
		{
			name:    "min failure out of range",
			query:   map[string][]string{"min_failure": {"120"}},
			wantErr: "invalid 'min_failure'. Expected a percentage between 0 and 100",
		},
		{
			name:    "unknown severity",
			query:   map[string][]string{"severity": {"urgent"}},
			wantErr: "invalid 'severity'. Expected Critical, High, Medium or Low",
		},
		{
			name:    "unknown sort",
			query:   map[string][]string{"sort": {"promotion"}},
			wantErr: "invalid 'sort'. Expected date, failure_percentage or severity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventFilter(tt.query)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.Equal(t, http.StatusBadRequest, statusOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", invalidParam("nope"), http.StatusBadRequest},
		{"unknown metric", errors.Join(domain.ErrUnknownMetric), http.StatusNotFound},
		{"unknown dataset", fmt.Errorf("%w %q", domain.ErrUnknownDataset, "x"), http.StatusBadRequest},
		{"unprocessable", domain.Unprocessable("ingest", "empty"), http.StatusUnprocessableEntity},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestGetMetric(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "found",
			setupMock: func(m *mockService) {
				m.On("SyntheticContext", mock.Anything).Return(syntheticRC, nil)
				m.On("MetricAssessment", syntheticRC, "Site Design").Return(domain.MetricAssessment{
					Metric:   "Site Design",
					Target:   9,
					Current:  8.5,
					Priority: domain.SeverityHigh,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown",
			setupMock: func(m *mockService) {
				m.On("SyntheticContext", mock.Anything).Return(syntheticRC, nil)
				m.On("MetricAssessment", syntheticRC, "Site Design").
					Return(domain.MetricAssessment{}, errors.Join(domain.ErrUnknownMetric))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "unknown metric\n",
		},
		{
			name: "context error",
			setupMock: func(m *mockService) {
				m.On("SyntheticContext", mock.Anything).Return(domain.ReportContext{}, errors.New("generator failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "internal error\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.setupMock(svc)
			h := NewHandler(svc, 1<<20)

			r := chi.NewRouter()
			r.Get("/metrics/{metric}", h.GetMetric)

			req := httptest.NewRequest(http.MethodGet, "/metrics/Site%20Design", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			} else {
				var got api.MetricAssessment
				require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				assert.Equal(t, "Site Design", got.Metric)
				assert.Equal(t, api.SeverityHigh, got.Priority)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGetEvents_InvalidFilterSkipsService(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/events?severity=urgent", nil)
	w := httptest.NewRecorder()
	h.GetEvents(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SyntheticContext", mock.Anything)
}

func TestExport(t *testing.T) {
	svc := new(mockService)
	svc.On("SyntheticContext", mock.Anything).Return(syntheticRC, nil)
	svc.On("Dataset", syntheticRC, "summary").
		Return(export.Summary([]domain.SummaryRow{{Metric: "Total Days", Value: "2"}}), nil)
	h := NewHandler(svc, 1<<20)
	h.now = func() time.Time { return time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Get("/export/{dataset}.{format}", h.Export)

	req := httptest.NewRequest(http.MethodGet, "/export/summary.csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="summary_report_20251001.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Metric,Value\nTotal Days,2\n", w.Body.String())
}

func TestExport_UploadWithoutTable(t *testing.T) {
	svc := new(mockService)
	svc.On("SyntheticContext", mock.Anything).Return(syntheticRC, nil)
	svc.On("Dataset", syntheticRC, "upload").
		Return(export.Dataset{}, domain.Unprocessable("export", "no uploaded table"))
	h := NewHandler(svc, 1<<20)

	r := chi.NewRouter()
	r.Get("/export/{dataset}.{format}", h.Export)

	req := httptest.NewRequest(http.MethodGet, "/export/upload.xlsx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func uploadRequest(t *testing.T, fields map[string]string, files ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range files {
		fw, err := mw.CreateFormFile(uploadField, name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, "a,b\n1,2\n")
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	uploaded := domain.ReportContext{Source: domain.SourceUploaded, Table: &domain.Table{ID: "t1"}}
	fallback := domain.ReportContext{Source: domain.SourceSynthetic, FallbackReason: "unprocessable input: ingest: empty file"}
	groupReq := dashboard.GroupRequest{GroupBy: "a", Value: "b"}

	tests := []struct {
		name           string
		files          []string
		setupMock      func(*mockService)
		expectedStatus int
		check          func(t *testing.T, res api.UploadResponse)
	}{
		{
			name:  "analysed",
			files: []string{"one.csv", "two.csv"},
			setupMock: func(m *mockService) {
				m.On("UploadedContext", mock.Anything, 2).Return(uploaded, nil)
				m.On("UploadAnalysis", mock.Anything, uploaded, groupReq).
					Return(dashboard.UploadAnalysis{TableID: "t1"}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, res api.UploadResponse) {
				assert.Equal(t, "uploaded", res.Overview.Source)
				require.NotNil(t, res.Analysis)
				assert.Equal(t, "t1", res.Analysis.TableID)
			},
		},
		{
			name:  "fallback",
			files: []string{"one.csv"},
			setupMock: func(m *mockService) {
				m.On("UploadedContext", mock.Anything, 1).Return(fallback, nil)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, res api.UploadResponse) {
				assert.Equal(t, "synthetic", res.Overview.Source)
				assert.Equal(t, fallback.FallbackReason, res.Error)
				assert.Nil(t, res.Analysis)
			},
		},
		{
			name:  "bad group request",
			files: []string{"one.csv"},
			setupMock: func(m *mockService) {
				m.On("UploadedContext", mock.Anything, 1).Return(uploaded, nil)
				m.On("UploadAnalysis", mock.Anything, uploaded, groupReq).
					Return(dashboard.UploadAnalysis{}, domain.Unprocessable("group stats", "b is not numeric"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, res api.UploadResponse) {
				assert.Equal(t, "uploaded", res.Overview.Source)
				assert.Contains(t, res.Error, "b is not numeric")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.setupMock(svc)
			h := NewHandler(svc, 1<<20)

			w := httptest.NewRecorder()
			h.Upload(w, uploadRequest(t, map[string]string{"group_by": "a", "value": "b"}, tt.files...))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var res api.UploadResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
			tt.check(t, res)
			svc.AssertExpectations(t)
		})
	}
}

func TestUpload_Rejected(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		h := NewHandler(new(mockService), 1<<20)
		w := httptest.NewRecorder()
		h.Upload(w, uploadRequest(t, map[string]string{"group_by": "a"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "no files uploaded. Expected multipart field 'files'\n", w.Body.String())
	})

	t.Run("too large", func(t *testing.T) {
		h := NewHandler(new(mockService), 16)
		w := httptest.NewRecorder()
		h.Upload(w, uploadRequest(t, nil, "big.csv"))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		h := NewHandler(new(mockService), 1<<20)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/uploads", bytes.NewBufferString("a,b"))
		req.Header.Set("Content-Type", "text/csv")
		h.Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "encodable value",
			value:      map[string]float64{"mean": 8.5},
			wantStatus: http.StatusOK,
			wantBody:   "{\"mean\":8.5}\n",
		},
		{
			name:       "NaN becomes internal error",
			value:      map[string]float64{"mean": math.NaN()},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error\n",
		},
		{
			name:       "infinity becomes internal error",
			value:      map[string]float64{"mean": math.Inf(1)},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
			w := httptest.NewRecorder()

			writeJSON(w, r, http.StatusOK, tt.value)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}
