package dashboard

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/de-tools/csat-atlas/pkg/adapters"
	"github.com/de-tools/csat-atlas/pkg/models/api"
	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/dashboard"
	"github.com/de-tools/csat-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
)

const uploadField = "files"

// Upload analyses the multipart files of the request. Unusable uploads are
// answered with 422 and the overview of the synthetic data used instead.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.fail(w, r, invalidParam("invalid multipart form"))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.Warn().Err(err).Msg("failed to remove multipart files")
		}
	}()

	headers := r.MultipartForm.File[uploadField]
	if len(headers) == 0 {
		h.fail(w, r, invalidParam("no files uploaded. Expected multipart field 'files'"))
		return
	}

	sources := make([]ingest.Source, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.fail(w, r, err)
			return
		}
		defer func(f multipart.File) { _ = f.Close() }(f)
		sources = append(sources, ingest.Source{Name: fh.Filename, Reader: f})
	}

	rc, err := h.svc.UploadedContext(ctx, sources...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if rc.FallbackReason != "" {
		writeJSON(w, r, http.StatusUnprocessableEntity, api.UploadResponse{
			Overview: adapters.MapOverviewDomainToApi(h.svc.Overview(rc)),
			Error:    rc.FallbackReason,
		})
		return
	}

	req := dashboard.GroupRequest{
		GroupBy: r.FormValue("group_by"),
		Value:   r.FormValue("value"),
	}
	analysis, err := h.svc.UploadAnalysis(ctx, rc, req)
	if err != nil {
		if !domain.IsUnprocessable(err) {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusUnprocessableEntity, api.UploadResponse{
			Overview: adapters.MapOverviewDomainToApi(h.svc.Overview(rc)),
			Error:    err.Error(),
		})
		return
	}

	mapped := adapters.MapUploadAnalysisDomainToApi(analysis)
	writeJSON(w, r, http.StatusOK, api.UploadResponse{
		Overview: adapters.MapOverviewDomainToApi(h.svc.Overview(rc)),
		Analysis: &mapped,
	})
}
