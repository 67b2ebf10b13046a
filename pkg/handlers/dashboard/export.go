package dashboard

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/csat-atlas/pkg/services/export"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")
	format := chi.URLParam(r, "format")
	if format != "csv" && format != "xlsx" {
		h.fail(w, r, invalidParam(fmt.Sprintf("unknown format %q. Expected csv or xlsx", format)))
		return
	}

	rc, ok := h.synthetic(w, r)
	if !ok {
		return
	}
	ds, err := h.svc.Dataset(rc, name)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	if format == "csv" {
		contentType = "text/csv"
		err = export.WriteCSV(&buf, ds)
	} else {
		contentType = xlsxContentType
		err = export.WriteXLSX(&buf, ds)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	fileName := export.FileName(ds.Name, h.now(), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
