package dashboard

import (
	"fmt"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/export"
)

// Dataset names accepted by Dataset.
const (
	DatasetDaily   = "daily"
	DatasetEvents  = "events"
	DatasetSummary = "summary"
	DatasetUpload  = "upload"
)

// Dataset resolves an export name against a context.
func (s *Service) Dataset(rc domain.ReportContext, name string) (export.Dataset, error) {
	switch name {
	case DatasetDaily:
		if !rc.HasDaily() {
			return export.Dataset{}, domain.Unprocessable("export", "no daily scores")
		}
		return export.Daily(rc.Daily), nil
	case DatasetEvents:
		if rc.Uploaded() {
			return export.Dataset{}, domain.Unprocessable("export", "uploaded data has no events")
		}
		return export.Events(rc.Events), nil
	case DatasetSummary:
		return export.Summary(s.SummaryRows(rc)), nil
	case DatasetUpload:
		if rc.Table == nil {
			return export.Dataset{}, domain.Unprocessable("export", "no uploaded table")
		}
		return export.Table(rc.Table), nil
	default:
		return export.Dataset{}, fmt.Errorf("%w %q. Expected daily, events, summary or upload", domain.ErrUnknownDataset, name)
	}
}
