package adapters

import (
	"time"

	"github.com/bi-tools/reportsmith/pkg/models/api"
	"github.com/bi-tools/reportsmith/pkg/models/domain"
	"github.com/bi-tools/reportsmith/pkg/models/store"
)

const defaultTitle = "Analysis Report"

// MapPayloadToDomainReport converts an inbound payload into a domain report.
// The fallback timestamp is used when the payload carries none.
func MapPayloadToDomainReport(payload api.ReportPayload, fallback time.Time) (domain.Report, error) {
	preview, err := domain.NewDataPreview(payload.Columns, payload.Rows)
	if err != nil {
		return domain.Report{}, err
	}

	title := payload.Title
	if title == "" {
		title = defaultTitle
	}

	generatedAt := fallback
	if payload.GeneratedAt != nil {
		generatedAt = *payload.GeneratedAt
	}

	return domain.Report{
		Title:            title,
		GeneratedAt:      generatedAt.UTC(),
		ExecutiveSummary: payload.Summary,
		Question:         payload.Question,
		SQLText:          payload.SQL,
		Preview:          preview,
		Charts:           payload.Charts,
		Recommendations:  payload.Recommendations,
	}, nil
}

func MapRecordToAPIReport(record store.ReportRecord) api.Report {
	return api.Report{
		ID:        record.ID,
		Slug:      record.Slug,
		Title:     record.Title,
		Question:  record.Question,
		Path:      record.Path,
		Format:    record.Format,
		CreatedAt: record.CreatedAt,
	}
}

func MapRecordsToAPIReports(records []store.ReportRecord) []api.Report {
	reports := make([]api.Report, 0, len(records))
	for _, record := range records {
		reports = append(reports, MapRecordToAPIReport(record))
	}
	return reports
}
