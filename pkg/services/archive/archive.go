package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bi-tools/reportsmith/pkg/adapters"
	"github.com/bi-tools/reportsmith/pkg/models/api"
	"github.com/bi-tools/reportsmith/pkg/models/domain"
	"github.com/bi-tools/reportsmith/pkg/models/store"
	"github.com/bi-tools/reportsmith/pkg/services/render"
	reportstore "github.com/bi-tools/reportsmith/pkg/store/duckdb/report"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const stampLayout = "20060102_150405"

// Archiver assembles inbound payloads into rendered documents, writes them
// to the reports directory and records them in the history store. Archived
// reports are immutable; there is no update path.
type Archiver struct {
	format     string
	renderer   render.Renderer
	store      reportstore.Store
	reportsDir string
	now        func() time.Time
}

func NewArchiver(format string, renderer render.Renderer, store reportstore.Store, reportsDir string) *Archiver {
	return &Archiver{
		format:     format,
		renderer:   renderer,
		store:      store,
		reportsDir: reportsDir,
		now:        time.Now,
	}
}

// Assemble validates and renders the payload, persists the document and
// returns the history record. Validation failures surface as
// *domain.ValidationError.
func (a *Archiver) Assemble(ctx context.Context, payload api.ReportPayload) (store.ReportRecord, error) {
	logger := zerolog.Ctx(ctx)

	report, err := adapters.MapPayloadToDomainReport(payload, a.now())
	if err != nil {
		return store.ReportRecord{}, err
	}

	content, err := a.renderer.Render(report)
	if err != nil {
		return store.ReportRecord{}, err
	}

	path, err := a.write(report, content)
	if err != nil {
		return store.ReportRecord{}, fmt.Errorf("failed to persist report: %w", err)
	}

	record := store.ReportRecord{
		ID:        uuid.NewString(),
		Slug:      Slugify(report.Question),
		Title:     report.Title,
		Question:  report.Question,
		SQLText:   report.SQLText,
		Path:      path,
		Format:    a.format,
		CreatedAt: a.now().UTC(),
	}

	if err := a.store.Add(ctx, record); err != nil {
		return store.ReportRecord{}, fmt.Errorf("failed to record report history: %w", err)
	}

	logger.Info().
		Str("id", record.ID).
		Str("path", record.Path).
		Msg("report archived")

	return record, nil
}

// write lands the document under the reports directory following the
// <slug>_<YYYYMMDD_HHMMSS>.md convention. A collision within the same
// second gets a short uniquifying suffix.
func (a *Archiver) write(report domain.Report, content string) (string, error) {
	if err := os.MkdirAll(a.reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	base := fmt.Sprintf("%s_%s", Slugify(report.Question), report.GeneratedAt.Format(stampLayout))
	ext := a.renderer.Ext()

	name := base + ext
	for i := 2; ; i++ {
		path := filepath.Join(a.reportsDir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			if i > 10 {
				return "", fmt.Errorf("too many filename collisions for %s", base)
			}
			name = fmt.Sprintf("%s_%d%s", base, i, ext)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create report file: %w", err)
		}

		if _, err := f.WriteString(content); err != nil {
			f.Close()
			return "", fmt.Errorf("write report file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close report file: %w", err)
		}
		return path, nil
	}
}
