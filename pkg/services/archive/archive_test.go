package archive

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/bi-tools/reportsmith/pkg/models/api"
	"github.com/bi-tools/reportsmith/pkg/models/domain"
	"github.com/bi-tools/reportsmith/pkg/services/assembler"
	"github.com/bi-tools/reportsmith/pkg/store/duckdb"
	reportstore "github.com/bi-tools/reportsmith/pkg/store/duckdb/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	archiver   *Archiver
	store      reportstore.Store
	reportsDir string
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	store, err := reportstore.NewStore(db)
	require.NoError(t, err)

	renderer, err := assembler.New()
	require.NoError(t, err)

	reportsDir := t.TempDir()
	archiver := NewArchiver("markdown", renderer, store, reportsDir)
	archiver.now = func() time.Time {
		return time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	}

	return &fixture{
		archiver:   archiver,
		store:      store,
		reportsDir: reportsDir,
	}
}

func testPayload() api.ReportPayload {
	return api.ReportPayload{
		Question: "What is our total revenue?",
		SQL:      "SELECT SUM(revenue) FROM sales",
		Summary:  "Revenue is healthy.",
		Columns:  []string{"Metric", "Value"},
		Rows: []map[string]string{
			{"Metric": "Total Revenue", "Value": "$1,130,000"},
		},
	}
}

func TestArchiver_Assemble(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	record, err := f.archiver.Assemble(ctx, testPayload())
	require.NoError(t, err)

	assert.Equal(t, "what_is_our_total_revenue", record.Slug)
	assert.Equal(t, "Analysis Report", record.Title)
	assert.Equal(t, "markdown", record.Format)
	assert.Equal(t, filepath.Join(f.reportsDir, "what_is_our_total_revenue_20250310_143000.md"), record.Path)

	content, err := os.ReadFile(record.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Analysis Report")
	assert.Contains(t, string(content), "| Total Revenue | $1,130,000 |")

	stored, err := f.store.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Path, stored.Path)
	assert.Equal(t, record.Question, stored.Question)
}

func TestArchiver_Assemble_FilenameConvention(t *testing.T) {
	f := setupFixture(t)

	record, err := f.archiver.Assemble(context.Background(), testPayload())
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^[a-z0-9_]+_\d{8}_\d{6}\.md$`)
	assert.True(t, pattern.MatchString(filepath.Base(record.Path)),
		"file name %q does not follow <slug>_<YYYYMMDD_HHMMSS>.md", filepath.Base(record.Path))
}

func TestArchiver_Assemble_CollisionGetsSuffix(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	first, err := f.archiver.Assemble(ctx, testPayload())
	require.NoError(t, err)

	// Same question and a fixed clock produce the same base name.
	second, err := f.archiver.Assemble(ctx, testPayload())
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.Equal(t, "what_is_our_total_revenue_20250310_143000_2.md", filepath.Base(second.Path))
}

func TestArchiver_Assemble_ValidationFailureWritesNothing(t *testing.T) {
	f := setupFixture(t)

	payload := testPayload()
	payload.Rows = []map[string]string{{"Metric": "Orders", "Region": "EMEA", "Value": "1"}}

	_, err := f.archiver.Assemble(context.Background(), payload)
	require.Error(t, err)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	entries, err := os.ReadDir(f.reportsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "question with punctuation",
			input:    "What is our total revenue?",
			expected: "what_is_our_total_revenue",
		},
		{
			name:     "mixed separators collapse",
			input:    "Top-10 products -- by revenue!",
			expected: "top_10_products_by_revenue",
		},
		{
			name:     "empty falls back",
			input:    "???",
			expected: "report",
		},
		{
			name:     "long input is bounded",
			input:    "how many customers churned in each region during the last four quarters of the fiscal year",
			expected: "how_many_customers_churned_in_each_region_during_the_last_fo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
