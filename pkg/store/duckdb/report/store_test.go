package report

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bi-tools/reportsmith/pkg/models/store"
	"github.com/bi-tools/reportsmith/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: s,
	}
}

func testRecord(id string, createdAt time.Time) store.ReportRecord {
	return store.ReportRecord{
		ID:        id,
		Slug:      "what_is_our_total_revenue",
		Title:     "Analysis Report",
		Question:  "What is our total revenue?",
		SQLText:   "SELECT SUM(revenue) FROM sales",
		Path:      "reports/what_is_our_total_revenue_20250310_143000.md",
		Format:    "markdown",
		CreatedAt: createdAt,
	}
}

func TestReportStore_AddAndGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	record := testRecord("id-1", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC))
	require.NoError(t, f.store.Add(ctx, record))

	got, err := f.store.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, record.Slug, got.Slug)
	assert.Equal(t, record.Question, got.Question)
	assert.Equal(t, record.SQLText, got.SQLText)
	assert.Equal(t, record.Path, got.Path)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))
}

func TestReportStore_Get_NotFound(t *testing.T) {
	f := setupFixture(t)

	_, err := f.store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportStore_List_NewestFirst(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	require.NoError(t, f.store.Add(ctx, testRecord("id-old", base)))
	require.NoError(t, f.store.Add(ctx, testRecord("id-new", base.Add(time.Hour))))
	require.NoError(t, f.store.Add(ctx, testRecord("id-mid", base.Add(time.Minute))))

	records, err := f.store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "id-new", records[0].ID)
	assert.Equal(t, "id-mid", records[1].ID)
}

func TestReportStore_Add_InTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx, err := f.db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := duckdb.WithTransaction(ctx, tx)
	record := testRecord("id-tx", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC))
	require.NoError(t, f.store.Add(txCtx, record))
	require.NoError(t, tx.Rollback())

	// The rollback discards the insert.
	_, err = f.store.Get(ctx, "id-tx")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportStore_Get_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, slug, title, question, sql_text, path, format, created_at").
		WithArgs("id-1").
		WillReturnError(sql.ErrConnDone)

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "id-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
