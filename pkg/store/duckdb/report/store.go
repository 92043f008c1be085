package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bi-tools/reportsmith/pkg/models/store"
	"github.com/bi-tools/reportsmith/pkg/store/duckdb"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("report record not found")

// Store persists and reads back report history records. Add participates in
// a transaction when one is bound to the context via duckdb.WithTransaction.
type Store interface {
	Add(ctx context.Context, record store.ReportRecord) error
	Get(ctx context.Context, id string) (store.ReportRecord, error)
	List(ctx context.Context, limit int) ([]store.ReportRecord, error)
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

func (s *reportStore) Add(ctx context.Context, record store.ReportRecord) error {
	query := `
		INSERT INTO report_records (
			id, slug, title, question, sql_text, path, format, created_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?
		)`

	tx := duckdb.GetTransaction(ctx)

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		record.ID,
		record.Slug,
		record.Title,
		record.Question,
		record.SQLText,
		record.Path,
		record.Format,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	return nil
}

func (s *reportStore) Get(ctx context.Context, id string) (store.ReportRecord, error) {
	query := `
		SELECT id, slug, title, question, sql_text, path, format, created_at
		FROM report_records
		WHERE id = ?`

	var record store.ReportRecord
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Slug,
		&record.Title,
		&record.Question,
		&record.SQLText,
		&record.Path,
		&record.Format,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ReportRecord{}, ErrNotFound
	}
	if err != nil {
		return store.ReportRecord{}, fmt.Errorf("query record: %w", err)
	}

	return record, nil
}

func (s *reportStore) List(ctx context.Context, limit int) ([]store.ReportRecord, error) {
	query := `
		SELECT id, slug, title, question, sql_text, path, format, created_at
		FROM report_records
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []store.ReportRecord
	for rows.Next() {
		var record store.ReportRecord
		if err := rows.Scan(
			&record.ID,
			&record.Slug,
			&record.Title,
			&record.Question,
			&record.SQLText,
			&record.Path,
			&record.Format,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
