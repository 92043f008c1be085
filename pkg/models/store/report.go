package store

import "time"

// ReportRecord is the persisted history row for an archived report.
type ReportRecord struct {
	ID        string
	Slug      string
	Title     string
	Question  string
	SQLText   string
	Path      string
	Format    string
	CreatedAt time.Time
}
