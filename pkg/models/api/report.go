package api

import "time"

// ReportPayload is the document the upstream analysis pipeline submits.
// Rows are named-column records; the cell order is taken from Columns.
type ReportPayload struct {
	Title           string              `json:"title,omitempty"`
	Question        string              `json:"question"`
	SQL             string              `json:"sql"`
	Summary         string              `json:"summary"`
	Columns         []string            `json:"columns,omitempty"`
	Rows            []map[string]string `json:"rows,omitempty"`
	Charts          []string            `json:"charts,omitempty"`
	Recommendations []string            `json:"recommendations,omitempty"`
	GeneratedAt     *time.Time          `json:"generated_at,omitempty"`
}

// Report is the history entry returned by the API.
type Report struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Question  string    `json:"question"`
	Path      string    `json:"path"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportDocument is a history entry together with the rendered document body.
type ReportDocument struct {
	Report
	Content string `json:"content"`
}
