package domain

import (
	"fmt"
	"time"
)

// Report represents a complete analysis document before rendering.
// A report is constructed once per analysis request and never mutated
// after that; GeneratedAt is fixed by the caller at construction time.
type Report struct {
	Title            string
	GeneratedAt      time.Time
	ExecutiveSummary string
	Question         string
	SQLText          string
	Preview          DataPreview
	Charts           []string
	Recommendations  []string
}

// DataPreview is a rectangular sample of query results embedded in a report.
type DataPreview struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the preview carries no rows.
func (p DataPreview) Empty() bool {
	return len(p.Rows) == 0
}

// NewDataPreview builds a DataPreview from named-column records, ordering
// the cells of every row by the header. Each record must carry exactly the
// header's column set; any disagreement yields a ValidationError.
func NewDataPreview(columns []string, records []map[string]string) (DataPreview, error) {
	if len(records) == 0 {
		return DataPreview{Columns: columns}, nil
	}
	if len(columns) == 0 {
		return DataPreview{}, &ValidationError{Reason: "data preview has rows but no column headers"}
	}

	known := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		known[c] = struct{}{}
	}

	rows := make([][]string, 0, len(records))
	for i, record := range records {
		for name := range record {
			if _, ok := known[name]; !ok {
				return DataPreview{}, &ValidationError{
					Reason: fmt.Sprintf("row %d has column %q not present in the header", i, name),
				}
			}
		}

		row := make([]string, len(columns))
		for j, name := range columns {
			value, ok := record[name]
			if !ok {
				return DataPreview{}, &ValidationError{
					Reason: fmt.Sprintf("row %d is missing column %q", i, name),
				}
			}
			row[j] = value
		}
		rows = append(rows, row)
	}

	return DataPreview{Columns: columns, Rows: rows}, nil
}
