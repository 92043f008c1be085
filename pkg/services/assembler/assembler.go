package assembler

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/bi-tools/reportsmith/pkg/models/domain"
	"github.com/bi-tools/reportsmith/pkg/services/render"
)

// DefaultRecommendations is the generic next-steps checklist used when the
// upstream pipeline supplies no recommendations of its own.
var DefaultRecommendations = []string{
	"Review the full result set behind this preview for completeness",
	"Validate the generated SQL against the production schema",
	"Share the findings with the relevant stakeholders",
	"Schedule a follow-up run to track the metric over time",
	"Archive this report alongside prior runs for audit purposes",
}

const markdownTemplate = `# {{.Title}}

Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}

## Executive Summary

{{.ExecutiveSummary}}

## Question Asked

> {{.Question}}

## SQL Query

{{fence}}sql
{{.SQLText}}
{{fence}}
{{if not .Preview.Empty}}
## Data Preview

{{table .Preview}}
{{end}}{{if .Charts}}
## Visualizations

{{charts .Charts}}
{{end}}
## Recommendations

{{checklist .Recommendations}}
`

// Markdown assembles reports into UTF-8 Markdown documents with a fixed
// section order: Summary, Question, SQL, Data Preview, Visualizations,
// Recommendations. Optional sections are omitted rather than left empty.
type Markdown struct {
	tmpl *template.Template
}

// New creates a Markdown assembler.
func New() (*Markdown, error) {
	funcMap := template.FuncMap{
		"fence": func() string { return "```" },
		"table": func(preview domain.DataPreview) string {
			lines := make([]string, 0, len(preview.Rows)+2)
			lines = append(lines, tableRow(preview.Columns), separatorRow(len(preview.Columns)))
			for _, row := range preview.Rows {
				lines = append(lines, tableRow(row))
			}
			return strings.Join(lines, "\n")
		},
		"charts": func(charts []string) string {
			lines := make([]string, 0, len(charts))
			for i, chart := range charts {
				lines = append(lines, fmt.Sprintf("%d. ![Chart %d](%s)", i+1, i+1, chart))
			}
			return strings.Join(lines, "\n")
		},
		"checklist": func(items []string) string {
			if len(items) == 0 {
				items = DefaultRecommendations
			}
			lines := make([]string, 0, len(items))
			for _, item := range items {
				lines = append(lines, "- [ ] "+item)
			}
			return strings.Join(lines, "\n")
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(markdownTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	return &Markdown{tmpl: tmpl}, nil
}

// Factory creates a Markdown assembler behind the render.Renderer interface.
func Factory() (render.Renderer, error) {
	return New()
}

// Render produces the Markdown document for the report. It validates the
// report first and fails fast on malformed input; it never truncates or
// realigns a damaged preview.
func (m *Markdown) Render(report domain.Report) (string, error) {
	if err := validate(report); err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := m.tmpl.Execute(&sb, report); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return sb.String(), nil
}

func (m *Markdown) Ext() string {
	return ".md"
}

func validate(report domain.Report) error {
	if strings.TrimSpace(report.Question) == "" {
		return &domain.ValidationError{Reason: "question is required"}
	}
	if strings.TrimSpace(report.SQLText) == "" {
		return &domain.ValidationError{Reason: "sql text is required"}
	}

	cols := len(report.Preview.Columns)
	if len(report.Preview.Rows) > 0 && cols == 0 {
		return &domain.ValidationError{Reason: "data preview has rows but no column headers"}
	}
	for i, row := range report.Preview.Rows {
		if len(row) != cols {
			return &domain.ValidationError{
				Reason: fmt.Sprintf("row %d has %d cells, header has %d columns", i, len(row), cols),
			}
		}
	}
	return nil
}

func tableRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		cell = strings.ReplaceAll(cell, "\n", " ")
		escaped[i] = strings.ReplaceAll(cell, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

func separatorRow(n int) string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "---"
	}
	return "| " + strings.Join(cells, " | ") + " |"
}
