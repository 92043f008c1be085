package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/bi-tools/reportsmith/pkg/models/store"
)

type TableConfig struct {
	IDWidth       int
	QuestionWidth int
	PathWidth     int
	CreatedWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:       36,
		QuestionWidth: 48,
		PathWidth:     52,
		CreatedWidth:  19,
	}
}

// Reporter prints archived report records to the console.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Handle prints a single archived record summary.
func (c *Reporter) Handle(record store.ReportRecord) error {
	tmpl := `
Report archived

Title:    {{.Title}}
Question: {{.Question}}
File:     {{.Path}}
Format:   {{.Format}}
Created:  {{.CreatedAt.Format "2006-01-02 15:04:05"}}
`
	t, err := template.New("record").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, record)
}

// HandleList prints the report history as a fixed-width table.
func (c *Reporter) HandleList(records []store.ReportRecord) error {
	funcMap := template.FuncMap{
		"formatRow": func(id, question, path, created string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s |",
				c.config.IDWidth, truncate(id, c.config.IDWidth),
				c.config.QuestionWidth, truncate(question, c.config.QuestionWidth),
				c.config.PathWidth, truncate(path, c.config.PathWidth),
				c.config.CreatedWidth, created)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.IDWidth+2),
				strings.Repeat("-", c.config.QuestionWidth+2),
				strings.Repeat("-", c.config.PathWidth+2),
				strings.Repeat("-", c.config.CreatedWidth+2))
		},
		"stamp": func(record store.ReportRecord) string {
			return record.CreatedAt.Format("2006-01-02 15:04:05")
		},
	}

	tmpl := `
{{separator}}
{{formatRow "ID" "Question" "File" "Created"}}
{{separator}}
{{range .}}{{formatRow .ID .Question .Path (stamp .)}}
{{end}}{{separator}}
`

	t, err := template.New("records").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, records)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
