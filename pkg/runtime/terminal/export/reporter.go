package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        28,
		ValueWidth:       12,
		UnitWidth:        6,
		DescriptionWidth: 54,
	}
}

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

const reportTemplate = `
{{.Title}}{{if .Period.Duration}} ({{.Period.Duration}} days){{end}}
Source: {{.Source}}
{{- if .Period.Duration}}
Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}
Average Satisfaction: {{printf "%.2f" .Average}} {{.Unit}}
{{- end}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}{{if .Details}}
{{separator}}
{{formatRow "Name" "Value" "Unit" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}{{end}}`

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// Table prints rows under a title, sizing each column to its widest cell.
func (c *Reporter) Table(title string, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
			}
		}
	}

	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	separator := "+" + strings.Join(parts, "+") + "+"

	formatRow := func(cells []string) string {
		out := make([]string, len(widths))
		for i, w := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			out[i] = fmt.Sprintf(" %-*s ", w, cell)
		}
		return "|" + strings.Join(out, "|") + "|"
	}

	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "\n=== %s ===\n", title)
	}
	b.WriteString(separator + "\n")
	b.WriteString(formatRow(headers) + "\n")
	b.WriteString(separator + "\n")
	for _, row := range rows {
		b.WriteString(formatRow(row) + "\n")
	}
	b.WriteString(separator + "\n")

	_, err := io.WriteString(c.writer, b.String())
	return err
}

// Line prints a single formatted line.
func (c *Reporter) Line(format string, args ...any) error {
	_, err := fmt.Fprintf(c.writer, format+"\n", args...)
	return err
}
