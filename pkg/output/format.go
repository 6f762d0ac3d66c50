// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"gopkg.in/yaml.v3"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Write renders reports to w in the named output format.
func Write(w io.Writer, outputFormat string, reports []Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, reports)
	case constants.OutputFormatCSV:
		return CsvFormat(w, reports)
	case constants.OutputFormatJSON:
		return JSONFormat(w, reports)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, reports)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, reports []Report) error {
	var b strings.Builder
	for i, report := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("--- Results for %s calculation %s ---", report.Type, report.Name)))
		b.WriteString("\n")

		for _, warning := range report.Warnings {
			b.WriteString(warningStyle.Render("warning: " + warning))
			b.WriteString("\n")
		}
		if report.Error != "" {
			b.WriteString(errorStyle.Render("error: " + report.Error))
			b.WriteString("\n")
		}

		width := 0
		for _, field := range report.Summary {
			width = max(width, lipgloss.Width(field.Label))
		}
		for _, field := range report.Summary {
			b.WriteString(labelStyle.Width(width + 2).Render(field.Label + ":"))
			b.WriteString(valueStyle.Render(field.Value.Pretty()))
			b.WriteString("\n")
		}

		for _, tbl := range report.Tables {
			b.WriteString("\n")
			b.WriteString(titleStyle.Render(tbl.Title))
			b.WriteString("\n")
			b.WriteString(renderTable(tbl))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderTable(tbl Table) string {
	rows := make([][]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = value.Pretty()
		}
		rows = append(rows, cells)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(tbl.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		}).
		String()
}

// CsvFormat outputs in comma-separated value format. Summary figures come
// first as calculation,type,section,field,value records; each table follows
// with its own header record.
func CsvFormat(w io.Writer, reports []Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"calculation", "type", "section", "field", "value"}); err != nil {
		return err
	}

	for _, report := range reports {
		if report.Error != "" {
			if err := writer.Write([]string{report.Name, report.Type, "error", "message", report.Error}); err != nil {
				return err
			}
		}
		for _, warning := range report.Warnings {
			if err := writer.Write([]string{report.Name, report.Type, "warning", "message", warning}); err != nil {
				return err
			}
		}
		for _, field := range report.Summary {
			if err := writer.Write([]string{report.Name, report.Type, "summary", field.Label, field.Value.Plain()}); err != nil {
				return err
			}
		}
	}

	for _, report := range reports {
		for _, tbl := range report.Tables {
			header := append([]string{"calculation", "type", "section"}, tbl.Headers...)
			if err := writer.Write(header); err != nil {
				return err
			}
			for _, row := range tbl.Rows {
				record := []string{report.Name, report.Type, tbl.Title}
				for _, value := range row {
					record = append(record, value.Plain())
				}
				if err := writer.Write(record); err != nil {
					return err
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// JSONFormat outputs the reports as an indented JSON array.
func JSONFormat(w io.Writer, reports []Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if reports == nil {
		reports = []Report{}
	}
	return encoder.Encode(reports)
}

// YAMLFormat outputs the reports as a YAML sequence.
func YAMLFormat(w io.Writer, reports []Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode reports as YAML: %w", err)
	}
	return encoder.Close()
}
