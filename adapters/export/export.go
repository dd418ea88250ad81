// Package export renders result tables to the supported output formats:
// plain text, CSV, JSON, XLSX and a Markdown report with an HTML rendering.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"veristat/app"
	"veristat/domain/verdict"
)

// Format names an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatJSON, FormatXLSX, FormatMarkdown, FormatHTML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Report is a finished run plus the metadata a reader needs to interpret
// it. Summary is only set for statcheck runs.
type Report struct {
	Tool         string       `json:"tool"`
	Source       string       `json:"source"`
	Alpha        float64      `json:"alpha,omitempty"`
	GeneratedAt  time.Time    `json:"generated_at"`
	Skipped      int          `json:"skipped"`
	Inapplicable int          `json:"inapplicable,omitempty"`
	Rows         []ReportRow  `json:"results"`
	Summary      *app.Summary `json:"summary,omitempty"`

	header verdict.Row
}

// ReportRow pairs column names with values for the JSON encoding.
type ReportRow map[string]string

// NewStatcheckReport assembles a report from a statcheck run.
func NewStatcheckReport(source string, alpha float64, res app.StatcheckResult) Report {
	summary := res.Summary
	return Report{
		Tool:        "statcheck",
		Source:      source,
		Alpha:       alpha,
		GeneratedAt: time.Now().UTC(),
		Skipped:     res.Skipped,
		Rows:        reportRows(verdict.StatcheckHeader, res.Rows),
		Summary:     &summary,
		header:      verdict.StatcheckHeader,
	}
}

// NewGRIMReport assembles a report from a GRIM run.
func NewGRIMReport(source string, res app.GRIMResult) Report {
	return Report{
		Tool:         "grim",
		Source:       source,
		GeneratedAt:  time.Now().UTC(),
		Skipped:      res.Skipped,
		Inapplicable: res.Inapplicable,
		Rows:         reportRows(verdict.GRIMHeader, res.Rows),
		header:       verdict.GRIMHeader,
	}
}

func reportRows(header verdict.Row, rows []verdict.Row) []ReportRow {
	cols := header.Fields()
	out := make([]ReportRow, len(rows))
	for i, r := range rows {
		fields := r.Fields()
		m := make(ReportRow, len(cols))
		for j, name := range cols {
			m[name] = fields[j]
		}
		out[i] = m
	}
	return out
}

// cells returns the header and row values in column order.
func (r Report) cells() ([]string, [][]string) {
	cols := r.header.Fields()
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells := make([]string, len(cols))
		for j, name := range cols {
			cells[j] = row[name]
		}
		rows[i] = cells
	}
	return cols, rows
}

// Write renders the report to w in the given format. XLSX output needs a
// seekable target, so it buffers through excelize's writer.
func (r Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatText:
		return r.writeText(w)
	case FormatCSV:
		return r.writeCSV(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatXLSX:
		return r.writeXLSX(w)
	case FormatMarkdown:
		_, err := io.WriteString(w, r.Markdown())
		return err
	case FormatHTML:
		_, err := w.Write(RenderHTML([]byte(r.Markdown())))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeText renders an aligned table with the column widths of the widest
// cell per column.
func (r Report) writeText(w io.Writer) error {
	cols, rows := r.cells()
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteByte('\n')
	}
	writeRow(cols)
	for _, row := range rows {
		writeRow(row)
	}
	if r.Skipped > 0 {
		fmt.Fprintf(&b, "\n%d claim(s) skipped.\n", r.Skipped)
	}
	if r.Inapplicable > 0 {
		fmt.Fprintf(&b, "%d claim(s) not decidable at the reported precision.\n", r.Inapplicable)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r Report) writeCSV(w io.Writer) error {
	cols, rows := r.cells()
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r Report) writeXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	cols, rows := r.cells()
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return f.Write(w)
}
