package export

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders the report as a Markdown document with a results table.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s report\n\n", r.Tool)
	fmt.Fprintf(&b, "- Source: `%s`\n", r.Source)
	if r.Alpha > 0 {
		fmt.Fprintf(&b, "- Significance level: %g\n", r.Alpha)
	}
	fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	if r.Skipped > 0 {
		fmt.Fprintf(&b, "- Skipped claims: %d\n", r.Skipped)
	}
	if r.Inapplicable > 0 {
		fmt.Fprintf(&b, "- Not decidable at reported precision: %d\n", r.Inapplicable)
	}
	b.WriteString("\n")

	cols, rows := r.cells()
	writeMarkdownRow(&b, cols)
	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	writeMarkdownRow(&b, sep)
	for _, row := range rows {
		writeMarkdownRow(&b, row)
	}

	if r.Summary != nil && r.Summary.Claims > 0 {
		fmt.Fprintf(&b, "\n## Summary\n\n")
		fmt.Fprintf(&b, "- Claims checked: %d\n", r.Summary.Claims)
		fmt.Fprintf(&b, "- Consistent: %d\n", r.Summary.Consistent)
		fmt.Fprintf(&b, "- Inconsistent: %d\n", r.Summary.Inconsistent)
		fmt.Fprintf(&b, "- Median recalculated p (upper): %.5f\n", r.Summary.MedianUpperP)
		fmt.Fprintf(&b, "- Mean recalculated p (upper): %.5f\n", r.Summary.MeanUpperP)
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", "\\|"))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

// RenderHTML converts a Markdown document to an HTML fragment.
func RenderHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
