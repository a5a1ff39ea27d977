package ui

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderRunReport builds a markdown summary of an analysis run and renders it
// to HTML for the results page.
func renderRunReport(run *Run) template.HTML {
	var b strings.Builder

	fmt.Fprintf(&b, "## Analysis summary for %s\n\n", run.SourceName)

	combos := run.Outcome.Consolidated.Combinations()
	fmt.Fprintf(&b, "- **%d** (trial, parameter) combinations analyzed\n", len(combos))
	fmt.Fprintf(&b, "- **%d** result rows, **%d** below p = 0.05\n",
		len(run.Outcome.Consolidated.Rows), len(run.Outcome.Significant.Rows))
	if n := len(run.Outcome.Skipped); n > 0 {
		fmt.Fprintf(&b, "- **%d** combinations skipped for insufficient or degenerate data\n", n)
	}

	significant := map[[2]string]bool{}
	for _, row := range run.Outcome.Significant.Rows {
		significant[[2]string{row.Trial, row.Parameter}] = true
	}
	if len(significant) > 0 {
		b.WriteString("\n### Significant combinations\n\n")
		for _, combo := range combos {
			if significant[combo] {
				fmt.Fprintf(&b, "- %s / %s\n", combo[0], combo[1])
			}
		}
	}

	return renderMarkdown(b.String())
}

// renderMarkdown converts markdown text to HTML. The input is generated by
// this package, never user text, so no sanitizer pass is needed.
func renderMarkdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(src), p, renderer))
}
