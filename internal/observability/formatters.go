// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobscout/internal/apply"
	"github.com/jonathan/jobscout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxDescriptionPreview caps how much of a description is shown
	maxDescriptionPreview = 60
)

// Printer handles formatted console output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintShortlist outputs the ranked shortlist with scores.
func (p *Printer) PrintShortlist(ranked []types.RankedJob) {
	if len(ranked) == 0 {
		p.printBox("RANKED SHORTLIST", "No jobs matched.")
		return
	}

	var sb strings.Builder
	for i, job := range ranked {
		title := job.Title
		if title == "" {
			title = "(untitled)"
		}
		sb.WriteString(fmt.Sprintf("%2d. score=%.4f  %s", i+1, job.Score, truncateTo(title, maxDescriptionPreview)))
		if job.Organization != "" {
			sb.WriteString(" - " + truncateTo(job.Organization, 40))
		}
		sb.WriteString("\n")
		sb.WriteString("    " + job.URL + "\n")
	}
	p.printBox("RANKED SHORTLIST", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHarvestSummary reports how many links one keyword produced.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHarvestSummary(keyword string, count int) {
	fmt.Fprintf(p.out, "Collected %d link(s) for keyword %q\n", count, keyword)
}

// PrintOutcome reports the result of one application attempt.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOutcome(jobURL string, outcome apply.Outcome) {
	fmt.Fprintf(p.out, "  %s -> %s\n", jobURL, outcome)
}

func truncateTo(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
