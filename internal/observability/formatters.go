// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/jonathan/portfolio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxTagsToShow is the number of tags listed per writing entry
	maxTagsToShow = 3
	// wordWrap is the column glamour wraps rendered bodies at
	wordWrap = 80
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// Printer handles formatted output for the CLI
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintCaseStudies outputs the case study collection in display order.
func (p *Printer) PrintCaseStudies(studies []types.CaseStudyMeta) {
	if len(studies) == 0 {
		p.printBox("CASE STUDIES", "No case studies found")
		return
	}

	var sb strings.Builder
	for i, s := range studies {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, s.Title))
		sb.WriteString(fmt.Sprintf("    %s at %s\n", s.Role, s.Company))
		sb.WriteString(fmt.Sprintf("    %s · %s · order %d\n", s.Date, s.ReadingTime, s.Order))
		sb.WriteString(fmt.Sprintf("    /case-studies/%s\n", s.Slug))
		if i < len(studies)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("CASE STUDIES (%d)", len(studies)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWriting outputs the writing collection, newest first.
func (p *Printer) PrintWriting(entries []types.WritingMeta) {
	if len(entries) == 0 {
		p.printBox("WRITING", "No writing found")
		return
	}

	var sb strings.Builder
	for i, w := range entries {
		sb.WriteString(fmt.Sprintf("• %s\n", w.Title))
		sb.WriteString(fmt.Sprintf("  %s · %s\n", w.Date, w.ReadingTime))
		if w.External {
			sb.WriteString(fmt.Sprintf("  ↗ %s\n", w.ExternalURL))
		}
		if len(w.Tags) > 0 {
			count := min(len(w.Tags), maxTagsToShow)
			tags := strings.Join(w.Tags[:count], ", ")
			if len(w.Tags) > maxTagsToShow {
				tags += fmt.Sprintf(" +%d", len(w.Tags)-maxTagsToShow)
			}
			sb.WriteString(fmt.Sprintf("  [%s]\n", tags))
		}
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("WRITING (%d)", len(entries)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSitemap outputs the sitemap entries.
func (p *Printer) PrintSitemap(entries []types.SitemapEntry) {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%.1f  %s  %s\n", e.Priority, e.LastModified.UTC().Format(time.DateOnly), e.URL))
	}
	p.printBox(fmt.Sprintf("SITEMAP (%d URLs)", len(entries)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCaseStudyHeader outputs the title block shown above a rendered case study.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCaseStudyHeader(meta types.CaseStudyMeta) {
	fmt.Fprintf(p.out, "%s\n", bold(meta.Title))
	fmt.Fprintf(p.out, "%s %s at %s\n", faint("Role:"), meta.Role, meta.Company)
	fmt.Fprintf(p.out, "%s %s\n", faint("Date:"), meta.Date)
	fmt.Fprintf(p.out, "%s %s\n", faint("Read:"), meta.ReadingTime)
	if meta.Takeaway != "" {
		fmt.Fprintf(p.out, "%s %s\n", faint("Takeaway:"), meta.Takeaway)
	}
	fmt.Fprintf(p.out, "%s\n", faint(strings.Repeat("─", 50)))
}

// PrintBody renders a markdown body for the terminal.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBody(body string) {
	fmt.Fprint(p.out, RenderBody(body))
}

// RenderBody renders markdown with glamour, falling back to the raw text
func RenderBody(body string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return body
	}

	out, err := renderer.Render(body)
	if err != nil {
		return body
	}
	return out
}

// CheckResult is the outcome of one check run by the CLI
type CheckResult struct {
	Name string
	Err  error
}

// PrintCheckResults outputs a pass/fail line per check and returns the failure count.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCheckResults(results []CheckResult) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(p.out, "%s %s\n", red("✗"), r.Name)
			for _, line := range strings.Split(strings.TrimSpace(r.Err.Error()), "\n") {
				fmt.Fprintf(p.out, "    %s\n", faint(line))
			}
			continue
		}
		fmt.Fprintf(p.out, "%s %s\n", green("✓"), r.Name)
	}

	if failed == 0 {
		fmt.Fprintf(p.out, "\n%s\n", green(fmt.Sprintf("All %d checks passed", len(results))))
	} else {
		fmt.Fprintf(p.out, "\n%s\n", red(fmt.Sprintf("%d of %d checks failed", failed, len(results))))
	}
	return failed
}
