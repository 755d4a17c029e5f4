package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter formats compile results and reports for a terminal.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

func (f *TableFormatter) rule() string {
	return f.colorize(strings.Repeat("─", 80), colorGray)
}

// Format writes a compile summary.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) Format(resp *dto.CompileResponse) error {
	a := resp.Artifact
	fmt.Fprintln(f.writer, f.rule())
	if resp.Metadata.Source != "" {
		fmt.Fprintf(f.writer, "Source:   %s\n", f.colorize(resp.Metadata.Source, colorBold))
	}
	fmt.Fprintf(f.writer, "Title:    %s\n", a.Title)
	fmt.Fprintf(f.writer, "Strategy: %s\n", f.strategy(a.StrategyUsed))
	fmt.Fprintf(f.writer, "Runtime:  %s\n", a.Runtime)
	fmt.Fprintf(f.writer, "Duration: %s\n", resp.Metrics.Duration.Round(time.Millisecond))
	if a.Degraded {
		fmt.Fprintf(f.writer, "Status:   %s\n", f.colorize("DEGRADED", colorYellow))
	} else {
		fmt.Fprintf(f.writer, "Status:   %s\n", f.colorize("OK", colorGreen))
	}
	fmt.Fprintln(f.writer)

	if resp.Analysis != nil {
		f.formatComponents(resp.Analysis.Components)
	}

	if len(resp.Issues) > 0 {
		fmt.Fprintln(f.writer, f.colorize("Repaired issues:", colorBold))
		f.formatIssues(resp.Issues)
	}

	if len(resp.ComponentErrors) > 0 {
		fmt.Fprintln(f.writer, f.colorize("Component errors:", colorBold))
		for _, ce := range resp.ComponentErrors {
			fmt.Fprintf(f.writer, "  %s %s: %s\n", f.colorize("✗", colorRed), ce.Component, ce.Message)
		}
		fmt.Fprintln(f.writer)
	}

	if len(a.Unresolved) > 0 {
		fmt.Fprintf(f.writer, "Unresolved: %s\n", strings.Join(a.Unresolved, ", "))
	}
	for _, w := range resp.Warnings {
		fmt.Fprintf(f.writer, "%s %s\n", f.colorize("⚠", colorYellow), w)
	}

	fmt.Fprintln(f.writer, f.rule())
	return nil
}

// FormatReport writes issues and classifications.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) FormatReport(resp *dto.AnalyzeResponse) error {
	fmt.Fprintln(f.writer, f.rule())
	if resp.Source != "" {
		fmt.Fprintf(f.writer, "Source: %s\n", f.colorize(resp.Source, colorBold))
	}

	if len(resp.Issues) == 0 {
		fmt.Fprintf(f.writer, "%s No structural issues\n", f.colorize("✓", colorGreen))
	} else {
		fmt.Fprintln(f.writer, f.colorize("Issues:", colorBold))
		f.formatIssues(resp.Issues)
	}

	if resp.ParseError != "" {
		fmt.Fprintf(f.writer, "%s %s\n", f.colorize("✗", colorRed), resp.ParseError)
	}

	if resp.Analysis != nil {
		fmt.Fprintf(f.writer, "Strategy: %s\n", f.strategy(resp.Analysis.Strategy))
		fmt.Fprintf(f.writer, "Known:    %s\n", joinOrDash(resp.Analysis.KnownPatterns))
		fmt.Fprintf(f.writer, "Unknown:  %s\n", joinOrDash(resp.Analysis.UnknownPatterns))
		fmt.Fprintln(f.writer)
		f.formatComponents(resp.Components)
	}

	fmt.Fprintln(f.writer, f.rule())
	return nil
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatIssues(issues []entities.Issue) {
	for _, i := range issues {
		line := ""
		if i.Line > 0 {
			line = fmt.Sprintf(" (line %d)", i.Line)
		}
		fmt.Fprintf(f.writer, "  %s %s%s: %s\n", f.colorize("⚠", colorYellow), i.Kind, line, i.Message)
	}
	fmt.Fprintln(f.writer)
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatComponents(components []entities.ComponentClassification) {
	if len(components) == 0 {
		fmt.Fprintln(f.writer, "No components.")
		fmt.Fprintln(f.writer)
		return
	}

	fmt.Fprintln(f.writer, f.colorize("Components:", colorBold))
	fmt.Fprintf(f.writer, "  %-32s %-24s %-9s %s\n", "COMPONENT", "PATTERN", "MATCH", "KEYWORDS")
	for _, c := range components {
		symbol, color := "✓", colorGreen
		pattern := c.ResolvedPattern
		if !c.Resolved() {
			symbol, color = "?", colorYellow
			pattern = c.DeclaredPattern
		}
		if pattern == "" {
			pattern = "-"
		}
		fmt.Fprintf(f.writer, "%s %-32s %-24s %-9s %s\n",
			f.colorize(symbol, color),
			c.Ref.String(),
			f.colorize(pattern, colorCyan),
			c.Match,
			joinOrDash(c.ComplexKeywords))
	}
	fmt.Fprintln(f.writer)
}

func (f *TableFormatter) strategy(s values.Strategy) string {
	switch s {
	case values.StrategyAutomatic:
		return f.colorize(s.String(), colorGreen)
	case values.StrategyHybrid:
		return f.colorize(s.String(), colorBlue)
	default:
		return f.colorize(s.String(), colorYellow)
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
