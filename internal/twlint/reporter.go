package twlint

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reporter prints issues in golangci-lint format
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config LintConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config LintConfig) bool {
	if config.UseColors {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// PrintIssues outputs issues sorted by file, line and column
func (r *Reporter) PrintIssues(issues []Issue) {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pos.Filename != sorted[j].Pos.Filename {
			return sorted[i].Pos.Filename < sorted[j].Pos.Filename
		}
		if sorted[i].Pos.Line != sorted[j].Pos.Line {
			return sorted[i].Pos.Line < sorted[j].Pos.Line
		}
		return sorted[i].Pos.Column < sorted[j].Pos.Column
	})

	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue: file:line:col: severity: message (rule)
func (r *Reporter) printIssue(issue Issue) {
	location := issue.Pos.Filename + ":"
	if issue.Pos.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	}

	severity := string(issue.Severity) + ":"
	severityStyle := StyleYellow
	if issue.Severity == SeverityError {
		severityStyle = StyleRed
	}

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		RenderStyle(severityStyle, severity, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up under tab-indented lines.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result LintResult) {
	totalIssues := len(result.Issues)
	truncated := result.TruncatedCount
	errs, warnings := countSeverities(result.Issues)

	fmt.Fprintln(r.w, "")

	if totalIssues == 0 && truncated == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "0 issues.", r.useColors))
		return
	}

	breakdown := ""
	if errs > 0 && warnings > 0 {
		breakdown = fmt.Sprintf("%s, %s",
			pluralizeCount(errs, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	}
	if truncated > 0 {
		if breakdown != "" {
			breakdown += "; "
		}
		breakdown += pluralizeCount(truncated, "issue", "issues") + " truncated"
	}
	if breakdown != "" {
		fmt.Fprintf(r.w, "%s (%s):\n", pluralizeCount(totalIssues, "issue", "issues"), breakdown)
	} else {
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(totalIssues, "issue", "issues"))
	}

	// Group by rule, printed in a stable order
	ruleCounts := make(map[string]int)
	var rules []string
	for _, issue := range result.Issues {
		if ruleCounts[issue.FromLinter] == 0 {
			rules = append(rules, issue.FromLinter)
		}
		ruleCounts[issue.FromLinter]++
	}
	sort.Strings(rules)
	for _, rule := range rules {
		fmt.Fprintf(r.w, "* %s: %d\n", rule, ruleCounts[rule])
	}

	if !result.Aborted {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format full to see statistics", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
