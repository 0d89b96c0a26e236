package twlint

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown writes a shareable Markdown report
func WriteMarkdown(w io.Writer, result *LintResult) error {
	var b strings.Builder
	errs, warnings := countSeverities(result.Issues)
	s := result.Stats

	b.WriteString("# Theme Config Report\n\n")
	fmt.Fprintf(&b, "`%s`\n\n", result.ConfigFile)

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| **Status** | %s |\n", markdownStatus(result))
	fmt.Fprintf(&b, "| **Total Issues** | %d (%s, %s) |\n", len(result.Issues),
		pluralizeCount(errs, "error", "errors"),
		pluralizeCount(warnings, "warning", "warnings"))
	if !result.Aborted {
		fmt.Fprintf(&b, "| **References Resolved** | %.1f%% |\n", s.ResolvedPercentage())
	}
	if result.TruncatedCount > 0 {
		fmt.Fprintf(&b, "| **Truncated** | %d |\n", result.TruncatedCount)
	}
	b.WriteString("\n")

	if errs > 0 {
		b.WriteString("## ❌ Errors\n\n")
		writeMarkdownIssues(&b, result.Issues, SeverityError)
	}
	if warnings > 0 {
		b.WriteString("## ⚠️ Warnings\n\n")
		writeMarkdownIssues(&b, result.Issues, SeverityWarning)
	}

	if !result.Aborted {
		b.WriteString("## 📊 Detailed Statistics\n\n")
		b.WriteString("| Metric | Value |\n")
		b.WriteString("|--------|-------|\n")
		fmt.Fprintf(&b, "| **Animations** | %d |\n", s.Animations)
		fmt.Fprintf(&b, "| **Keyframes** | %d |\n", s.Keyframes)
		fmt.Fprintf(&b, "| **Stops** | %d |\n", s.Stops)
		fmt.Fprintf(&b, "| **Background Images** | %d |\n", s.BackgroundImages)
		fmt.Fprintf(&b, "| **Content Patterns** | %d |\n", s.ContentPatterns)
		fmt.Fprintf(&b, "| **Keyframes References** | %d (%d builtin, %d dangling) |\n", s.Refs.Total, s.Refs.Builtin, s.Refs.Dangling)
		if s.ContentChecked {
			fmt.Fprintf(&b, "| **Files Matched** | %d |\n", s.Content.FilesMatched)
		}
		b.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		b.WriteString("## Notes\n\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n*Generated by twlint v1.0*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func markdownStatus(result *LintResult) string {
	errs, warnings := countSeverities(result.Issues)
	switch {
	case errs > 0 || result.Aborted:
		return "🔴 Needs Attention"
	case warnings > 0:
		return "🟡 Warnings"
	default:
		return "🟢 Clean"
	}
}

func writeMarkdownIssues(b *strings.Builder, issues []Issue, severity Severity) {
	b.WriteString("| Location | Rule | Message |\n")
	b.WriteString("|----------|------|---------|\n")
	for _, issue := range issues {
		if issue.Severity != severity {
			continue
		}
		fmt.Fprintf(b, "| `%s:%d:%d` | %s | %s |\n",
			issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column,
			issue.FromLinter, strings.ReplaceAll(issue.Text, "|", "\\|"))
	}
	b.WriteString("\n")
}
