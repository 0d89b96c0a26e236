package twlint

import (
	"io"

	"github.com/rs/zerolog/log"
)

// ParseOutputFormat maps a flag value to a format.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch s {
	case "issues":
		return OutputIssues, true
	case "summary":
		return OutputSummary, true
	case "full":
		return OutputFull, true
	case "json":
		return OutputJSON, true
	case "markdown", "md":
		return OutputMarkdown, true
	}
	return "", false
}

// DetermineOutputFormat selects the output format from the flag value.
// --quiet wins; an empty or unknown value falls back to issues only.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues
	}
	if format, ok := ParseOutputFormat(formatFlag); ok {
		return format
	}
	return OutputIssues
}

// WriteOutput writes the lint result in the specified format
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config LintConfig) {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

	case OutputSummary:
		verboseReporter := NewVerboseReporter(w, shouldUseColors(config))
		verboseReporter.PrintStatistics(*result)
		verboseReporter.PrintReferenceResolution(*result)
		verboseReporter.PrintWarnings(*result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		if !result.Aborted {
			verboseReporter := NewVerboseReporter(w, reporter.UseColors())
			verboseReporter.PrintStatistics(*result)
			verboseReporter.PrintReferenceResolution(*result)
			verboseReporter.PrintWarnings(*result)
		}

	case OutputJSON:
		if err := WriteJSONReport(w, result); err != nil {
			log.Error().Err(err).Msg("writing JSON output")
		}

	case OutputMarkdown:
		if err := WriteMarkdown(w, result); err != nil {
			log.Error().Err(err).Msg("writing Markdown output")
		}
	}
}
