package twlint

import (
	"fmt"
	"io"
	"strings"
)

// VerboseReporter prints statistics about the config
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs what the config declares
func (r *VerboseReporter) PrintStatistics(result LintResult) {
	s := result.Stats

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Theme Config Statistics", r.useColors))
	fmt.Fprintln(r.w, "-----------------------")

	if s.Format != "" {
		fmt.Fprintf(r.w, "Format:            %s\n", s.Format)
	}
	fmt.Fprintf(r.w, "Animations:        %d\n", s.Animations)
	fmt.Fprintf(r.w, "Keyframes:         %d (%d stops, %d declarations)\n", s.Keyframes, s.Stops, s.Declarations)
	fmt.Fprintf(r.w, "Background Images: %d\n", s.BackgroundImages)
	fmt.Fprintf(r.w, "Content Patterns:  %d\n", s.ContentPatterns)
	fmt.Fprintf(r.w, "Plugins:           %d\n", s.Plugins)

	if s.ContentChecked {
		fmt.Fprintf(r.w, "Files Matched:     %d (%d ignored, %d unmatched patterns)\n",
			s.Content.FilesMatched, s.Content.FilesIgnored, s.Content.Unmatched)
	}
}

// PrintReferenceResolution shows how animation references resolved
func (r *VerboseReporter) PrintReferenceResolution(result LintResult) {
	refs := result.Stats.Refs

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Keyframes References", r.useColors))
	fmt.Fprintln(r.w, "--------------------")
	fmt.Fprintf(r.w, "Defined: %d  Builtin: %d  Dangling: %d\n", refs.Resolved, refs.Builtin, refs.Dangling)
	printProgressBar(r.w, result.Stats.ResolvedPercentage())
}

// PrintWarnings shows linter warnings
func (r *VerboseReporter) PrintWarnings(result LintResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// printProgressBar prints a 20-cell bar for a percentage
func printProgressBar(w io.Writer, percentage float64) {
	fmt.Fprintf(w, "[%s] %.1f%%\n", progressBar(percentage, 20), percentage)
}

func progressBar(percentage float64, width int) string {
	filled := int(percentage / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
