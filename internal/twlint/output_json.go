package twlint

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	File      string      `json:"file"`
	Aborted   bool        `json:"aborted"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Issues    []JSONIssue `json:"issues"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Truncated   int `json:"truncated"`
}

// JSONStats contains config statistics
type JSONStats struct {
	Format             string  `json:"format,omitempty"`
	Animations         int     `json:"animations"`
	Keyframes          int     `json:"keyframes"`
	Stops              int     `json:"stops"`
	BackgroundImages   int     `json:"background_images"`
	ContentPatterns    int     `json:"content_patterns"`
	References         int     `json:"references"`
	DanglingReferences int     `json:"dangling_references"`
	ResolvedPercentage float64 `json:"resolved_percentage"`
	FilesMatched       *int    `json:"files_matched,omitempty"`
}

// JSONIssue represents a single linting issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"`
}

// WriteJSONReport writes the lint result as JSON
func WriteJSONReport(w io.Writer, result *LintResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts LintResult to JSONOutput
func buildJSONOutput(result *LintResult) JSONOutput {
	errs, warnings := countSeverities(result.Issues)

	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: string(issue.Severity),
			Kind:     issue.Kind,
			Path:     issue.Path,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	s := result.Stats
	stats := JSONStats{
		Format:             string(s.Format),
		Animations:         s.Animations,
		Keyframes:          s.Keyframes,
		Stops:              s.Stops,
		BackgroundImages:   s.BackgroundImages,
		ContentPatterns:    s.ContentPatterns,
		References:         s.Refs.Total,
		DanglingReferences: s.Refs.Dangling,
		ResolvedPercentage: s.ResolvedPercentage(),
	}
	if s.ContentChecked {
		matched := s.Content.FilesMatched
		stats.FilesMatched = &matched
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		File:      result.ConfigFile,
		Aborted:   result.Aborted,
		Summary: JSONSummary{
			TotalIssues: len(result.Issues),
			Errors:      errs,
			Warnings:    warnings,
			Truncated:   result.TruncatedCount,
		},
		Stats:    stats,
		Issues:   jsonIssues,
		Warnings: result.Warnings,
	}
}
