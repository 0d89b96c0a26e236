package twlint

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{
			name:       "explicit quiet flag",
			formatFlag: "",
			quiet:      true,
			expected:   OutputIssues,
		},
		{
			name:       "explicit issues format",
			formatFlag: "issues",
			expected:   OutputIssues,
		},
		{
			name:       "explicit summary format",
			formatFlag: "summary",
			expected:   OutputSummary,
		},
		{
			name:       "explicit full format",
			formatFlag: "full",
			expected:   OutputFull,
		},
		{
			name:       "explicit json format",
			formatFlag: "json",
			expected:   OutputJSON,
		},
		{
			name:       "explicit markdown format",
			formatFlag: "markdown",
			expected:   OutputMarkdown,
		},
		{
			name:       "markdown shorthand (md)",
			formatFlag: "md",
			expected:   OutputMarkdown,
		},
		{
			name:       "default format is issues",
			formatFlag: "",
			expected:   OutputIssues,
		},
		{
			name:       "unknown format falls back to issues",
			formatFlag: "xml",
			expected:   OutputIssues,
		},
		{
			name:       "quiet overrides format flag",
			formatFlag: "full",
			quiet:      true,
			expected:   OutputIssues,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag, tt.quiet))
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	format, ok := ParseOutputFormat("md")
	assert.True(t, ok)
	assert.Equal(t, OutputMarkdown, format)

	_, ok = ParseOutputFormat("xml")
	assert.False(t, ok)
}

func sampleResult() *LintResult {
	return &LintResult{
		ConfigFile: "tailwind.config.js",
		Stats: LintStats{
			Format:           FormatJS,
			Animations:       3,
			Keyframes:        2,
			Stops:            5,
			BackgroundImages: 1,
			ContentPatterns:  2,
			Refs:             ReferenceStats{Total: 3, Resolved: 1, Builtin: 1, Dangling: 1},
		},
		Issues: []Issue{
			{
				FromLinter:  RuleInvalidStop,
				Text:        `invalid stop selector in keyframes "float": "150%" is outside 0%-100%`,
				Severity:    SeverityError,
				Kind:        string(KindInvalidStop),
				Path:        `theme.extend.keyframes.float["150%"]`,
				SourceLines: []string{`        '150%': { opacity: 1 },`},
				Pos:         IssuePos{Filename: "tailwind.config.js", Line: 12, Column: 9},
			},
			{
				FromLinter:  RuleDanglingReference,
				Text:        `animation "ghost" references undefined keyframes "ghost"`,
				Severity:    SeverityWarning,
				Kind:        string(KindDanglingReference),
				Path:        "theme.extend.animation.ghost",
				SourceLines: []string{`        ghost: 'ghost 2s',`},
				Pos:         IssuePos{Filename: "tailwind.config.js", Line: 7, Column: 9},
			},
		},
		ErrorCount:   1,
		WarningCount: 1,
		Warnings:     []string{"content patterns were not checked against the filesystem (use --check-content)"},
	}
}

func TestWriteJSONReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONReport(&buf, sampleResult()))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.NotEmpty(t, output.Timestamp)
	assert.Equal(t, "tailwind.config.js", output.File)
	assert.False(t, output.Aborted)

	assert.Equal(t, 2, output.Summary.TotalIssues)
	assert.Equal(t, 1, output.Summary.Errors)
	assert.Equal(t, 1, output.Summary.Warnings)
	assert.Equal(t, 0, output.Summary.Truncated)

	assert.Equal(t, "js", output.Stats.Format)
	assert.Equal(t, 3, output.Stats.Animations)
	assert.Equal(t, 5, output.Stats.Stops)
	assert.Equal(t, 3, output.Stats.References)
	assert.Equal(t, 1, output.Stats.DanglingReferences)
	assert.InDelta(t, 66.67, output.Stats.ResolvedPercentage, 0.01)
	assert.Nil(t, output.Stats.FilesMatched)

	require.Len(t, output.Issues, 2)
	assert.Equal(t, "tailwind.config.js", output.Issues[0].File)
	assert.Equal(t, 12, output.Issues[0].Line)
	assert.Equal(t, 9, output.Issues[0].Column)
	assert.Equal(t, "error", output.Issues[0].Severity)
	assert.Equal(t, "InvalidStop", output.Issues[0].Kind)
	assert.Equal(t, RuleInvalidStop, output.Issues[0].Linter)
	assert.Contains(t, output.Issues[0].Source, "150%")

	assert.Len(t, output.Warnings, 1)
}

func TestWriteJSONReportFilesMatched(t *testing.T) {
	result := sampleResult()
	result.Stats.ContentChecked = true
	result.Stats.Content.FilesMatched = 42

	var buf bytes.Buffer
	require.NoError(t, WriteJSONReport(&buf, result))
	assert.Contains(t, buf.String(), `"files_matched": 42`)
}

func TestWriteMarkdown(t *testing.T) {
	result := sampleResult()
	result.Issues[0].Text = "a | b"

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, result))
	out := buf.String()

	assert.Contains(t, out, "# Theme Config Report")
	assert.Contains(t, out, "`tailwind.config.js`")
	assert.Contains(t, out, "| **Status** | 🔴 Needs Attention |")
	assert.Contains(t, out, "| **Total Issues** | 2 (1 error, 1 warning) |")
	assert.Contains(t, out, "| **References Resolved** | 66.7% |")
	assert.Contains(t, out, "## ❌ Errors")
	assert.Contains(t, out, "| `tailwind.config.js:12:9` | invalid-stop | a \\| b |")
	assert.Contains(t, out, "## ⚠️ Warnings")
	assert.Contains(t, out, "## 📊 Detailed Statistics")
	assert.Contains(t, out, "| **Keyframes References** | 3 (1 builtin, 1 dangling) |")
	assert.Contains(t, out, "## Notes")
	assert.Contains(t, out, "*Generated by twlint v1.0*")
}

func TestMarkdownStatus(t *testing.T) {
	assert.Equal(t, "🟢 Clean", markdownStatus(&LintResult{}))
	assert.Equal(t, "🟡 Warnings", markdownStatus(&LintResult{Issues: []Issue{{Severity: SeverityWarning}}}))
	assert.Equal(t, "🔴 Needs Attention", markdownStatus(&LintResult{Aborted: true}))
}

func TestWriteMarkdownAborted(t *testing.T) {
	result := &LintResult{
		ConfigFile: "theme.yaml",
		Aborted:    true,
		Issues:     []Issue{{FromLinter: RuleMalformed, Severity: SeverityError, Text: "theme: must be a mapping, got list"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, result))
	out := buf.String()

	assert.Contains(t, out, "🔴 Needs Attention")
	assert.NotContains(t, out, "References Resolved")
	assert.NotContains(t, out, "Detailed Statistics")
}

func TestWriteOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result, err := Lint(LintConfig{ConfigFile: filepath.Join("testdata", "tailwind.config.js")})
	require.NoError(t, err)

	tests := []struct {
		format OutputFormat
		want   []string
	}{
		{OutputIssues, []string{"0 issues."}},
		{OutputSummary, []string{"Theme Config Statistics", "Defined: 7  Builtin: 1  Dangling: 0", "100.0%", "Warnings"}},
		{OutputFull, []string{"0 issues.", "Keyframes References"}},
		{OutputJSON, []string{`"version": "1.0"`, `"references": 8`}},
		{OutputMarkdown, []string{"🟢 Clean", "| **Animations** | 8 |"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			WriteOutput(&buf, result, tt.format, LintConfig{})
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
