package twlint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	writeFile(t, path, src)
	return path
}

func TestLintSampleConfig(t *testing.T) {
	result, err := Lint(LintConfig{ConfigFile: filepath.Join("testdata", "tailwind.config.js")})
	require.NoError(t, err)

	assert.False(t, result.Aborted)
	assert.Empty(t, result.Issues)
	assert.False(t, result.HasIssues())
	assert.Equal(t, 0, result.ErrorCount)

	stats := result.Stats
	assert.Equal(t, FormatJS, stats.Format)
	assert.Equal(t, 8, stats.Animations)
	assert.Equal(t, 7, stats.Keyframes)
	assert.Equal(t, 17, stats.Stops)
	assert.Equal(t, 24, stats.Declarations)
	assert.Equal(t, 2, stats.BackgroundImages)
	assert.Equal(t, 2, stats.ContentPatterns)
	assert.Equal(t, 0, stats.Plugins)
	assert.InDelta(t, 100.0, stats.ResolvedPercentage(), 0.01)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "--check-content")
}

func TestLintReportsFindingsAsIssues(t *testing.T) {
	path := writeConfig(t, "theme.yaml", `content: [./src/**/*.tsx]
theme:
  extend:
    animation:
      ghost: ghost 2s linear infinite
      pulse-soft: var(--pulse)
`)

	result, err := Lint(LintConfig{ConfigFile: path, DanglingSeverity: "error"})
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)

	issue := result.Issues[0]
	assert.Equal(t, RuleDanglingReference, issue.FromLinter)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, "DanglingReference", issue.Kind)
	assert.Equal(t, "theme.extend.animation.ghost", issue.Path)
	assert.Equal(t, IssuePos{Filename: path, Line: 5, Column: 7}, issue.Pos)
	assert.Equal(t, []string{"      ghost: ghost 2s linear infinite"}, issue.SourceLines)

	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 0, result.WarningCount)
	assert.InDelta(t, 0.0, result.Stats.ResolvedPercentage(), 0.01)
	assert.Contains(t, result.Warnings, "1 animation name is set through var() and cannot be checked statically")
}

func TestLintMalformedConfig(t *testing.T) {
	path := writeConfig(t, "theme.yaml", "content: [./src/**/*.tsx]\ntheme: []\n")

	result, err := Lint(LintConfig{ConfigFile: path})
	require.NoError(t, err)

	assert.True(t, result.Aborted)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, RuleMalformed, result.Issues[0].FromLinter)
	assert.Equal(t, SeverityError, result.Issues[0].Severity)
	assert.Equal(t, 2, result.Issues[0].Pos.Line)
	assert.Equal(t, []string{"theme: []"}, result.Issues[0].SourceLines)
	assert.Equal(t, 1, result.ErrorCount)
}

func TestLintErrors(t *testing.T) {
	tests := []struct {
		name    string
		config  LintConfig
		wantErr string
	}{
		{
			name:    "missing config file",
			config:  LintConfig{},
			wantErr: "invalid lint configuration",
		},
		{
			name:    "unknown severity",
			config:  LintConfig{ConfigFile: "theme.yaml", DanglingSeverity: "fatal"},
			wantErr: "DanglingSeverity",
		},
		{
			name:    "negative limit",
			config:  LintConfig{ConfigFile: "theme.yaml", MaxSameIssues: -1},
			wantErr: "MaxSameIssues",
		},
		{
			name:    "unreadable file",
			config:  LintConfig{ConfigFile: filepath.Join("testdata", "missing.yaml")},
			wantErr: "read config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lint(tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLintUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "tailwind.config.ts", "export default {}\n")

	_, err := Lint(LintConfig{ConfigFile: path})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedConfig)
	assert.Contains(t, err.Error(), "unsupported config file")
}

func TestLintCheckContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "App.tsx"), "")
	path := filepath.Join(dir, "theme.yaml")
	writeFile(t, path, "content:\n  - ./src/**/*.tsx\n  - ./pages/**/*.tsx\n")

	result, err := Lint(LintConfig{ConfigFile: path, WorkDir: dir, CheckContent: true})
	require.NoError(t, err)

	assert.True(t, result.Stats.ContentChecked)
	assert.Equal(t, 1, result.Stats.Content.FilesMatched)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, RuleContentUnmatched, result.Issues[0].FromLinter)
	assert.Equal(t, 3, result.Issues[0].Pos.Line)
	assert.Empty(t, result.Warnings)
}

func TestLimitIssues(t *testing.T) {
	issues := []Issue{
		{FromLinter: RuleDanglingReference, Text: "a"},
		{FromLinter: RuleDanglingReference, Text: "b"},
		{FromLinter: RuleDanglingReference, Text: "c"},
		{FromLinter: RuleDuplicateKey, Text: "dup"},
		{FromLinter: RuleDuplicateKey, Text: "dup"},
		{FromLinter: RuleDuplicateKey, Text: "dup"},
	}

	kept, truncated := limitIssues(issues, LintConfig{MaxIssuesPerLinter: 2})
	assert.Len(t, kept, 4)
	assert.Equal(t, 2, truncated)

	kept, truncated = limitIssues(issues, LintConfig{MaxSameIssues: 1})
	assert.Len(t, kept, 4)
	assert.Equal(t, 2, truncated)

	kept, truncated = limitIssues(issues, LintConfig{MaxIssuesPerLinter: 2, MaxSameIssues: 1})
	assert.Equal(t, []string{"a", "b", "dup"}, issueTexts(kept))
	assert.Equal(t, 3, truncated)

	assert.Len(t, issues, 6, "input slice must not be modified")
}

func TestLintTruncatedCountsAsIssues(t *testing.T) {
	path := writeConfig(t, "theme.yaml", `content: [./src/**/*.tsx]
theme:
  extend:
    animation:
      a: ghost 1s
      b: ghost 1s
      c: ghost 1s
`)

	result, err := Lint(LintConfig{ConfigFile: path, MaxIssuesPerLinter: 1})
	require.NoError(t, err)
	assert.Len(t, result.Issues, 1)
	assert.Equal(t, 2, result.TruncatedCount)
	assert.Equal(t, 1, result.WarningCount)
	assert.True(t, result.HasIssues())
}

func TestResolvedPercentage(t *testing.T) {
	assert.InDelta(t, 100.0, LintStats{}.ResolvedPercentage(), 0.01)
	stats := LintStats{Refs: ReferenceStats{Total: 4, Resolved: 2, Builtin: 1, Dangling: 1}}
	assert.InDelta(t, 75.0, stats.ResolvedPercentage(), 0.01)
}

func issueTexts(issues []Issue) []string {
	texts := make([]string, 0, len(issues))
	for _, issue := range issues {
		texts = append(texts, issue.Text)
	}
	return texts
}
