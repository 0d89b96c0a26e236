package twlint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// LintConfig holds linting configuration
type LintConfig struct {
	ConfigFile string `validate:"required"` // "tailwind.config.js"
	WorkDir    string // Base for content patterns (default: current directory)

	CheckContent      bool     // Expand content globs against the filesystem
	NoBuiltins        bool     // Treat spin/ping/pulse/bounce as undefined
	BuiltinKeyframes  []string // Replaces the default keyframes when non-nil
	DanglingSeverity  string   `validate:"omitempty,oneof=warning error"`
	DuplicateSeverity string   `validate:"omitempty,oneof=warning error"`

	Verbose bool
	Strict  bool // Exit with code 1 if any issue is found

	// golangci-style configuration
	MaxIssuesPerLinter int  `validate:"gte=0"` // 0 = unlimited (default)
	MaxSameIssues      int  `validate:"gte=0"` // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues
	PrintLinterName    bool // Show (rule) suffix
	UseColors          bool // Enable color output (default: auto-detect)
}

// LintStats counts what the config declares and how references resolved.
type LintStats struct {
	Format           SourceFormat
	Animations       int
	Keyframes        int
	Stops            int
	Declarations     int
	BackgroundImages int
	ContentPatterns  int
	Plugins          int

	Refs           ReferenceStats
	ContentChecked bool
	Content        ContentStats
}

// ResolvedPercentage is the share of keyframes references that resolve,
// either to the config or to a builtin. No references counts as 100%.
func (s LintStats) ResolvedPercentage() float64 {
	if s.Refs.Total == 0 {
		return 100
	}
	return float64(s.Refs.Resolved+s.Refs.Builtin) / float64(s.Refs.Total) * 100
}

// LintResult contains linting analysis results
type LintResult struct {
	ConfigFile string
	Stats      LintStats

	// Issues in golangci-lint format
	Issues         []Issue
	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed due to limits

	// Aborted is set when the config could not be parsed; Issues then holds
	// the single malformed-config error and nothing was validated.
	Aborted bool

	Warnings []string
}

var lintConfigValidator = validator.New()

// Lint loads a config file, validates it and returns the findings as issues.
// A malformed config is reported as an issue; only I/O and configuration
// problems are returned as errors.
func Lint(config LintConfig) (*LintResult, error) {
	// Step 1: Check the lint configuration itself
	if err := lintConfigValidator.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid lint configuration: %w", err)
	}

	// Step 2: Read the source once, for parsing and for issue context
	data, err := os.ReadFile(config.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	result := &LintResult{ConfigFile: config.ConfigFile}
	if format, err := DetectFormat(config.ConfigFile); err == nil {
		result.Stats.Format = format
	}

	// Step 3: Parse
	cfg, err := LoadBytes(config.ConfigFile, data)
	if err != nil {
		var mce *MalformedConfigError
		if !errors.As(err, &mce) {
			return nil, err
		}
		result.Aborted = true
		result.Issues = []Issue{newIssue(Finding{
			Rule:     RuleMalformed,
			Kind:     KindMalformedConfig,
			Severity: SeverityError,
			Path:     mce.Path,
			Pos:      mce.Pos,
			Message:  mce.Msg,
		}, displayName(config.ConfigFile), lines)}
		result.ErrorCount = 1
		log.Debug().Err(err).Str("file", config.ConfigFile).Msg("config is malformed")
		return result, nil
	}

	// Step 4: Validate
	vr := Validate(cfg, ValidateOptions{
		NoBuiltins:        config.NoBuiltins,
		BuiltinKeyframes:  config.BuiltinKeyframes,
		DanglingSeverity:  Severity(config.DanglingSeverity),
		DuplicateSeverity: Severity(config.DuplicateSeverity),
	})
	findings := vr.Findings
	result.Stats = collectStats(cfg, result.Stats.Format)
	result.Stats.Refs = vr.Refs

	// Step 5: Expand content globs if asked
	if config.CheckContent {
		workDir := config.WorkDir
		if workDir == "" {
			workDir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("resolve working directory: %w", err)
			}
		}
		contentFindings, contentStats := CheckContent(cfg, workDir)
		findings = append(findings, contentFindings...)
		sortFindings(findings)
		result.Stats.ContentChecked = true
		result.Stats.Content = contentStats
	} else if len(cfg.Content.Files) > 0 {
		result.Warnings = append(result.Warnings, "content patterns were not checked against the filesystem (use --check-content)")
	}

	if result.Stats.Refs.Unresolved > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s set through var() and cannot be checked statically", pluralizeCount(result.Stats.Refs.Unresolved, "animation name is", "animation names are")))
	}

	// Step 6: Convert to issues
	result.Issues = make([]Issue, 0, len(findings))
	for _, f := range findings {
		result.Issues = append(result.Issues, newIssue(f, displayName(config.ConfigFile), lines))
	}

	// Step 7: Apply issue limiting if configured
	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}
	result.ErrorCount, result.WarningCount = countSeverities(result.Issues)

	return result, nil
}

// HasIssues reports whether the strict gate should fail.
func (r *LintResult) HasIssues() bool {
	return len(r.Issues) > 0 || r.TruncatedCount > 0
}

func collectStats(cfg *Config, format SourceFormat) LintStats {
	stats := LintStats{
		Format:          format,
		ContentPatterns: len(cfg.Content.Files),
		Plugins:         len(cfg.Plugins),
	}
	for _, s := range []Section{cfg.Theme.Extend, cfg.Theme.Override} {
		stats.Animations += len(s.Animation)
		stats.BackgroundImages += len(s.BackgroundImage)
		stats.Keyframes += len(s.Keyframes)
		for _, kf := range s.Keyframes {
			stats.Stops += len(kf.Stops)
			for _, stop := range kf.Stops {
				stats.Declarations += len(stop.Declarations)
			}
		}
	}
	return stats
}

func countSeverities(issues []Issue) (errs, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
	}
	return errs, warnings
}

// displayName shortens the config path relative to the working directory.
func displayName(path string) string {
	wd, err := os.Getwd()
	if err != nil || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	// Apply max-issues-per-linter, counted per rule
	if config.MaxIssuesPerLinter > 0 {
		perRule := make(map[string]int)
		kept := issues[:0:0]
		for _, issue := range issues {
			if perRule[issue.FromLinter] < config.MaxIssuesPerLinter {
				kept = append(kept, issue)
				perRule[issue.FromLinter]++
			}
		}
		issues = kept
	}

	// Apply max-same-issues (deduplication by message text)
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
