package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twlint/internal/twlint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [config-file]",
	Short: "Validate a theme config file",
	Long: `Load tailwind.config.js (or .yaml/.json) and check its theme extension.
Without an argument the file comes from the settings file or the first
tailwind.config.* found in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLint(cmd, args)
	},
}

func init() {
	f := lintCmd.Flags()
	f.Bool("check-content", false, "Expand content globs and report patterns matching no files")
	f.String("work-dir", "", "Directory content globs resolve against (default: current directory)")
	f.Bool("no-builtins", false, "Do not treat the default keyframes (spin, ping, pulse, bounce) as defined")
	f.StringSlice("builtin-keyframes", nil, "Keyframes the build tool provides (replaces the defaults)")
	f.String("dangling-severity", "", "Severity of undefined keyframes references: warning|error")
	f.String("duplicate-severity", "", "Severity of duplicate keys: warning|error")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Float64("threshold", 0.0, "Fail when fewer keyframes references resolve (percent, 0=off)")
	f.String("output-format", "", "Output format: issues|summary|full|json|markdown")
	f.Int("max-issues-per-linter", 0, "Max issues to show per rule (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show the rule name after each issue")
}

func runLint(cmd *cobra.Command, args []string) error {
	configFile, err := resolveThemeConfig(args)
	if err != nil {
		return err
	}
	lintConfig := buildLintConfig(configFile)

	lintResult, err := twlint.Lint(lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	if _, ok := twlint.ParseOutputFormat(outputFormat); outputFormat != "" && !ok {
		return fmt.Errorf("unknown output format %q (want issues, summary, full, json or markdown)", outputFormat)
	}
	format := twlint.DetermineOutputFormat(outputFormat, quiet)

	out := cmd.OutOrStdout()
	if !quiet {
		twlint.WriteOutput(out, lintResult, format, lintConfig)
	}

	// Exit code logic - "Soft Gate" approach: errors always fail the build,
	// strict mode also fails on warnings.
	if lintResult.ErrorCount > 0 || (lintConfig.Strict && lintResult.HasIssues()) {
		return &exitError{code: 1}
	}

	// Threshold gate, independent of --strict.
	threshold := getFloat64WithFallback("threshold", "lint.threshold", 0.0)
	if resolved := lintResult.Stats.ResolvedPercentage(); threshold > 0 && resolved < threshold {
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "\n%.1f%% of keyframes references resolve, below threshold %.1f%%\n",
				resolved, threshold)
		}
		return &exitError{code: 1}
	}

	return nil
}
