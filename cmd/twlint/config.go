package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/twlint/internal/twlint"
)

var k = koanf.New(".")

// themeConfigCandidates are tried in order when no config file is given.
var themeConfigCandidates = []string{
	"tailwind.config.js",
	"tailwind.config.mjs",
	"tailwind.config.cjs",
	"tailwind.config.yaml",
	"tailwind.config.yml",
	"tailwind.config.json",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".twlint.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags, only those explicitly set, so flag defaults never mask
	// values from the file or the environment.
	fs := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	if getBoolWithFallback("verbose", "verbose", false) {
		enableVerboseLogging()
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (TWLINT_* prefix)
	if err := k.Load(env.Provider("TWLINT_", ".", func(s string) string {
		// TWLINT_LINT_STRICT -> lint.strict
		// TWLINT_FILE -> file
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "TWLINT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// resolveThemeConfig picks the config to check: the argument, then the
// configured file, then the first conventional name that exists.
func resolveThemeConfig(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if path := k.String("file"); path != "" {
		return path, nil
	}
	for _, candidate := range themeConfigCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no config file given and none of %s found", strings.Join(themeConfigCandidates, ", "))
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig(configFile string) twlint.LintConfig {
	var builtins []string
	if names := k.Strings("builtin-keyframes"); len(names) > 0 {
		builtins = names
	} else if names := k.Strings("lint.builtin-keyframes"); len(names) > 0 {
		builtins = names
	}

	return twlint.LintConfig{
		ConfigFile:         configFile,
		WorkDir:            getStringWithFallback("work-dir", "lint.work-dir", ""),
		CheckContent:       getBoolWithFallback("check-content", "lint.check-content", false),
		NoBuiltins:         getBoolWithFallback("no-builtins", "lint.no-builtins", false),
		BuiltinKeyframes:   builtins,
		DanglingSeverity:   getStringWithFallback("dangling-severity", "lint.dangling-severity", "warning"),
		DuplicateSeverity:  getStringWithFallback("duplicate-severity", "lint.duplicate-severity", "warning"),
		Verbose:            getBoolWithFallback("verbose", "verbose", false),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getFloat64WithFallback checks the flag key first, then the config file key, then returns the default.
func getFloat64WithFallback(flagKey, configKey string, defaultVal float64) float64 {
	if k.Exists(flagKey) {
		return k.Float64(flagKey)
	}
	if k.Exists(configKey) {
		return k.Float64(configKey)
	}
	return defaultVal
}
