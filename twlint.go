// Package twlint loads and validates the theme-extension part of a
// utility-CSS framework config: animations, keyframes, background images,
// content globs and plugins.
//
// Configs are read from JavaScript modules (tailwind.config.js), YAML or
// JSON. Every value keeps its source position, so findings point at the
// offending key.
//
// # Loading
//
//	cfg, err := twlint.Load("tailwind.config.js")
//	if errors.Is(err, twlint.ErrMalformedConfig) {
//		// structure is wrong, nothing else can run
//	}
//
// # Validation
//
//	result := twlint.Validate(cfg, twlint.ValidateOptions{})
//	for _, f := range result.Findings {
//		fmt.Printf("%s: %s (%s)\n", f.Pos, f.Message, f.Rule)
//	}
//
// Dangling animation references and duplicate keys are warnings by default.
// Set ValidateOptions.DanglingSeverity or DuplicateSeverity to
// SeverityError to fail on them.
//
// # CLI Tool
//
// twlint also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/twlint/cmd/twlint@latest
package twlint

import (
	"io"

	"github.com/yacobolo/twlint/internal/twlint"
)

// Config types.
type (
	Config          = twlint.Config
	Content         = twlint.Content
	Pattern         = twlint.Pattern
	Theme           = twlint.Theme
	Section         = twlint.Section
	Animation       = twlint.Animation
	Keyframes       = twlint.Keyframes
	Stop            = twlint.Stop
	Declaration     = twlint.Declaration
	BackgroundImage = twlint.BackgroundImage
	Value           = twlint.Value
	Entry           = twlint.Entry
	Pos             = twlint.Pos
	SourceFormat    = twlint.SourceFormat
)

// Validation types.
type (
	ValidateOptions      = twlint.ValidateOptions
	ValidationResult     = twlint.ValidationResult
	Finding              = twlint.Finding
	FindingKind          = twlint.FindingKind
	Severity             = twlint.Severity
	MalformedConfigError = twlint.MalformedConfigError
)

// Lint types.
type (
	LintConfig   = twlint.LintConfig
	LintResult   = twlint.LintResult
	Issue        = twlint.Issue
	OutputFormat = twlint.OutputFormat
)

// Severities and source formats.
const (
	SeverityError   = twlint.SeverityError
	SeverityWarning = twlint.SeverityWarning

	FormatJS   = twlint.FormatJS
	FormatYAML = twlint.FormatYAML
	FormatJSON = twlint.FormatJSON
)

// ErrMalformedConfig is wrapped by every structural load failure.
var ErrMalformedConfig = twlint.ErrMalformedConfig

// Load reads, parses and decodes a config file.
func Load(path string) (*Config, error) {
	return twlint.Load(path)
}

// LoadBytes parses an in-memory source; name selects the syntax.
func LoadBytes(name string, data []byte) (*Config, error) {
	return twlint.LoadBytes(name, data)
}

// Validate checks a decoded config.
func Validate(cfg *Config, opts ValidateOptions) *ValidationResult {
	return twlint.Validate(cfg, opts)
}

// Encode converts a config back to a tree that WriteTree can serialize.
func Encode(cfg *Config) Value {
	return twlint.Encode(cfg)
}

// WriteTree serializes a tree as JavaScript, YAML or JSON.
func WriteTree(w io.Writer, v Value, format SourceFormat) error {
	return twlint.WriteTree(w, v, format)
}

// Lint runs the full pipeline and returns golangci-style issues.
func Lint(config LintConfig) (*LintResult, error) {
	return twlint.Lint(config)
}

// DetermineOutputFormat selects an output format from a flag value.
func DetermineOutputFormat(requested string, quiet bool) OutputFormat {
	return twlint.DetermineOutputFormat(requested, quiet)
}

// WriteOutput renders a lint result.
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config LintConfig) {
	twlint.WriteOutput(w, result, format, config)
}
