package twlint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// SourceFormat identifies the syntax of a config source.
type SourceFormat string

const (
	FormatJS   SourceFormat = "js"
	FormatYAML SourceFormat = "yaml"
	FormatJSON SourceFormat = "json"
)

// DetectFormat picks the source syntax from a file name.
func DetectFormat(name string) (SourceFormat, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".js", ".mjs", ".cjs":
		return FormatJS, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported config file %q (want .js, .mjs, .cjs, .yaml, .yml or .json)", name)
	}
}

// Load reads, parses and decodes a config file.
func Load(path string) (*Config, error) {
	// #nosec G304 - path comes from the command line or trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return LoadBytes(path, data)
}

// LoadBytes parses and decodes an in-memory config source. The name selects
// the syntax and is used in error positions.
func LoadBytes(name string, data []byte) (*Config, error) {
	tree, err := ParseTree(name, data)
	if err != nil {
		return nil, err
	}

	cfg, err := Decode(name, tree)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("file", name).
		Int("animations", len(cfg.Theme.Extend.Animation)).
		Int("keyframes", len(cfg.Theme.Extend.Keyframes)).
		Int("background_images", len(cfg.Theme.Extend.BackgroundImage)).
		Msg("config loaded")

	return cfg, nil
}

// ParseTree parses a source into a raw tree without interpreting any keys.
func ParseTree(name string, data []byte) (Value, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return Value{}, err
	}

	switch format {
	case FormatJS:
		return parseJS(name, data)
	default:
		return parseYAML(name, data)
	}
}
