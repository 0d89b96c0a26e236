package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twlint/internal/twlint"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [config-file]",
	Short: "Print a config file re-serialized as YAML, JSON or JavaScript",
	Long: `Load a config and write it back out in another syntax. Theme entries
are re-encoded from the decoded config, duplicates included; keys twlint
does not interpret are copied through. Use --raw to print the parsed tree
without decoding it.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd, args)
	},
}

func init() {
	f := dumpCmd.Flags()
	f.String("format", "", "Output syntax: yaml|json|js (default: yaml)")
	f.Bool("raw", false, "Print the parsed tree without decoding")
}

func runDump(cmd *cobra.Command, args []string) error {
	configFile, err := resolveThemeConfig(args)
	if err != nil {
		return err
	}

	format := twlint.SourceFormat(strings.ToLower(getStringWithFallback("format", "dump.format", "yaml")))
	if format == "yml" {
		format = twlint.FormatYAML
	}
	switch format {
	case twlint.FormatYAML, twlint.FormatJSON, twlint.FormatJS:
	default:
		return fmt.Errorf("unknown dump format %q (want yaml, json or js)", format)
	}

	raw, _ := cmd.Flags().GetBool("raw")

	var tree twlint.Value
	if raw {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		tree, err = twlint.ParseTree(configFile, data)
		if err != nil {
			return err
		}
	} else {
		cfg, err := twlint.Load(configFile)
		if err != nil {
			return err
		}
		tree = twlint.Encode(cfg)
	}

	return twlint.WriteTree(cmd.OutOrStdout(), tree, format)
}
