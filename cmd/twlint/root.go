package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "twlint [config-file]",
	Short: "Validate the theme extension of a utility-CSS config",
	Long: `Check animations, keyframes, background images and content globs
in tailwind.config.js (or a YAML/JSON equivalent) before the build runs.
Reports dangling keyframes references, duplicate keys and malformed stops.`,
	Args: cobra.MaximumNArgs(1),
	// Default behavior: run lint when no subcommand is given.
	// loadConfig runs here because lintCmd's PreRunE does not.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runLint(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".twlint.yaml", "twlint settings file")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
