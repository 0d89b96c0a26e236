package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .twlint.yaml settings file",
	Long:  `Create a .twlint.yaml settings file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".twlint.yaml"); err == nil && !force {
			return fmt.Errorf(".twlint.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".twlint.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .twlint.yaml")
		return nil
	},
}

const defaultConfig = `# twlint configuration
# Docs: https://github.com/yacobolo/twlint

# Theme config to check; when empty the first tailwind.config.{js,mjs,cjs,yaml,yml,json} found is used
file: ""
verbose: false

# Linting settings
lint:
  check-content: false      # expand content globs against the filesystem
  work-dir: ""              # base for content globs (default: current directory)
  no-builtins: false        # treat spin/ping/pulse/bounce as undefined
  builtin-keyframes: []     # replaces the default keyframes when set
  dangling-severity: warning   # warning | error
  duplicate-severity: warning  # warning | error
  strict: false
  threshold: 0.0            # fail below this resolved-reference percentage (0 = off)
  output-format: issues     # issues | summary | full | json | markdown
  max-issues-per-linter: 0  # 0 = unlimited
  max-same-issues: 0        # 0 = unlimited
  print-lines: true
  print-linter-name: true

# Dump settings
dump:
  format: yaml              # yaml | json | js
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
