package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dotload",
	Short:         "Load, inspect and inject .env files",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `dotload parses .env files (KEY=VALUE lines, comments and blank lines
ignored) and injects the result into child processes.

Malformed lines are skipped rather than failing the whole file; use
` + "`dotload check`" + ` to see what a file silently drops.

EXAMPLES:

  dotload run -- node server.js
  dotload run -f .env -f .env.local --overload -- npm start
  dotload show --format yaml
  dotload check .env
  dotload ls apps/`,
}

func init() {
	// Cobra adds --version when Version is set; use a clear template
	rootCmd.SetVersionTemplate("dotload version {{.Version}}\n")
}

// SetVersion sets the version string shown by --version (e.g. from ldflags).
func SetVersion(v string) { rootCmd.Version = v }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
