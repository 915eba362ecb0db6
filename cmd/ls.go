package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xmazu/dotload/internal/envfind"
	"github.com/xmazu/dotload/internal/tui"
)

var lsCmd = &cobra.Command{
	Use:   "ls [directory]",
	Short: "List .env files in a directory tree",
	Long: `Discover and list .env and .env.* files under the given directory
(default: current directory). Output is a simple tree. Use --pattern to
match other names, e.g. --pattern "apps/**/.env".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

var lsPatterns []string

func init() {
	lsCmd.Flags().StringSliceVar(&lsPatterns, "pattern", nil, "Glob pattern(s) for env file names (can be repeated)")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	paths, err := envfind.List(root, lsPatterns)
	if err != nil {
		return fmt.Errorf("list env files: %w", err)
	}
	if len(paths) == 0 {
		return nil
	}

	fmt.Fprintln(os.Stdout, tui.Label(root))
	tree := envfind.BuildTree(paths)
	envfind.RenderTree(os.Stdout, tree)
	return nil
}
