package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xmazu/dotload/dotenv"
	"github.com/xmazu/dotload/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Report lines a load would silently drop",
	Long: `Loading skips malformed lines instead of failing, so a typo like a
missing '=' silently loses a variable. check reports every non-comment,
non-blank line that parses to nothing, with its line number, and exits
non-zero if it finds any.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := dotenv.DefaultFile
	if len(args) == 1 {
		path = args[0]
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var dropped, valid int
	lineNum := 0
	scanner := dotenv.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if _, ok := dotenv.ParseLine(line); !ok {
			dropped++
			fmt.Fprintf(os.Stderr, "%s %s:%d: %s\n", tui.Warning("dropped"), path, lineNum, trimmed)
			continue
		}
		valid++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if dropped > 0 {
		return fmt.Errorf("%d line(s) would be dropped on load (%d valid)", dropped, valid)
	}
	fmt.Fprintf(os.Stderr, "%s %s: %d variable(s), nothing dropped\n", tui.Success("ok"), path, valid)
	return nil
}
