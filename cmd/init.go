package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xmazu/dotload/dotenv"
	"github.com/xmazu/dotload/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Interactively create a .env file",
	Long: `Prompt for KEY=VALUE pairs and write them to a new .env file
(default: ./.env). Refuses to overwrite an existing file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := dotenv.DefaultFile
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists; remove it first or pass another path", path)
	}

	fmt.Fprintln(os.Stderr, tui.Header("Creating "+path))
	fmt.Fprintln(os.Stderr, tui.Muted("Leave the key empty to finish."))

	var pairs []dotenv.Pair
	for {
		key, value, err := tui.PairInput()
		if err != nil {
			return err
		}
		if key == "" {
			break
		}
		if _, ok := dotenv.ParseLine(key + "=" + value); !ok {
			fmt.Fprintf(os.Stderr, "%s %q is not a usable variable name, skipped\n", tui.Warning("!"), key)
			continue
		}
		pairs = append(pairs, dotenv.Pair{Key: key, Value: value})
	}

	if len(pairs) == 0 {
		ok, err := tui.Confirm("No variables entered. Write an empty " + path + "?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	for _, p := range pairs {
		if _, err := fmt.Fprintf(f, "%s=%s\n", p.Key, p.Value); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	fmt.Fprintf(os.Stderr, "%s Created %s with %d variable(s)\n", tui.Success("✓"), path, len(pairs))
	return nil
}
