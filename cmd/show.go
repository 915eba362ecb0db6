package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xmazu/dotload/dotenv"
	"github.com/xmazu/dotload/internal/runner"
	"github.com/xmazu/dotload/internal/tui"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print the parsed pairs of a .env file",
	Long: `Parse a .env file and print the resulting KEY=VALUE pairs in the
order they appear, without touching the environment. Comments, blank lines
and malformed lines are dropped, exactly as a load would drop them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var showFormat string
var showMask bool

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "text", "Output format: text, json or yaml")
	showCmd.Flags().BoolVar(&showMask, "mask", false, "Mask values in the output")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	path := dotenv.DefaultFile
	if len(args) == 1 {
		path = args[0]
	}

	pairs, err := dotenv.SnapshotFile(path)
	if err != nil {
		return err
	}

	if showMask {
		for i := range pairs {
			pairs[i].Value = runner.MaskValue(pairs[i].Value)
		}
	}

	return writePairs(os.Stdout, pairs, showFormat)
}

func writePairs(w io.Writer, pairs []dotenv.Pair, format string) error {
	switch format {
	case "text":
		for _, p := range pairs {
			fmt.Fprintf(w, "%s=%s\n", tui.Key(p.Key), p.Value)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pairs); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case "yaml":
		out, err := yaml.Marshal(pairs)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q: expected text, json or yaml", format)
	}
}
