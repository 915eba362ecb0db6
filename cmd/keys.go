package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xmazu/dotload/dotenv"
)

var keysCmd = &cobra.Command{
	Use:   "keys [file]",
	Short: "Print only the keys of a .env file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	path := dotenv.DefaultFile
	if len(args) == 1 {
		path = args[0]
	}

	pairs, err := dotenv.SnapshotFile(path)
	if err != nil {
		return err
	}

	for _, key := range dotenv.Keys(pairs) {
		fmt.Fprintln(os.Stdout, key)
	}
	return nil
}
