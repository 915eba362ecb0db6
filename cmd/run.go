package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xmazu/dotload/dotenv"
	"github.com/xmazu/dotload/internal/runner"
	"github.com/xmazu/dotload/internal/tui"
	"github.com/xmazu/dotload/internal/watch"
)

var runCmd = &cobra.Command{
	Use:   "run -- [command]",
	Short: "Run a command with variables from .env files",
	Long: `Parse the given .env files and run the specified command with the
variables injected into its environment. This process's own environment is
left untouched.

Use -f multiple times to compose files (later files override with
--overload). Use --env KEY=value to add or override single variables.
Dev-server commands are restarted when a watched .env file changes
(disable with --no-watch).`,
	RunE: runRun,
}

var runFiles []string
var runOverload bool
var runEnv []string
var runStrict bool
var runRedact bool
var runNoWatch bool

func init() {
	runCmd.Flags().StringSliceVarP(&runFiles, "file", "f", []string{}, "Path(s) to .env file (can be repeated, searched upwards if empty)")
	runCmd.Flags().BoolVar(&runOverload, "overload", false, "Let later files and --env override earlier values")
	runCmd.Flags().StringSliceVarP(&runEnv, "env", "e", nil, "Environment override KEY=value (can be repeated)")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "Fail if any env file is missing or unreadable")
	runCmd.Flags().BoolVar(&runRedact, "redact", false, "Redact loaded values in command output with [REDACTED:KEY]")
	runCmd.Flags().BoolVar(&runNoWatch, "no-watch", false, "Disable auto-restart on .env changes")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command specified. Use: dotload run -- your-command")
	}

	files := runFiles
	if len(files) == 0 {
		path, err := runner.FindEnvInParents("", runner.MaxEnvSearchDepth)
		if err != nil {
			if runStrict {
				return err
			}
			files = []string{dotenv.DefaultFile}
		} else {
			files = []string{path}
		}
	}

	merged, err := runner.SnapshotFiles(files, runOverload, runStrict)
	if err != nil {
		return err
	}
	if err := runner.MergeOverlay(merged, runEnv, runOverload); err != nil {
		return err
	}

	command := args[0]
	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	if runNoWatch || !runner.IsDevServerCommand(command) {
		return runOnce(merged, command, cmdArgs)
	}

	return runWithWatch(merged, files, command, cmdArgs)
}

func runOnce(envMap map[string]string, command string, args []string) error {
	var exitCode int
	var err error
	if runRedact {
		exitCode, err = runner.RunRedacted(envMap, "", command, args)
	} else {
		exitCode, err = runner.Run(envMap, "", command, args)
	}
	if err != nil {
		if exitCode >= 0 {
			os.Exit(exitCode)
		}
		return err
	}
	return nil
}

func runWithWatch(envMap map[string]string, files []string, command string, args []string) error {
	w, err := watch.New()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer w.Close()

	for _, f := range files {
		if err := w.Add(f); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not watch %s: %v\n", f, err)
		}
	}

	changes := w.Start()

	proc := &runner.ProcessRunner{
		Command: command,
		Args:    args,
		Env:     envMap,
		Redact:  runRedact,
	}
	if err := proc.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%s watching %d env file(s), session %s\n",
		tui.Muted("dotload:"), len(files), tui.Muted(proc.SessionID))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			if proc.Running() {
				_ = proc.Stop()
			}
			if sig == syscall.SIGTERM {
				os.Exit(143)
			}
			os.Exit(130) // typical exit for SIGINT (Ctrl+C)

		case <-changes:
			fmt.Fprintf(os.Stderr, "%s .env changed, restarting (session %s)\n",
				tui.Warning("dotload:"), tui.Muted(proc.SessionID))

			if proc.Running() {
				if err := proc.Stop(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: stop error: %v\n", err)
				}
			}

			merged, err := runner.SnapshotFiles(files, runOverload, runStrict)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s reloading .env: %v\n", tui.Error("dotload:"), err)
				continue
			}
			if err := runner.MergeOverlay(merged, runEnv, runOverload); err != nil {
				fmt.Fprintf(os.Stderr, "%s merging overlay: %v\n", tui.Error("dotload:"), err)
				continue
			}

			proc.Env = merged
			if err := proc.Start(); err != nil {
				return fmt.Errorf("restart command: %w", err)
			}

		case err := <-waitProcess(proc):
			if err != nil {
				if proc.ExitCode() >= 0 {
					os.Exit(proc.ExitCode())
				}
				return err
			}
			return nil
		}
	}
}

func waitProcess(proc *runner.ProcessRunner) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- proc.Wait()
	}()
	return ch
}
