// Package runner builds a merged environment from .env files and runs
// commands with it injected, without mutating this process's own
// environment.
package runner

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/xmazu/dotload/dotenv"
)

// SnapshotFiles parses each file and merges its pairs into one map. With
// overload, later files win; otherwise the first value for a key is kept.
// With strict, a missing or unreadable file fails the whole merge; otherwise
// it is skipped.
func SnapshotFiles(paths []string, overload, strict bool) (map[string]string, error) {
	merged := make(map[string]string)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", p, err)
		}

		pairs, err := dotenv.SnapshotFile(abs)
		if err != nil {
			if strict {
				return nil, err
			}
			continue
		}
		for _, pair := range pairs {
			if _, exists := merged[pair.Key]; overload || !exists {
				merged[pair.Key] = pair.Value
			}
		}
	}
	return merged, nil
}

// MergeOverlay folds KEY=value overrides from the command line into env.
func MergeOverlay(env map[string]string, overlay []string, overload bool) error {
	for _, s := range overlay {
		idx := strings.Index(s, "=")
		if idx <= 0 {
			return fmt.Errorf("invalid --env %q: expected KEY=value", s)
		}
		key := s[:idx]
		value := s[idx+1:]
		if _, exists := env[key]; overload || !exists {
			env[key] = value
		}
	}
	return nil
}

// BuildEnv appends the map's pairs to the current process environment in
// the KEY=value form exec.Cmd expects. The appended entries win over
// inherited ones.
func BuildEnv(envMap map[string]string) []string {
	cmdEnv := os.Environ()
	for k, v := range envMap {
		cmdEnv = append(cmdEnv, fmt.Sprintf("%s=%s", k, v))
	}
	return cmdEnv
}

func exitCodeFromError(runErr error) (int, error) {
	if runErr == nil {
		return 0, nil
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		return exitErr.ExitCode(), runErr
	}
	return -1, fmt.Errorf("failed to run command: %w", runErr)
}

// Run executes command with the merged environment, wired to this
// process's stdio. Returns the child's exit code.
func Run(envMap map[string]string, workdir, command string, args []string) (int, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = BuildEnv(envMap)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if workdir != "" {
		cmd.Dir = workdir
	}
	// Child stays in our process group so Ctrl+C kills it too.
	return exitCodeFromError(cmd.Run())
}

// RunRedacted is Run with loaded values replaced by [REDACTED:KEY] in the
// child's captured output.
func RunRedacted(envMap map[string]string, workdir, command string, args []string) (int, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = BuildEnv(envMap)
	cmd.Stdin = os.Stdin
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if workdir != "" {
		cmd.Dir = workdir
	}

	runErr := cmd.Run()
	_, _ = os.Stdout.Write(redactOutput([]byte(stdout.String()), envMap))
	_, _ = os.Stderr.Write(redactOutput([]byte(stderr.String()), envMap))

	return exitCodeFromError(runErr)
}

func redactOutput(data []byte, envMap map[string]string) []byte {
	result := string(data)
	for k, v := range envMap {
		if v != "" {
			result = strings.ReplaceAll(result, v, fmt.Sprintf("[REDACTED:%s]", k))
		}
	}
	return []byte(result)
}

// MaskValue hides most of a value for display, keeping a short suffix on
// longer values so they can still be told apart.
func MaskValue(value string) string {
	length := len(value)
	if length == 0 {
		return ""
	}
	switch {
	case length <= 4:
		return strings.Repeat("*", length)
	case length <= 8:
		return strings.Repeat("*", length-2) + value[length-2:]
	default:
		return strings.Repeat("*", length-4) + value[length-4:]
	}
}

const MaxEnvSearchDepth = 16

// FindEnvInParents walks up from dir looking for a .env file.
func FindEnvInParents(dir string, maxDepth int) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	for i := 0; i < maxDepth; i++ {
		envPath := filepath.Join(dir, dotenv.DefaultFile)
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("no %s found in current or parent directories (searched up to %d levels)", dotenv.DefaultFile, maxDepth)
}

var devServerCommands = map[string]bool{
	"next":            true,
	"vite":            true,
	"ng":              true,
	"vue-cli-service": true,
	"react-scripts":   true,
	"wrangler":        true,
	"serve":           true,
	"nodemon":         true,
}

// IsDevServerCommand reports whether command looks like a long-running dev
// server worth restarting when its env files change.
func IsDevServerCommand(command string) bool {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return false
	}

	base := filepath.Base(parts[0])
	base = strings.TrimSuffix(base, ".exe")

	if devServerCommands[base] {
		return true
	}

	if base == "node" && len(parts) > 1 {
		return true
	}

	return base == "npm" || base == "yarn" || base == "pnpm" || base == "bun"
}
