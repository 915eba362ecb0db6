package runner

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// stopGracePeriod is how long Stop waits for the child tree to exit
// after SIGTERM before escalating to SIGKILL.
const stopGracePeriod = 5 * time.Second

// ProcessRunner supervises a long-running child for the watch-restart
// loop. The child runs in its own process group so the whole tree can be
// stopped before a restart.
type ProcessRunner struct {
	Command string
	Args    []string
	Env     map[string]string
	Workdir string
	Redact  bool

	// SessionID identifies one supervised run across restarts.
	SessionID string

	cmd *exec.Cmd
}

func (r *ProcessRunner) Start() error {
	if r.SessionID == "" {
		r.SessionID = uuid.New().String()
	}

	r.cmd = exec.Command(r.Command, r.Args...)
	r.cmd.Env = BuildEnv(r.Env)
	r.cmd.Stdin = os.Stdin
	if r.Workdir != "" {
		r.cmd.Dir = r.Workdir
	}
	r.cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if r.Redact {
		stdoutR, stdoutW, err := os.Pipe()
		if err != nil {
			return fmt.Errorf("stdout pipe: %w", err)
		}
		stderrR, stderrW, err := os.Pipe()
		if err != nil {
			return fmt.Errorf("stderr pipe: %w", err)
		}
		r.cmd.Stdout = stdoutW
		r.cmd.Stderr = stderrW
		go redactPipe(os.Stdout, stdoutR, r.Env)
		go redactPipe(os.Stderr, stderrR, r.Env)
	} else {
		r.cmd.Stdout = os.Stdout
		r.cmd.Stderr = os.Stderr
	}

	return r.cmd.Start()
}

// redactPipe copies src to dst, masking env values as they stream by.
// A value split across two reads can slip through; acceptable for
// 4 KiB chunks and human-sized secrets.
func redactPipe(dst *os.File, src *os.File, envMap map[string]string) {
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			dst.Write(redactOutput(buf[:n], envMap))
		}
		if err != nil {
			return
		}
	}
}

var execPgrep = func(ppid int) ([]byte, error) {
	return exec.Command("pgrep", "-P", fmt.Sprintf("%d", ppid)).Output()
}

// killFunc is injectable for tests; production uses syscall.Kill.
var killFunc = func(pid int, sig syscall.Signal) error {
	return syscall.Kill(pid, sig)
}

// descendantPids walks pgrep output transitively so grandchildren that
// escaped the process group are still found.
func descendantPids(ppid int) ([]int, error) {
	out, err := execPgrep(ppid)
	if err != nil {
		return nil, err
	}
	var pids []int
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		var pid int
		if _, err := fmt.Sscanf(line, "%d", &pid); err == nil && pid > 0 {
			pids = append(pids, pid)
			deeper, _ := descendantPids(pid)
			pids = append(pids, deeper...)
		}
	}
	return pids, nil
}

func signalTree(pgid int, sig syscall.Signal) error {
	pids, err := descendantPids(pgid)
	if err == nil {
		for _, pid := range pids {
			_ = killFunc(pid, sig)
		}
	}
	return killFunc(-pgid, sig)
}

func (r *ProcessRunner) Stop() error {
	if r.cmd == nil || r.cmd.Process == nil {
		return nil
	}
	pgid, err := syscall.Getpgid(r.cmd.Process.Pid)
	if err != nil {
		return r.cmd.Process.Kill()
	}
	if err := signalTree(pgid, syscall.SIGTERM); err != nil {
		return r.cmd.Process.Kill()
	}
	done := make(chan error, 1)
	go func() {
		done <- r.cmd.Wait()
	}()
	select {
	case <-time.After(stopGracePeriod):
		_ = signalTree(pgid, syscall.SIGKILL)
		return fmt.Errorf("process did not exit gracefully, killed")
	case err := <-done:
		return err
	}
}

func (r *ProcessRunner) Wait() error {
	if r.cmd == nil {
		return fmt.Errorf("process not started")
	}
	return r.cmd.Wait()
}

func (r *ProcessRunner) ExitCode() int {
	if r.cmd == nil || r.cmd.ProcessState == nil {
		return -1
	}
	return r.cmd.ProcessState.ExitCode()
}

func (r *ProcessRunner) Running() bool {
	return r.cmd != nil && r.cmd.Process != nil && r.cmd.ProcessState == nil
}
