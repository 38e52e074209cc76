package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// daemonState is written next to the pid file so `daemon status` can find
// the API address the running process chose.
type daemonState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	Backend   string    `json:"backend"`
}

// pidFile is the daemon's pid file path. Its state file lives at path+".json".
type pidFile string

func (p pidFile) statePath() string { return string(p) + ".json" }

func (p pidFile) prepare() error {
	if err := os.MkdirAll(filepath.Dir(string(p)), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}
	return nil
}

func (p pidFile) write(st daemonState) error {
	if err := writePID(string(p), st.PID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.statePath(), append(data, '\n'), 0o600)
}

func (p pidFile) pid() (int, error) {
	return readPID(string(p))
}

func (p pidFile) state() (daemonState, error) {
	var st daemonState
	//nolint:gosec // daemon state path is configured by the local user
	data, err := os.ReadFile(p.statePath())
	if err != nil {
		return st, err
	}
	err = json.Unmarshal(data, &st)
	return st, err
}

func (p pidFile) remove() {
	_ = os.Remove(string(p))
	_ = os.Remove(p.statePath())
}

// claim fails when a live daemon owns p and clears stale files otherwise.
func (p pidFile) claim() error {
	pid, err := p.pid()
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return err
	case processAlive(pid):
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	p.remove()
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // daemon pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

// childArgs re-runs the current invocation in the foreground.
func childArgs(args []string) []string {
	out := filterDetachArg(args)
	return append(out, "--child")
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}
