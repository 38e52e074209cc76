package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/theirongolddev/finboard/internal/backend"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/daemon"
	"github.com/theirongolddev/finboard/internal/log"

	"github.com/spf13/cobra"
)

var (
	flagDaemonAddr         string
	flagDaemonInterval     time.Duration
	flagDaemonDetach       bool
	flagDaemonPIDFile      string
	flagDaemonLogFile      string
	flagDaemonEventsBuffer int
	flagDaemonChild        bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Poll the backend and serve finance snapshots over HTTP/SSE",
	RunE:  runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the daemon process and its latest snapshot",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	pf := daemonCmd.PersistentFlags()
	pf.StringVar(&flagDaemonAddr, "addr", "127.0.0.1:8787", "HTTP listen address")
	pf.DurationVar(&flagDaemonInterval, "interval", 30*time.Second, "Polling interval")
	pf.StringVar(&flagDaemonPIDFile, "pid-file", filepath.Join(config.DataDir(), "finboardd.pid"), "PID file path")
	pf.StringVar(&flagDaemonLogFile, "log-file", filepath.Join(config.DataDir(), "finboardd.log"), "Log file for --detach")
	pf.IntVar(&flagDaemonEventsBuffer, "events-buffer", 200, "Events kept for /v1/events")

	daemonCmd.Flags().BoolVar(&flagDaemonDetach, "detach", false, "Run in the background")
	daemonCmd.Flags().BoolVar(&flagDaemonChild, "child", false, "Internal: mark detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd, daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(_ *cobra.Command, _ []string) error {
	switch {
	case flagDaemonDetach && flagDaemonChild:
		return errors.New("invalid daemon launch mode")
	case flagDaemonDetach:
		return startDaemonDetached()
	default:
		return runDaemonForeground()
	}
}

func startDaemonDetached() error {
	pf := pidFile(flagDaemonPIDFile)
	if err := pf.claim(); err != nil {
		return err
	}
	if err := pf.prepare(); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagDaemonLogFile), 0o750); err != nil {
		return fmt.Errorf("create daemon log directory: %w", err)
	}
	//nolint:gosec // daemon log path is configured by the local user
	logf, err := os.OpenFile(flagDaemonLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, childArgs(os.Args[1:])...) //nolint:gosec // re-executes the current binary
	child.Stdout = logf
	child.Stderr = logf
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	fmt.Printf("  Started daemon (pid %d)\n", child.Process.Pid)
	fmt.Printf("  API: http://%s/v1/status\n", flagDaemonAddr)
	fmt.Printf("  Log: %s\n", flagDaemonLogFile)
	return nil
}

func runDaemonForeground() error {
	if flagDaemonInterval < time.Second {
		return fmt.Errorf("--interval must be at least 1s, got %s", flagDaemonInterval)
	}
	var month time.Time
	if flagMonth != "" {
		m, err := cli.ParseMonth(flagMonth)
		if err != nil {
			return err
		}
		month = m
	}

	pf := pidFile(flagDaemonPIDFile)
	if err := pf.claim(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := resolveSession(&cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The daemon logs at info by default; its stderr is the log file when detached.
	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentDaemon)

	res, err := backend.Open(ctx, cfg, sess, logger)
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	if err := pf.prepare(); err != nil {
		return err
	}
	if err := pf.write(daemonState{
		PID:       os.Getpid(),
		Addr:      flagDaemonAddr,
		StartedAt: time.Now(),
		Backend:   res.Name,
	}); err != nil {
		return err
	}
	defer pf.remove()

	svc := daemon.New(daemon.Config{
		Backend:      res.Name,
		Interval:     flagDaemonInterval,
		Addr:         flagDaemonAddr,
		EventsBuffer: flagDaemonEventsBuffer,
		Month:        month,
	}, res.Gateway, logger)

	fmt.Printf("  finboard daemon listening on http://%s\n", flagDaemonAddr)
	fmt.Printf("  Polling %s every %s\n", res.Name, flagDaemonInterval)
	fmt.Printf("  Stop with: finboard daemon stop --pid-file %s\n", flagDaemonPIDFile)

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// fetchStatus reads /v1/status from a running daemon.
func fetchStatus(addr string) (daemon.Status, error) {
	var st daemon.Status
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		return st, fmt.Errorf("unreachable (%w)", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("malformed response (%w)", err)
	}
	return st, nil
}

func runDaemonStatus(_ *cobra.Command, _ []string) error {
	pf := pidFile(flagDaemonPIDFile)
	pid, err := pf.pid()
	if err != nil {
		fmt.Println("  Daemon: not running")
		return nil
	}
	if !processAlive(pid) {
		fmt.Printf("  Daemon: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := flagDaemonAddr
	if st, err := pf.state(); err == nil && st.Addr != "" {
		addr = st.Addr
	}
	fmt.Printf("  Daemon PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	st, err := fetchStatus(addr)
	if err != nil {
		fmt.Printf("  API status: %v\n", err)
		return nil
	}

	if st.LastPollAt.IsZero() {
		fmt.Println("  Last poll: pending")
	} else {
		fmt.Printf("  Last poll: %s (every %ds, %d so far)\n",
			st.LastPollAt.Local().Format(time.RFC3339), st.PollIntervalSec, st.PollCount)
	}
	fmt.Printf("  Backend: %s · %d subscribers · %d events\n", st.Backend, st.SubscriberCount, st.EventCount)

	sum := st.Summary
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Snapshot " + sum.Month,
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Transactions", fmt.Sprintf("%d (%d pending)", sum.Transactions, sum.Pending)},
			{"Income", cli.FormatMoney(sum.Income)},
			{"Expense", cli.FormatMoney(sum.Expense)},
			{"Balance", cli.FormatSignedMoney(sum.Balance)},
			{"Accounts", cli.FormatMoney(sum.AccountsTotal)},
			{"Open invoices", cli.FormatMoney(sum.OpenInvoices)},
			{"Card credit", cli.FormatMoney(sum.CardsAvailable)},
			{"Budgets exceeded", fmt.Sprintf("%d", sum.BudgetsExceeded)},
		},
	}))

	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	names := make([]string, 0, len(st.CollectionErrors))
	for name := range st.CollectionErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s %s: %s\n", cli.Warn("!"), name, st.CollectionErrors[name])
	}
	return nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	pf := pidFile(flagDaemonPIDFile)
	pid, err := pf.pid()
	if err != nil {
		return errors.New("daemon is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal daemon process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			pf.remove()
			fmt.Printf("  Stopped daemon (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}
	return fmt.Errorf("daemon (pid %d) did not exit in time", pid)
}
