// Package cmd implements the finboard CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/backend"
	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/log"
	"github.com/theirongolddev/finboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagMonth   string
	flagBackend string
	flagQuiet   bool
	flagDemo    bool
)

var rootCmd = &cobra.Command{
	Use:   "finboard",
	Short: "Personal finance dashboard",
	Long:  "Track transactions, budgets, accounts and credit cards from the terminal.",
	RunE:  runSummary,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "M", "", "Month to show (YYYY-MM, default current)")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Override the configured backend (sqlite, postgres, rest, memory)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagDemo, "demo", false, "Use the in-memory backend with demo data")
}

// newLogger is the process logger. CLI output goes to stdout; logs go to
// stderr and stay at warn unless FINBOARD_LOG_LEVEL says otherwise.
func newLogger() *log.Logger {
	lc := log.DefaultConfig()
	if os.Getenv("FINBOARD_LOG_LEVEL") == "" {
		lc = log.Config{Level: log.ParseLevel("warn")}
	}
	return log.New(lc)
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagBackend != "" {
		cfg.Backend.Type = flagBackend
	}
	if flagDemo {
		cfg.Backend.Type = config.BackendMemory
		cfg.Backend.Seed = true
	}
	if cfg.General.Currency != "" {
		cli.CurrencySymbol = cfg.General.Currency
	}
	return cfg, nil
}

// resolveSession picks the acting user for cfg. Local backends get a
// generated user id on first use, which is written back to the config.
func resolveSession(cfg *config.Config) (auth.Session, error) {
	if cfg.Backend.Type != config.BackendREST && !flagDemo && auth.EnsureUserID(cfg) {
		if err := persistUserID(cfg.General.UserID); err != nil {
			return auth.Session{}, err
		}
	}
	return auth.Resolve(*cfg)
}

// persistUserID saves a freshly generated user id on top of the config file,
// not the flag-adjusted copy.
func persistUserID(id string) error {
	onDisk, err := config.Load()
	if err != nil {
		return err
	}
	onDisk.General.UserID = id
	return config.Save(onDisk)
}

// openGateway is the shared backend path used by all data commands.
func openGateway(ctx context.Context) (*backend.Result, config.Config, auth.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, auth.Session{}, err
	}
	sess, err := resolveSession(&cfg)
	if err != nil {
		return nil, cfg, sess, err
	}
	res, err := backend.Open(ctx, cfg, sess, newLogger())
	if err != nil {
		return nil, cfg, sess, err
	}
	return res, cfg, sess, nil
}

// loadData opens the backend and fetches every collection.
func loadData(ctx context.Context) (*pipeline.Dataset, config.Config, error) {
	res, cfg, _, err := openGateway(ctx)
	if err != nil {
		return nil, cfg, err
	}
	defer func() { _ = res.Close() }()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loading from %s...\n", res.Name)
	}

	progressFn := func(done, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Fetching [%d/%d]", done, total)
		if done == total {
			fmt.Fprint(os.Stderr, "\r                    \r")
		}
	}

	ds := pipeline.Load(ctx, res.Gateway, progressFn)
	warnCollectionErrors(ds)
	return ds, cfg, nil
}

// warnCollectionErrors reports collections that could not be read. The
// remaining collections still render.
func warnCollectionErrors(ds *pipeline.Dataset) {
	if errors.Is(ds.Err(), gateway.ErrConfigMissing) {
		fmt.Fprintf(os.Stderr, "  %s backend not configured. Run `finboard setup` or try `--demo`.\n", cli.Warn("!"))
		return
	}
	for _, name := range pipeline.Collections {
		if err, ok := ds.Errors[name]; ok && err != nil {
			fmt.Fprintf(os.Stderr, "  %s %s: %s\n", cli.Warn("!"), name, err)
		}
	}
}

// anchorMonth is the first day of the --month flag, or of the current month.
func anchorMonth() (time.Time, error) {
	if flagMonth == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return cli.ParseMonth(flagMonth)
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}
