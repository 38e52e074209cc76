package cmd

import (
	"fmt"
	"net/url"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency: %s\n", cfg.General.Currency)
	if cfg.General.UserID != "" {
		fmt.Printf("    User ID:  %s\n", cfg.General.UserID)
	}
	fmt.Println()

	fmt.Println("  [Backend]")
	fmt.Printf("    Type:       %s\n", cfg.Backend.Type)
	switch cfg.Backend.Type {
	case config.BackendREST:
		fmt.Printf("    URL:        %s\n", orNotSet(cfg.Backend.URL))
		if cfg.Backend.AnonKey != "" {
			fmt.Printf("    Anon key:   %s\n", maskAPIKey(cfg.Backend.AnonKey))
		} else {
			fmt.Println("    Anon key:   not configured")
		}
		if sess, err := auth.Load(); err == nil && sess.Present() {
			fmt.Printf("    Signed in:  %s\n", sess.Email)
		} else {
			fmt.Println("    Signed in:  no (run `finboard login`)")
		}
	case config.BackendPostgres:
		fmt.Printf("    Database:   %s\n", maskDSN(cfg.Backend.DatabaseURL))
	case config.BackendSQLite:
		fmt.Printf("    File:       %s\n", cfg.SQLitePath())
	case config.BackendMemory:
		fmt.Printf("    Demo data:  %v\n", cfg.Backend.Seed)
	}
	fmt.Println()

	fmt.Println("  [Budgets]")
	fmt.Printf("    Current period: %s\n", orDefault(cfg.Budgets.CurrentPeriod, "month name"))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Println("  [Events]")
	if cfg.Events.AMQPURL != "" {
		fmt.Printf("    Broker:   %s\n", maskDSN(cfg.Events.AMQPURL))
		fmt.Printf("    Exchange: %s\n", cfg.Events.Exchange)
		fmt.Printf("    Queue:    %s\n", cfg.Events.Queue)
	} else {
		fmt.Println("    Broker: not configured")
	}
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		fmt.Printf("  Problems:\n    %v\n\n", err)
	}
	if !cfg.Configured() {
		fmt.Printf("  The %s backend is missing settings.\n", cfg.Backend.Type)
	}
	fmt.Println("  Run `finboard setup` to reconfigure.")
	return nil
}

func orNotSet(s string) string {
	return orDefault(s, "not set")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}

// maskDSN hides the password in a connection URL.
func maskDSN(dsn string) string {
	if dsn == "" {
		return "not set"
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	return u.Redacted()
}
