// Package config loads and saves finboard settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Backend types.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendREST     = "rest"
	BackendMemory   = "memory"
)

// Config holds all finboard configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Backend    BackendConfig    `toml:"backend"`
	Budgets    BudgetsConfig    `toml:"budgets"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
	Events     EventsConfig     `toml:"events"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency"`
	// UserID owns records on the local backends (sqlite, postgres, memory).
	UserID string `toml:"user_id,omitempty"`
}

// BackendConfig selects and configures the collection store.
type BackendConfig struct {
	Type        string `toml:"type"`
	URL         string `toml:"url,omitempty"`
	AnonKey     string `toml:"anon_key,omitempty"`
	DatabaseURL string `toml:"database_url,omitempty"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	Seed        bool   `toml:"seed,omitempty"`
}

// BudgetsConfig holds budget view settings.
type BudgetsConfig struct {
	// CurrentPeriod overrides the label the "current" filter matches.
	// Empty means the anchor month's name.
	CurrentPeriod string `toml:"current_period,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard refresh settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// EventsConfig holds the optional AMQP event bus settings.
type EventsConfig struct {
	AMQPURL  string `toml:"amqp_url,omitempty"`
	Exchange string `toml:"exchange"`
	Queue    string `toml:"queue"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "R$",
		},
		Backend: BackendConfig{
			Type: BackendSQLite,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			RefreshIntervalSec: 30,
		},
		Events: EventsConfig{
			Exchange: "finboard",
			Queue:    "finboard.records",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finboard")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory (SQLite file, daemon state).
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "finboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "finboard")
}

// DefaultSQLitePath is where the sqlite backend keeps its file.
func DefaultSQLitePath() string {
	return filepath.Join(DataDir(), "finboard.db")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides. A .env file in the working directory is
// loaded first; variables already set in the environment win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv overrides cfg from FINBOARD_* and related environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("FINBOARD_BACKEND"); v != "" {
		cfg.Backend.Type = v
	}
	if v := os.Getenv("FINBOARD_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("FINBOARD_ANON_KEY"); v != "" {
		cfg.Backend.AnonKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Backend.DatabaseURL = v
	}
	if v := os.Getenv("FINBOARD_SQLITE_PATH"); v != "" {
		cfg.Backend.SQLitePath = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.Events.AMQPURL = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Configured reports whether the selected backend has the settings it needs
// to be reached. An unconfigured backend is not an error: views fall back to
// empty data with a "configuration missing" message.
func (c Config) Configured() bool {
	switch c.Backend.Type {
	case BackendREST:
		return c.Backend.URL != "" && c.Backend.AnonKey != ""
	case BackendPostgres:
		return c.Backend.DatabaseURL != ""
	case BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Backend.Type {
	case BackendSQLite, BackendPostgres, BackendREST, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("backend.type %q is not one of sqlite, postgres, rest, memory", c.Backend.Type))
	}
	if c.Backend.URL != "" && !strings.HasPrefix(c.Backend.URL, "http://") && !strings.HasPrefix(c.Backend.URL, "https://") {
		errs = append(errs, fmt.Errorf("backend.url %q must start with http:// or https://", c.Backend.URL))
	}
	if c.TUI.RefreshIntervalSec != 0 && c.TUI.RefreshIntervalSec < 10 {
		errs = append(errs, fmt.Errorf("tui.refresh_interval_sec must be at least 10, got %d", c.TUI.RefreshIntervalSec))
	}
	if c.Events.AMQPURL != "" && (c.Events.Exchange == "" || c.Events.Queue == "") {
		errs = append(errs, errors.New("events.exchange and events.queue are required when events.amqp_url is set"))
	}

	return errors.Join(errs...)
}

// SQLitePath returns the configured SQLite file or the default location.
func (c Config) SQLitePath() string {
	if c.Backend.SQLitePath != "" {
		return c.Backend.SQLitePath
	}
	return DefaultSQLitePath()
}
