package tui

import (
	"testing"

	"github.com/theirongolddev/finboard/internal/config"
)

func TestApplySetup(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := NewSetupValues(cfg)
	vals.Backend = config.BackendPostgres
	vals.DatabaseURL = "  postgres://localhost/finboard  "
	vals.Currency = "US$"
	vals.Theme = "no-such-theme"
	vals.AutoRefresh = true

	ApplySetup(&cfg, *vals)

	if cfg.Backend.Type != config.BackendPostgres {
		t.Fatalf("backend = %q", cfg.Backend.Type)
	}
	if cfg.Backend.DatabaseURL != "postgres://localhost/finboard" {
		t.Fatalf("database url = %q", cfg.Backend.DatabaseURL)
	}
	if cfg.General.Currency != "US$" {
		t.Fatalf("currency = %q", cfg.General.Currency)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("unknown theme should keep the old one, got %q", cfg.Appearance.Theme)
	}
	if !cfg.TUI.AutoRefresh {
		t.Fatal("auto refresh not applied")
	}
	if cfg.General.UserID == "" {
		t.Fatal("a local backend should get a user id")
	}
}

func TestApplySetupKeepsUserID(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.UserID = "fixed"
	ApplySetup(&cfg, *NewSetupValues(cfg))
	if cfg.General.UserID != "fixed" {
		t.Fatalf("user id changed to %q", cfg.General.UserID)
	}
}

func TestSetupRequiredWhen(t *testing.T) {
	on := requiredWhen(func() bool { return true }, "needed")
	off := requiredWhen(func() bool { return false }, "needed")
	if on("  ") == nil {
		t.Fatal("blank value should fail when active")
	}
	if on("x") != nil || off("") != nil {
		t.Fatal("unexpected error")
	}
}
