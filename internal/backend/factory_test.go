package backend

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/memstore"
	"github.com/theirongolddev/finboard/internal/rest"
	"github.com/theirongolddev/finboard/internal/store"
)

func TestOpenUnconfigured(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend.Type = config.BackendREST

	res, err := Open(context.Background(), cfg, auth.Session{}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = res.Close() }()

	if _, ok := res.Gateway.(gateway.Unconfigured); !ok {
		t.Fatalf("gateway = %T, want Unconfigured", res.Gateway)
	}
	_, err = res.Gateway.ListBudgets(context.Background())
	if !errors.Is(err, gateway.ErrConfigMissing) {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenBackends(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*config.Config)
		want func(gateway.Gateway) bool
	}{
		{"sqlite", func(c *config.Config) {
			c.Backend.SQLitePath = filepath.Join(t.TempDir(), "f.db")
		}, func(g gateway.Gateway) bool { _, ok := g.(*store.Store); return ok }},
		{"memory", func(c *config.Config) {
			c.Backend.Type = config.BackendMemory
			c.Backend.Seed = true
		}, func(g gateway.Gateway) bool { _, ok := g.(*memstore.Store); return ok }},
		{"rest", func(c *config.Config) {
			c.Backend.Type = config.BackendREST
			c.Backend.URL = "https://example.supabase.co"
			c.Backend.AnonKey = "anon"
		}, func(g gateway.Gateway) bool { _, ok := g.(*rest.Client); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mut(&cfg)

			res, err := Open(context.Background(), cfg, auth.Local("u1"), nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer func() { _ = res.Close() }()

			if !tt.want(res.Gateway) {
				t.Fatalf("gateway = %T", res.Gateway)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend.Type = "mongo"

	res, err := Open(context.Background(), cfg, auth.Session{}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := res.Gateway.(gateway.Unconfigured); !ok {
		t.Fatalf("unknown backend should be unconfigured, got %T", res.Gateway)
	}
}
