// Package backend builds the gateway selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/events"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/log"
	"github.com/theirongolddev/finboard/internal/memstore"
	"github.com/theirongolddev/finboard/internal/rest"
	"github.com/theirongolddev/finboard/internal/store"
)

// Result is an opened gateway and the function that releases it.
type Result struct {
	Gateway gateway.Gateway
	// Name is the backend type actually in use.
	Name    string
	Cleanup func() error
}

// Close runs Cleanup if there is one.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Open builds the gateway for cfg acting as sess. A backend missing its
// settings yields the unconfigured gateway rather than an error. When
// events.amqp_url is set the gateway is wrapped so creates are published;
// a broker that cannot be reached is logged and skipped.
func Open(ctx context.Context, cfg config.Config, sess auth.Session, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentGateway)

	if !cfg.Configured() {
		logger.WarnContext(ctx, "backend not configured",
			log.FieldBackend, cfg.Backend.Type,
			log.FieldErrorType, log.ErrorTypeConfiguration)
		return &Result{Gateway: gateway.Unconfigured{}, Name: cfg.Backend.Type}, nil
	}

	res, err := open(ctx, cfg, sess, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Events.AMQPURL != "" {
		client, err := events.NewClient(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.Queue, logger)
		if err != nil {
			logger.WarnContext(ctx, "event bus unavailable, continuing without events", log.FieldError, err)
		} else {
			res.Gateway = gateway.WithEvents(res.Gateway, client, logger)
			inner := res.Cleanup
			res.Cleanup = func() error {
				_ = client.Close()
				if inner != nil {
					return inner()
				}
				return nil
			}
		}
	}

	logger.DebugContext(ctx, "backend ready", log.FieldBackend, res.Name, log.FieldUserID, sess.UserID)
	return res, nil
}

func open(ctx context.Context, cfg config.Config, sess auth.Session, logger *log.Logger) (*Result, error) {
	switch cfg.Backend.Type {
	case config.BackendSQLite:
		s, err := store.Open(store.Options{
			Dialect: store.SQLite,
			DSN:     cfg.SQLitePath(),
			Session: sess,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("opening sqlite backend: %w", err)
		}
		return &Result{Gateway: s, Name: config.BackendSQLite, Cleanup: s.Close}, nil

	case config.BackendPostgres:
		s, err := store.Open(store.Options{
			Dialect: store.Postgres,
			DSN:     cfg.Backend.DatabaseURL,
			Session: sess,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("opening postgres backend: %w", err)
		}
		return &Result{Gateway: s, Name: config.BackendPostgres, Cleanup: s.Close}, nil

	case config.BackendREST:
		c := rest.NewClient(cfg.Backend.URL, cfg.Backend.AnonKey, sess, logger)
		if c == nil {
			return &Result{Gateway: gateway.Unconfigured{}, Name: config.BackendREST}, nil
		}
		return &Result{Gateway: c, Name: config.BackendREST}, nil

	case config.BackendMemory:
		m := memstore.New(sess)
		if cfg.Backend.Seed {
			m.Seed(ctx)
		}
		return &Result{Gateway: m, Name: config.BackendMemory}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Backend.Type)
	}
}
