// Package store is the SQL backend for the collection gateway. The same
// queries run on SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq); the
// schema is managed by golang-migrate.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"  // register postgres driver
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/log"
)

// Dialect selects the SQL driver.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Options configures Open.
type Options struct {
	Dialect Dialect
	// DSN is a file path for SQLite and a connection URL for Postgres.
	DSN     string
	Session auth.Session
	Logger  *log.Logger
}

// Store reads and writes the signed-in user's records.
type Store struct {
	db      *sql.DB
	dialect Dialect
	session auth.Session
	logger  *log.Logger
	now     func() time.Time
}

var _ gateway.Gateway = (*Store)(nil)

// Open migrates the schema and opens the database.
func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentStore)

	var (
		db  *sql.DB
		err error
	)
	switch opts.Dialect {
	case SQLite:
		if err := os.MkdirAll(filepath.Dir(opts.DSN), 0o750); err != nil {
			return nil, fmt.Errorf("store: creating data dir: %w", err)
		}
		if err := RunMigrations(opts.Dialect, opts.DSN); err != nil {
			return nil, err
		}
		db, err = sql.Open("sqlite", opts.DSN+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	case Postgres:
		if err := RunMigrations(opts.Dialect, opts.DSN); err != nil {
			return nil, err
		}
		db, err = sql.Open("postgres", opts.DSN)
	default:
		return nil, fmt.Errorf("store: unknown dialect %q", opts.Dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("store: opening %s db: %w", opts.Dialect, err)
	}

	logger.Debug("store opened", log.FieldBackend, string(opts.Dialect))

	return &Store{
		db:      db,
		dialect: opts.Dialect,
		session: opts.Session,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $1, $2... for Postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	return err
}

// owner returns the user id creates are stamped with.
func (s *Store) owner(op string) (string, error) {
	if !s.session.Present() {
		return "", gateway.Wrap(op, gateway.ErrNoSession)
	}
	return s.session.UserID, nil
}

func (s *Store) fail(ctx context.Context, op string, err error) error {
	s.logger.WarnContext(ctx, "store operation failed",
		log.NewFields().WithOperation(op).WithError(err, log.ErrorTypeDatabase).Args()...)
	return gateway.Wrap(op, err)
}

// Probe reads at most one transaction.
func (s *Store) Probe(ctx context.Context) (int, error) {
	rows, err := s.query(ctx, "SELECT id FROM transactions WHERE user_id = ? LIMIT 1", s.session.UserID)
	if err != nil {
		return 0, s.fail(ctx, gateway.OpProbe, err)
	}
	defer func() { _ = rows.Close() }()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, s.fail(ctx, gateway.OpProbe, err)
	}
	return n, nil
}

// timestampLayout sorts lexically in the same order as chronologically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *Store) stamp() string {
	return s.now().UTC().Format(timestampLayout)
}

// scanTime accepts the TEXT timestamps SQLite returns and the time.Time
// Postgres returns.
type scanTime struct{ t *time.Time }

func (st scanTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*st.t = time.Time{}
	case time.Time:
		*st.t = v.UTC()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("store: parsing timestamp %q: %w", v, err)
		}
		*st.t = parsed.UTC()
	case []byte:
		return st.Scan(string(v))
	default:
		return fmt.Errorf("store: cannot scan %T into time", src)
	}
	return nil
}
