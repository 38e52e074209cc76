// Package auth holds the signed-in session handle passed to gateways.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/theirongolddev/finboard/internal/config"
)

// Session identifies the user whose records are read and written.
type Session struct {
	UserID       string    `toml:"user_id"`
	Email        string    `toml:"email,omitempty"`
	AccessToken  string    `toml:"access_token,omitempty"`
	RefreshToken string    `toml:"refresh_token,omitempty"`
	ExpiresAt    time.Time `toml:"expires_at,omitempty"`
}

// Present reports whether the session carries a user.
func (s Session) Present() bool {
	return s.UserID != ""
}

// Expired reports whether a token-backed session has passed its expiry.
// Sessions without an expiry never expire.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Local returns a token-less session for the local backends.
func Local(userID string) Session {
	return Session{UserID: userID}
}

// NewUserID generates an id for a local user.
func NewUserID() string {
	return uuid.NewString()
}

// EnsureUserID fills cfg.General.UserID when empty and reports whether it
// changed, so the caller can persist it.
func EnsureUserID(cfg *config.Config) bool {
	if cfg.General.UserID != "" {
		return false
	}
	cfg.General.UserID = NewUserID()
	return true
}

// Path returns the session file location.
func Path() string {
	return filepath.Join(config.Dir(), "session.toml")
}

// Load reads the stored session. A missing file is an empty session.
func Load() (Session, error) {
	var s Session
	data, err := os.ReadFile(Path())
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("reading session: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parsing session: %w", err)
	}
	return s, nil
}

// Save writes the session with owner-only permissions.
func Save(s Session) error {
	if err := os.MkdirAll(config.Dir(), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(s)
}

// Clear removes the stored session.
func Clear() error {
	err := os.Remove(Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Resolve picks the session for the configured backend: the stored sign-in
// for the REST backend, a local session from cfg.General.UserID otherwise.
func Resolve(cfg config.Config) (Session, error) {
	if cfg.Backend.Type == config.BackendREST {
		return Load()
	}
	return Local(cfg.General.UserID), nil
}
