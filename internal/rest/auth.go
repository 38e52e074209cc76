package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/log"
)

// ErrConfirmationPending is returned by SignUp when the project requires the
// address to be confirmed before a session is issued.
var ErrConfirmationPending = errors.New("rest: check your inbox to confirm the address")

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	q := url.Values{}
	q.Set("grant_type", "password")
	body, err := c.post(ctx, "/auth/v1/token", q, map[string]string{
		"email":    strings.TrimSpace(email),
		"password": password,
	}, nil)
	if err != nil {
		c.logger.WarnContext(ctx, "sign in failed",
			log.NewFields().WithOperation(log.OpSignIn).WithError(err, log.ErrorTypeAuth).Args()...)
		return auth.Session{}, err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return auth.Session{}, fmt.Errorf("rest: parsing token: %w", err)
	}
	sess := tok.session(time.Now())
	c.session = sess
	return sess, nil
}

// SignUp registers a new user. metadata is stored with the user record.
// When the project confirms by email no session is issued and
// ErrConfirmationPending is returned.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]string) (auth.Session, error) {
	payload := map[string]any{
		"email":    strings.TrimSpace(email),
		"password": password,
	}
	if len(metadata) > 0 {
		payload["data"] = metadata
	}
	body, err := c.post(ctx, "/auth/v1/signup", nil, payload, nil)
	if err != nil {
		return auth.Session{}, err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return auth.Session{}, fmt.Errorf("rest: parsing sign up: %w", err)
	}
	if tok.AccessToken == "" {
		return auth.Session{}, ErrConfirmationPending
	}
	sess := tok.session(time.Now())
	c.session = sess
	return sess, nil
}

// SignOut revokes the current session token.
func (c *Client) SignOut(ctx context.Context) error {
	if c.session.AccessToken == "" {
		return nil
	}
	if _, err := c.post(ctx, "/auth/v1/logout", nil, nil, nil); err != nil {
		return err
	}
	c.session = auth.Session{}
	return nil
}

func (t tokenResponse) session(now time.Time) auth.Session {
	s := auth.Session{
		UserID:       t.User.ID,
		Email:        t.User.Email,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}
	if t.ExpiresIn > 0 {
		s.ExpiresAt = now.Add(time.Duration(t.ExpiresIn) * time.Second).UTC()
	}
	return s
}
