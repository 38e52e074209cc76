// Package rest is a gateway backend for PostgREST-style backend-as-a-service
// projects: tables under /rest/v1 and password auth under /auth/v1.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/log"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	userAgent      = "finboard/1.0"
)

var (
	// ErrUnauthorized indicates the anon key or session token was rejected.
	ErrUnauthorized = errors.New("rest: unauthorized (sign in again)")
	// ErrRateLimited indicates the service rate limit was hit.
	ErrRateLimited = errors.New("rest: rate limited")
)

// APIError is a non-2xx response carrying the service's message.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return "rest: " + e.Message
}

// Client talks to one project.
type Client struct {
	baseURL string
	anonKey string
	session auth.Session
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a client for the project at baseURL.
// Returns nil if the URL or key is empty.
func NewClient(baseURL, anonKey string, sess auth.Session, logger *log.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	anonKey = strings.TrimSpace(anonKey)
	if baseURL == "" || anonKey == "" {
		return nil
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		session: sess,
		http:    &http.Client{},
		logger:  logger.WithComponent(log.ComponentREST),
	}
}

// Session returns the session the client sends requests as.
func (c *Client) Session() auth.Session {
	return c.session
}

// get performs an authenticated GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, q, nil, nil)
}

// post sends body as JSON.
func (c *Client) post(ctx context.Context, path string, q url.Values, body any, header http.Header) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, q, body, header)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any, header http.Header) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("rest: encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("rest: creating request: %w", err)
	}

	token := c.anonKey
	if c.session.AccessToken != "" {
		token = c.session.AccessToken
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	//nolint:gosec // URL is built from the configured project URL
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rest: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "request",
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("rest: reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// parseAPIError reads the message out of the error shapes the table and auth
// endpoints use.
func parseAPIError(status int, body []byte) error {
	var raw struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		Code             any    `json:"code"`
		ErrorCode        string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &raw)

	e := &APIError{StatusCode: status}
	switch {
	case raw.Message != "":
		e.Message = raw.Message
	case raw.ErrorDescription != "":
		e.Message = raw.ErrorDescription
	case raw.Msg != "":
		e.Message = raw.Msg
	default:
		e.Message = fmt.Sprintf("unexpected status %d", status)
	}
	switch v := raw.Code.(type) {
	case string:
		e.Code = v
	case float64:
		e.Code = fmt.Sprintf("%.0f", v)
	}
	if e.Code == "" {
		e.Code = raw.ErrorCode
	}
	return e
}
