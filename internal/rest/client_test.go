package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc, sess auth.Session) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "anon-key", sess, nil)
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	return c
}

func TestNewClientRequiresSettings(t *testing.T) {
	if NewClient("", "k", auth.Session{}, nil) != nil {
		t.Fatal("empty url should give nil client")
	}
	if NewClient("https://x.supabase.co", " ", auth.Session{}, nil) != nil {
		t.Fatal("empty key should give nil client")
	}
}

func TestListTransactionsRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/transactions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("order") != "date.asc" || q.Get("select") != "*" || q.Get("user_id") != "eq.u1" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("apikey = %q", r.Header.Get("apikey"))
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		_, _ = io.WriteString(w, `[
			{"id":"1","user_id":"u1","description":"Salário","amount":5000,"date":"2025-11-05","category":"Salário","type":"income","status":"paid"},
			{"id":"6","user_id":"u1","description":"Netflix","amount":55.9,"date":"2025-11-20","category":"Lazer","type":"expense","status":"paid"}
		]`)
	}, auth.Session{UserID: "u1", AccessToken: "tok"})

	txs, err := c.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions", len(txs))
	}
	if !txs[1].Amount.Equal(decimal.RequireFromString("55.90")) || txs[1].Date.Day() != 20 {
		t.Fatalf("tx = %+v", txs[1])
	}
}

func TestListCategoriesKindFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("kind"); got != "eq.income" {
			t.Errorf("kind = %q", got)
		}
		_, _ = io.WriteString(w, `[]`)
	}, auth.Session{})

	cats, err := c.ListCategories(context.Background(), model.KindIncome)
	if err != nil {
		t.Fatal(err)
	}
	if cats == nil {
		t.Fatal("empty result should be a non-nil slice")
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, ErrUnauthorized, ""},
		{"forbidden", http.StatusForbidden, `{}`, ErrUnauthorized, ""},
		{"rate limited", http.StatusTooManyRequests, `{}`, ErrRateLimited, ""},
		{"postgrest message", http.StatusBadRequest, `{"code":"PGRST204","message":"column missing"}`, nil, "rest: column missing"},
		{"no body", http.StatusInternalServerError, ``, nil, "rest: unexpected status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, auth.Session{})

			_, err := c.ListAccounts(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			var ge *gateway.Error
			if !errors.As(err, &ge) || ge.Op != gateway.OpListAccounts {
				t.Fatalf("err = %v, want *gateway.Error for list accounts", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && gateway.Info(err).Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", gateway.Info(err).Message, tt.wantMsg)
			}
		})
	}
}

func TestCreateAccountPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("Prefer") != "return=representation" {
			t.Errorf("prefer = %q", r.Header.Get("Prefer"))
		}
		var rows []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("rows = %v", rows)
			return
		}
		row := rows[0]
		if row["user_id"] != "u1" || row["name"] != "Banco X" || row["type"] != "bank" {
			t.Errorf("row = %v", row)
		}
		if row["balance"] != float64(500) {
			t.Errorf("balance = %#v, want number 500", row["balance"])
		}
		if _, ok := row["id"]; ok {
			t.Error("id must not be sent")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[{"id":"a1","user_id":"u1","name":"Banco X","balance":500,"type":"bank"}]`)
	}, auth.Session{UserID: "u1", AccessToken: "tok"})

	acct, err := c.CreateAccount(context.Background(), model.Account{
		Name:    "Banco X",
		Balance: decimal.NewFromInt(500),
		Type:    model.Bank,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acct.ID != "a1" {
		t.Fatalf("id = %q", acct.ID)
	}
}

func TestCreateWithoutSession(t *testing.T) {
	c := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	}, auth.Session{})

	_, err := c.CreateTransaction(context.Background(), model.Transaction{})
	if !errors.Is(err, gateway.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestProbe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "1" {
			t.Errorf("limit = %q", r.URL.Query().Get("limit"))
		}
		_, _ = io.WriteString(w, `[{"id":"1"}]`)
	}, auth.Session{})

	n, err := c.Probe(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("Probe = %d, %v", n, err)
	}
}

func TestSignInAndOut(t *testing.T) {
	var loggedOut bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			if r.URL.Query().Get("grant_type") != "password" {
				t.Errorf("grant_type = %q", r.URL.Query().Get("grant_type"))
			}
			_, _ = io.WriteString(w, `{"access_token":"at","refresh_token":"rt","expires_in":3600,"user":{"id":"u9","email":"ana@example.com"}}`)
		case "/auth/v1/logout":
			if r.Header.Get("Authorization") != "Bearer at" {
				t.Errorf("logout auth = %q", r.Header.Get("Authorization"))
			}
			loggedOut = true
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, auth.Session{})

	sess, err := c.SignIn(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sess.UserID != "u9" || sess.AccessToken != "at" || sess.ExpiresAt.IsZero() {
		t.Fatalf("session = %+v", sess)
	}
	if err := c.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if !loggedOut || c.Session().Present() {
		t.Fatal("sign out did not clear the session")
	}
}

func TestSignInBadCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
	}, auth.Session{})

	_, err := c.SignIn(context.Background(), "a@b.c", "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "Invalid login credentials" || apiErr.Code != "invalid_grant" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestSignUpPendingConfirmation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if data, ok := body["data"].(map[string]any); !ok || data["full_name"] != "Ana" {
			t.Errorf("metadata = %v", body["data"])
		}
		_, _ = io.WriteString(w, `{"id":"u2","email":"ana@example.com"}`)
	}, auth.Session{})

	_, err := c.SignUp(context.Background(), "ana@example.com", "secret", map[string]string{"full_name": "Ana"})
	if !errors.Is(err, ErrConfirmationPending) {
		t.Fatalf("err = %v, want ErrConfirmationPending", err)
	}
}
