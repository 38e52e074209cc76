package events

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{12, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			if got := exponentialBackoff(tt.attempt); got != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"EOF", errors.New("unexpected EOF"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"validation", errors.New("invalid input"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestCircuitBreaker(t *testing.T) {
	c := &Client{exchangeName: "finboard", queueName: "finboard.records"}

	if c.isCircuitOpen() {
		t.Fatal("circuit should start closed")
	}

	for range maxFailures {
		c.recordFailure()
	}
	if !c.isCircuitOpen() {
		t.Fatal("circuit should open after max failures")
	}

	err := c.PublishRecordCreated(context.Background(), "accounts", "a1", "u1", nil)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("publish err = %v, want ErrCircuitOpen", err)
	}

	c.lastFailure = time.Now().Add(-openTimeout - time.Second)
	if c.isCircuitOpen() {
		t.Fatal("circuit should half-open after the timeout")
	}
	if atomic.LoadInt32(&c.state) != StateHalfOpen {
		t.Fatalf("state = %d, want half-open", c.state)
	}

	c.recordSuccess()
	if atomic.LoadInt32(&c.state) != StateClosed || atomic.LoadInt64(&c.failureCount) != 0 {
		t.Fatal("success should close the circuit and reset failures")
	}
}

func TestRecordCreatedJSON(t *testing.T) {
	msg, err := NewRecordCreated("accounts", "a1", "u1", map[string]any{"name": "Banco X"})
	if err != nil {
		t.Fatal(err)
	}
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	got, err := RecordCreatedFromJSON(body)
	if err != nil {
		t.Fatalf("RecordCreatedFromJSON: %v", err)
	}
	if got.Collection != "accounts" || got.RecordID != "a1" || string(got.Data) != `{"name":"Banco X"}` {
		t.Fatalf("got %+v", got)
	}

	if _, err := RecordCreatedFromJSON([]byte(`{"record_id":"x"}`)); err == nil {
		t.Fatal("message without collection should fail")
	}
}
