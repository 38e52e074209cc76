// Package gateway is the collection access layer. Every backend (SQL store,
// REST service, in-memory demo) satisfies Gateway, and every failure is
// reported as an *Error that views can render as a message.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
)

// Gateway reads and creates records in the five collections.
type Gateway interface {
	pipeline.Reader

	CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error)
	CreateBudget(ctx context.Context, b model.Budget) (model.Budget, error)
	CreateAccount(ctx context.Context, a model.Account) (model.Account, error)
	CreateCard(ctx context.Context, c model.CreditCard) (model.CreditCard, error)
	CreateCategory(ctx context.Context, c model.Category) (model.Category, error)

	// Probe reads at most one transaction and returns how many rows came back.
	Probe(ctx context.Context) (int, error)
}

// Error is the failure value every gateway operation returns.
type Error struct {
	Op      string // e.g. "list transactions"
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel errors by message so wrapped copies still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Message == e.Message
}

var (
	// ErrConfigMissing is returned by every call on an unconfigured gateway.
	ErrConfigMissing = &Error{Message: "configuration missing"}
	// ErrNoSession is returned by creates when nobody is signed in.
	ErrNoSession = &Error{Message: "not signed in"}
)

// ErrorInfo is the serializable {message} view of an error.
type ErrorInfo struct {
	Message string `json:"message"`
}

// Info converts err into its message view. Nil stays nil.
func Info(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return &ErrorInfo{Message: ge.Message}
	}
	return &ErrorInfo{Message: err.Error()}
}

// Result pairs data with an optional error, the {data, error} shape the
// daemon API serves.
type Result[T any] struct {
	Data  T          `json:"data"`
	Error *ErrorInfo `json:"error"`
}

// NewResult builds a Result from a (value, error) pair.
func NewResult[T any](data T, err error) Result[T] {
	return Result[T]{Data: data, Error: Info(err)}
}

// Wrap turns a backend error into an *Error tagged with op. Errors that are
// already *Error keep their message.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		if ge.Op != "" {
			return err
		}
		return &Error{Op: op, Message: ge.Message, Err: err}
	}
	return &Error{Op: op, Message: err.Error(), Err: err}
}

// Invalid reports a create payload that failed validation.
func Invalid(op, format string, args ...any) error {
	return &Error{Op: op, Message: fmt.Sprintf(format, args...)}
}

// Operation names used in errors and logs.
const (
	OpListTransactions  = "list transactions"
	OpListBudgets       = "list budgets"
	OpListAccounts      = "list accounts"
	OpListCards         = "list cards"
	OpListCategories    = "list categories"
	OpCreateTransaction = "create transaction"
	OpCreateBudget      = "create budget"
	OpCreateAccount     = "create account"
	OpCreateCard        = "create card"
	OpCreateCategory    = "create category"
	OpProbe             = "probe"
)

// ValidateTransaction checks a transaction before insert.
func ValidateTransaction(tx model.Transaction) error {
	const op = OpCreateTransaction
	if strings.TrimSpace(tx.Description) == "" {
		return Invalid(op, "description is required")
	}
	if tx.Amount.IsNegative() {
		return Invalid(op, "amount must not be negative")
	}
	if tx.Date.IsZero() {
		return Invalid(op, "date is required")
	}
	if !tx.Type.Valid() {
		return Invalid(op, "invalid type %q", tx.Type)
	}
	if !tx.Status.Valid() {
		return Invalid(op, "invalid status %q", tx.Status)
	}
	return nil
}

// ValidateBudget checks a budget before insert.
func ValidateBudget(b model.Budget) error {
	const op = OpCreateBudget
	if strings.TrimSpace(b.Category) == "" {
		return Invalid(op, "category is required")
	}
	if b.Limit.IsNegative() {
		return Invalid(op, "limit must not be negative")
	}
	return nil
}

// ValidateAccount checks an account before insert.
func ValidateAccount(a model.Account) error {
	const op = OpCreateAccount
	if strings.TrimSpace(a.Name) == "" {
		return Invalid(op, "name is required")
	}
	if !a.Type.Valid() {
		return Invalid(op, "invalid type %q", a.Type)
	}
	return nil
}

// ValidateCard checks a credit card before insert.
func ValidateCard(c model.CreditCard) error {
	const op = OpCreateCard
	if strings.TrimSpace(c.Name) == "" {
		return Invalid(op, "name is required")
	}
	if c.Limit.IsNegative() {
		return Invalid(op, "limit must not be negative")
	}
	return nil
}

// ValidateCategory checks a category before insert.
func ValidateCategory(c model.Category) error {
	const op = OpCreateCategory
	if strings.TrimSpace(c.Name) == "" {
		return Invalid(op, "name is required")
	}
	if c.Kind != "" && !c.Kind.Valid() {
		return Invalid(op, "invalid kind %q", c.Kind)
	}
	return nil
}
