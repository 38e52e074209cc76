package rest

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/model"
)

// Insert payloads. Server-owned columns (id, created_at) are left out so the
// table defaults apply.

type transactionInsert struct {
	UserID      string         `json:"user_id"`
	Description string         `json:"description"`
	Amount      json.Number    `json:"amount"`
	Date        model.Date     `json:"date"`
	Category    string         `json:"category"`
	Type        model.TxType   `json:"type"`
	Status      model.TxStatus `json:"status"`
}

type budgetInsert struct {
	UserID   string      `json:"user_id"`
	Category string      `json:"category"`
	Icon     string      `json:"icon"`
	IconBg   string      `json:"iconBg"`
	Period   string      `json:"period"`
	Spent    json.Number `json:"spent"`
	Limit    json.Number `json:"limit"`
	Color    string      `json:"color"`
}

type accountInsert struct {
	UserID  string            `json:"user_id"`
	Name    string            `json:"name"`
	Balance json.Number       `json:"balance"`
	Type    model.AccountType `json:"type"`
}

type cardInsert struct {
	UserID         string      `json:"user_id"`
	Name           string      `json:"name"`
	Limit          json.Number `json:"limit"`
	CurrentInvoice json.Number `json:"currentInvoice"`
	DueDate        model.Date  `json:"dueDate"`
}

type categoryInsert struct {
	UserID string             `json:"user_id"`
	Name   string             `json:"name"`
	Icon   string             `json:"icon"`
	Color  string             `json:"color"`
	Kind   model.CategoryKind `json:"kind"`
}

// number renders d as a bare JSON number rounded to cents.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.Round(2).String())
}

// tokenResponse is returned by the password grant and by sign-up when email
// confirmation is off.
type tokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         authUser `json:"user"`
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
