package gateway

import (
	"context"

	"github.com/theirongolddev/finboard/internal/model"
)

// Unconfigured is the gateway used when the selected backend lacks its
// settings. Lists return empty data and every call returns ErrConfigMissing.
type Unconfigured struct{}

var _ Gateway = Unconfigured{}

func (Unconfigured) ListTransactions(context.Context) ([]model.Transaction, error) {
	return []model.Transaction{}, ErrConfigMissing
}

func (Unconfigured) ListBudgets(context.Context) ([]model.Budget, error) {
	return []model.Budget{}, ErrConfigMissing
}

func (Unconfigured) ListAccounts(context.Context) ([]model.Account, error) {
	return []model.Account{}, ErrConfigMissing
}

func (Unconfigured) ListCards(context.Context) ([]model.CreditCard, error) {
	return []model.CreditCard{}, ErrConfigMissing
}

func (Unconfigured) ListCategories(context.Context, model.CategoryKind) ([]model.Category, error) {
	return []model.Category{}, ErrConfigMissing
}

func (Unconfigured) CreateTransaction(context.Context, model.Transaction) (model.Transaction, error) {
	return model.Transaction{}, ErrConfigMissing
}

func (Unconfigured) CreateBudget(context.Context, model.Budget) (model.Budget, error) {
	return model.Budget{}, ErrConfigMissing
}

func (Unconfigured) CreateAccount(context.Context, model.Account) (model.Account, error) {
	return model.Account{}, ErrConfigMissing
}

func (Unconfigured) CreateCard(context.Context, model.CreditCard) (model.CreditCard, error) {
	return model.CreditCard{}, ErrConfigMissing
}

func (Unconfigured) CreateCategory(context.Context, model.Category) (model.Category, error) {
	return model.Category{}, ErrConfigMissing
}

func (Unconfigured) Probe(context.Context) (int, error) {
	return 0, ErrConfigMissing
}
