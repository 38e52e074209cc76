package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/model"
)

// DemoUserID owns the demo dataset.
const DemoUserID = "demo"

// DemoTransactions is the November 2025 sample month.
func DemoTransactions() []model.Transaction {
	nov := func(d int) model.Date { return model.NewDate(2025, time.November, d) }
	amt := decimal.RequireFromString
	return []model.Transaction{
		{ID: "1", Description: "Salário", Amount: amt("5000"), Date: nov(5), Category: "Salário", Type: model.Income, Status: model.Paid},
		{ID: "2", Description: "Aluguel", Amount: amt("1200"), Date: nov(5), Category: "Moradia", Type: model.Expense, Status: model.Pending},
		{ID: "3", Description: "Supermercado", Amount: amt("450"), Date: nov(10), Category: "Alimentação", Type: model.Expense, Status: model.Paid},
		{ID: "4", Description: "Internet", Amount: amt("120"), Date: nov(15), Category: "Contas", Type: model.Expense, Status: model.Pending},
		{ID: "5", Description: "Freelance", Amount: amt("800"), Date: nov(15), Category: "Extra", Type: model.Income, Status: model.Pending},
		{ID: "6", Description: "Netflix", Amount: amt("55.90"), Date: nov(20), Category: "Lazer", Type: model.Expense, Status: model.Paid},
		{ID: "7", Description: "Academia", Amount: amt("90"), Date: nov(25), Category: "Saúde", Type: model.Expense, Status: model.Pending},
		{ID: "8", Description: "Combustível", Amount: amt("200"), Date: nov(28), Category: "Transporte", Type: model.Expense, Status: model.Pending},
	}
}

// Seed loads the demo dataset for the store's user, or DemoUserID when
// nobody is signed in.
func (s *Store) Seed(_ context.Context) {
	amt := decimal.RequireFromString
	base := time.Date(2025, time.November, 1, 9, 0, 0, 0, time.UTC)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.UserID == "" {
		s.session.UserID = DemoUserID
	}
	user := s.session.UserID

	for _, tx := range DemoTransactions() {
		tx.ID = fmt.Sprintf("tx-%s", tx.ID)
		tx.UserID = user
		s.transactions = append(s.transactions, tx)
	}

	budgets := []model.Budget{
		{Category: "Moradia", Icon: "home", IconBg: "bg-blue-100", Limit: amt("1500"), Spent: amt("1200"), Period: "Novembro", Color: "blue"},
		{Category: "Alimentação", Icon: "shopping_cart", IconBg: "bg-orange-100", Limit: amt("500"), Spent: amt("450"), Period: "Novembro", Color: "orange"},
		{Category: "Lazer", Icon: "sports_esports", IconBg: "bg-purple-100", Limit: amt("200"), Spent: amt("255.90"), Period: "Novembro", Color: "purple"},
		{Category: "Transporte", Icon: "directions_car", IconBg: "bg-green-100", Limit: amt("400"), Spent: amt("200"), Period: "Outubro", Color: "green"},
	}
	for i, b := range budgets {
		b.ID = fmt.Sprintf("budget-%d", i+1)
		b.UserID = user
		b.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		s.budgets = append(s.budgets, b)
	}

	accounts := []model.Account{
		{Name: "Carteira", Balance: amt("150"), Type: model.Wallet},
		{Name: "Banco X", Balance: amt("3200.50"), Type: model.Bank},
		{Name: "Tesouro Selic", Balance: amt("10000"), Type: model.Investment},
	}
	for i, a := range accounts {
		a.ID = fmt.Sprintf("account-%d", i+1)
		a.UserID = user
		s.accounts = append(s.accounts, a)
	}

	cards := []model.CreditCard{
		{Name: "Nubank", Limit: amt("3000"), CurrentInvoice: amt("812.40"), DueDate: model.NewDate(2025, time.December, 10)},
		{Name: "Inter", Limit: amt("1500"), CurrentInvoice: amt("230"), DueDate: model.NewDate(2025, time.November, 25)},
	}
	for i, c := range cards {
		c.ID = fmt.Sprintf("card-%d", i+1)
		c.UserID = user
		s.cards = append(s.cards, c)
	}

	categories := []model.Category{
		{Name: "Salário", Icon: "payments", Color: "green", Kind: model.KindIncome},
		{Name: "Extra", Icon: "work", Color: "teal", Kind: model.KindIncome},
		{Name: "Moradia", Icon: "home", Color: "blue", Kind: model.KindExpense},
		{Name: "Alimentação", Icon: "shopping_cart", Color: "orange", Kind: model.KindExpense},
		{Name: "Contas", Icon: "receipt", Color: "gray", Kind: model.KindExpense},
		{Name: "Lazer", Icon: "sports_esports", Color: "purple", Kind: model.KindExpense},
		{Name: "Saúde", Icon: "favorite", Color: "red", Kind: model.KindExpense},
		{Name: "Transporte", Icon: "directions_car", Color: "green", Kind: model.KindExpense},
	}
	for i, c := range categories {
		c.ID = fmt.Sprintf("category-%d", i+1)
		c.UserID = user
		s.categories = append(s.categories, c)
	}
}
