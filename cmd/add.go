package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
	"github.com/theirongolddev/finboard/internal/tui"

	"github.com/spf13/cobra"
)

var (
	flagAddDesc        string
	flagAddAmount      string
	flagAddDate        string
	flagAddCategory    string
	flagAddType        string
	flagAddStatus      string
	flagAddInteractive bool

	flagAddName    string
	flagAddBalance string
	flagAddAccType string

	flagAddLimit   string
	flagAddInvoice string
	flagAddDueDay  int

	flagAddPeriod string
	flagAddSpent  string
	flagAddIcon   string
	flagAddColor  string
	flagAddKind   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a transaction, budget, account, card or category",
}

var addTransactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"tx"},
	Short:   "Record an income or expense",
	RunE:    runAddTransaction,
}

var addBudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Create a budget for a category and period",
	RunE:  runAddBudget,
}

var addAccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Create an account",
	RunE:  runAddAccount,
}

var addCardCmd = &cobra.Command{
	Use:   "card",
	Short: "Create a credit card",
	RunE:  runAddCard,
}

var addCategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Create a category",
	RunE:  runAddCategory,
}

func init() {
	f := addTransactionCmd.Flags()
	f.StringVar(&flagAddDesc, "desc", "", "Description")
	f.StringVar(&flagAddAmount, "amount", "", "Amount (1.234,56 or 1234.56)")
	f.StringVar(&flagAddDate, "date", "", "Date (YYYY-MM-DD, default today)")
	f.StringVar(&flagAddCategory, "category", "", "Category name")
	f.StringVar(&flagAddType, "type", string(model.Expense), "income or expense")
	f.StringVar(&flagAddStatus, "status", string(model.Paid), "paid or pending")
	f.BoolVarP(&flagAddInteractive, "interactive", "i", false, "Fill the fields in a form")

	f = addBudgetCmd.Flags()
	f.StringVar(&flagAddCategory, "category", "", "Category name")
	f.StringVar(&flagAddLimit, "limit", "", "Spending limit")
	f.StringVar(&flagAddSpent, "spent", "0", "Amount already spent")
	f.StringVar(&flagAddPeriod, "period", "", "Period label (default: current month name)")
	f.StringVar(&flagAddIcon, "icon", "", "Icon")
	f.StringVar(&flagAddColor, "color", "", "Color")

	f = addAccountCmd.Flags()
	f.StringVar(&flagAddName, "name", "", "Account name")
	f.StringVar(&flagAddBalance, "balance", "0", "Current balance (may be negative)")
	f.StringVar(&flagAddAccType, "type", string(model.Bank), "wallet, bank or investment")

	f = addCardCmd.Flags()
	f.StringVar(&flagAddName, "name", "", "Card name")
	f.StringVar(&flagAddLimit, "limit", "", "Credit limit")
	f.StringVar(&flagAddInvoice, "invoice", "0", "Open invoice amount")
	f.IntVar(&flagAddDueDay, "due-day", 0, "Day of month the invoice is due (1-31)")

	f = addCategoryCmd.Flags()
	f.StringVar(&flagAddName, "name", "", "Category name")
	f.StringVar(&flagAddKind, "kind", string(model.KindExpense), "expense or income")
	f.StringVar(&flagAddIcon, "icon", "", "Icon")
	f.StringVar(&flagAddColor, "color", "", "Color")

	addCmd.AddCommand(addTransactionCmd, addBudgetCmd, addAccountCmd, addCardCmd, addCategoryCmd)
	rootCmd.AddCommand(addCmd)
}

// withGateway opens the configured backend, runs fn and releases it.
func withGateway(fn func(ctx context.Context, gw gateway.Gateway) error) error {
	ctx, cancel := commandContext()
	defer cancel()

	res, _, _, err := openGateway(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	if err := fn(ctx, res.Gateway); err != nil {
		if errors.Is(err, gateway.ErrNoSession) {
			return fmt.Errorf("%w (run `finboard login` first)", err)
		}
		return err
	}
	return nil
}

func created(kind, name, id string) {
	fmt.Printf("  Created %s %q", kind, name)
	if id != "" {
		fmt.Printf(" (%s)", id)
	}
	fmt.Println()
}

func runAddTransaction(_ *cobra.Command, _ []string) error {
	return withGateway(func(ctx context.Context, gw gateway.Gateway) error {
		vals := tui.NewTransactionValues(time.Now())
		if flagAddInteractive {
			cats, err := gw.ListCategories(ctx, "")
			if err != nil && !errors.Is(err, gateway.ErrConfigMissing) {
				return err
			}
			if err := tui.NewTransactionForm(vals, cats).Run(); err != nil {
				return err
			}
		} else {
			vals.Description = flagAddDesc
			vals.Amount = flagAddAmount
			vals.Category = flagAddCategory
			vals.Type = flagAddType
			vals.Status = flagAddStatus
			if flagAddDate != "" {
				vals.Date = flagAddDate
			}
		}

		tx, err := vals.Transaction()
		if err != nil {
			return err
		}
		out, err := gw.CreateTransaction(ctx, tx)
		if err != nil {
			return err
		}
		created(string(out.Type), out.Description, out.ID)
		fmt.Printf("  %s on %s\n", cli.Amount(cli.FormatSignedMoney(out.Signed()), out.Type), cli.FormatDate(out.Date))
		return nil
	})
}

func runAddBudget(_ *cobra.Command, _ []string) error {
	period := strings.TrimSpace(flagAddPeriod)
	if period == "" {
		period = pipeline.PeriodLabel(time.Now())
	}
	b := model.Budget{
		Category: strings.TrimSpace(flagAddCategory),
		Limit:    model.ParseMagnitude(flagAddLimit),
		Spent:    model.ParseMagnitude(flagAddSpent),
		Period:   period,
		Icon:     flagAddIcon,
		Color:    flagAddColor,
	}
	return withGateway(func(ctx context.Context, gw gateway.Gateway) error {
		out, err := gw.CreateBudget(ctx, b)
		if err != nil {
			return err
		}
		created("budget", out.Category, out.ID)
		return nil
	})
}

func runAddAccount(_ *cobra.Command, _ []string) error {
	typ, err := model.ParseAccountType(flagAddAccType)
	if err != nil {
		return err
	}
	a := model.Account{
		Name:    strings.TrimSpace(flagAddName),
		Balance: model.ParseAmount(flagAddBalance),
		Type:    typ,
	}
	return withGateway(func(ctx context.Context, gw gateway.Gateway) error {
		out, err := gw.CreateAccount(ctx, a)
		if err != nil {
			return err
		}
		created(string(out.Type)+" account", out.Name, out.ID)
		return nil
	})
}

func runAddCard(_ *cobra.Command, _ []string) error {
	c := model.CreditCard{
		Name:           strings.TrimSpace(flagAddName),
		Limit:          model.ParseMagnitude(flagAddLimit),
		CurrentInvoice: model.ParseMagnitude(flagAddInvoice),
	}
	if flagAddDueDay != 0 {
		due, err := model.DueDateFromDay(flagAddDueDay, time.Now())
		if err != nil {
			return err
		}
		c.DueDate = due
	}
	return withGateway(func(ctx context.Context, gw gateway.Gateway) error {
		out, err := gw.CreateCard(ctx, c)
		if err != nil {
			return err
		}
		created("card", out.Name, out.ID)
		if !out.DueDate.IsZero() {
			fmt.Printf("  Next due date: %s\n", cli.FormatDate(out.DueDate))
		}
		return nil
	})
}

func runAddCategory(_ *cobra.Command, _ []string) error {
	kind, err := model.ParseCategoryKind(flagAddKind)
	if err != nil {
		return err
	}
	c := model.Category{
		Name:  strings.TrimSpace(flagAddName),
		Kind:  kind,
		Icon:  flagAddIcon,
		Color: flagAddColor,
	}
	return withGateway(func(ctx context.Context, gw gateway.Gateway) error {
		out, err := gw.CreateCategory(ctx, c)
		if err != nil {
			return err
		}
		created(string(out.Kind)+" category", out.Name, out.ID)
		return nil
	})
}
