package cmd

import (
	"fmt"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Month totals, balances, cards and budgets",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	anchor, err := anchorMonth()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	ds, _, err := loadData(ctx)
	if err != nil {
		return err
	}

	month := pipeline.InMonth(ds.Transactions, anchor)
	totals := pipeline.TotalsByType(month)
	prev := pipeline.TotalsByType(pipeline.InMonth(ds.Transactions, anchor.AddDate(0, -1, 0)))
	accounts := pipeline.AccountTotals(ds.Accounts)
	cards := pipeline.CardTotals(ds.Cards, anchor)
	budgets := pipeline.BudgetTotals(ds.Budgets)
	pending := pipeline.FilterTransactions(month, pipeline.TxFilter{Status: string(model.Pending)})

	fmt.Println()
	fmt.Println(cli.RenderTitle("FINBOARD  " + cli.FormatMonth(anchor)))
	fmt.Println()

	rows := [][]string{
		{"Balance", cli.FormatMoney(totals.Balance) + "  " + cli.Muted("("+cli.FormatDelta(totals.Balance, prev.Balance)+" vs prev)")},
		{"Income", cli.Amount(cli.FormatMoney(totals.Income), model.Income)},
		{"Expense", cli.Amount(cli.FormatMoney(totals.Expense), model.Expense)},
		{"Transactions", fmt.Sprintf("%d (%d pending)", len(month), len(pending))},
		{"---"},
		{"Accounts", fmt.Sprintf("%s  (%d)", cli.FormatMoney(accounts.Total), accounts.Count)},
	}
	for _, typ := range model.AccountTypes {
		if v, ok := accounts.ByType[typ]; ok {
			rows = append(rows, []string{"  " + string(typ), cli.FormatMoney(v)})
		}
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Card limit", cli.FormatMoney(cards.Limit)},
		[]string{"Open invoices", cli.FormatMoney(cards.OpenInvoices)},
		[]string{"Available", cli.FormatMoney(cards.Available)},
	)
	if !cards.NextDue.IsZero() {
		rows = append(rows, []string{"Next due", cards.NextDueCard + " " + cli.FormatDate(cards.NextDue)})
	}
	exceeded := fmt.Sprintf("%d", budgets.Exceeded)
	if budgets.Exceeded > 0 {
		exceeded = cli.Warn(exceeded)
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Budgeted", cli.FormatMoney(budgets.Limit)},
		[]string{"Spent", cli.FormatMoney(budgets.Spent)},
		[]string{"Remaining", cli.FormatMoney(budgets.Remaining)},
		[]string{"Exceeded", exceeded},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	return nil
}
