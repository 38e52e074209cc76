package cmd

import (
	"fmt"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagTxStatus   string
	flagTxType     string
	flagTxCategory string
	flagTxSearch   string
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List the month's transactions",
	RunE:    runTransactions,
}

func init() {
	transactionsCmd.Flags().StringVar(&flagTxStatus, "status", model.FilterAll, "Filter by status (all, paid, pending)")
	transactionsCmd.Flags().StringVar(&flagTxType, "type", model.FilterAll, "Filter by type (all, income, expense)")
	transactionsCmd.Flags().StringVar(&flagTxCategory, "category", "", "Filter by category (exact, case-insensitive)")
	transactionsCmd.Flags().StringVarP(&flagTxSearch, "search", "s", "", "Substring match on description or category")
	rootCmd.AddCommand(transactionsCmd)
}

func validateTxFilters() error {
	if flagTxStatus != model.FilterAll {
		if _, err := model.ParseTxStatus(flagTxStatus); err != nil {
			return err
		}
	}
	if flagTxType != model.FilterAll {
		if _, err := model.ParseTxType(flagTxType); err != nil {
			return err
		}
	}
	return nil
}

func runTransactions(_ *cobra.Command, _ []string) error {
	if err := validateTxFilters(); err != nil {
		return err
	}
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

	month := pipeline.SelectDayOrMonth(nil, 0, ds.Transactions, anchor)
	txs := pipeline.FilterTransactions(month, pipeline.TxFilter{
		Status:   flagTxStatus,
		Type:     flagTxType,
		Category: flagTxCategory,
		Search:   flagTxSearch,
	})

	fmt.Println()
	fmt.Println(cli.RenderTitle("TRANSACTIONS  " + cli.FormatMonth(anchor)))
	fmt.Println()

	if len(txs) == 0 {
		fmt.Println("  No transactions match.")
		return nil
	}

	fmt.Print(renderTxTable(txs))

	totals := pipeline.TotalsByType(txs)
	fmt.Printf("\n  %d of %d · in %s · out %s · net %s\n",
		len(txs), len(month),
		cli.Amount(cli.FormatMoney(totals.Income), model.Income),
		cli.Amount(cli.FormatMoney(totals.Expense), model.Expense),
		cli.FormatSignedMoney(totals.Balance))
	return nil
}

func renderTxTable(txs []model.Transaction) string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			cli.FormatDate(tx.Date),
			tx.Description,
			tx.Category,
			pipeline.StatusBadge(tx),
			cli.Amount(cli.FormatSignedMoney(tx.Signed()), tx.Type),
		})
	}
	return cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Description", "Category", "Status", "Amount"},
		Rows:    rows,
	})
}
