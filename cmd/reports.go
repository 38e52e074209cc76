package cmd

import (
	"fmt"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagReportMonths int

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Monthly income and expense, and spending by category",
	RunE:  runReports,
}

func init() {
	reportsCmd.Flags().IntVar(&flagReportMonths, "months", 6, "Number of months in the series")
	rootCmd.AddCommand(reportsCmd)
}

func runReports(_ *cobra.Command, _ []string) error {
	if flagReportMonths < 1 || flagReportMonths > 36 {
		return fmt.Errorf("--months must be between 1 and 36")
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

	series := pipeline.MonthlySeries(ds.Transactions, anchor, flagReportMonths)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REPORTS  Last %d months", flagReportMonths)))
	fmt.Println()

	rows := make([][]string, 0, len(series))
	expense := make([]float64, 0, len(series))
	for _, m := range series {
		rows = append(rows, []string{
			m.Month.Format("Jan 2006"),
			cli.Amount(cli.FormatMoney(m.Income), model.Income),
			cli.Amount(cli.FormatMoney(m.Expense), model.Expense),
			cli.FormatSignedMoney(m.Balance),
			fmt.Sprintf("%d", m.Count),
		})
		expense = append(expense, m.Expense.InexactFloat64())
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Income", "Expense", "Balance", "Count"},
		Rows:    rows,
	}))
	fmt.Printf("  Expense trend: %s\n\n", cli.RenderSparkline(expense))

	month := pipeline.InMonth(ds.Transactions, anchor)
	for _, typ := range []model.TxType{model.Expense, model.Income} {
		cats := pipeline.ByCategory(month, typ)
		if len(cats) == 0 {
			continue
		}
		fmt.Printf("  %s by category · %s\n", typ, cli.FormatMonth(anchor))
		peak := cats[0].Amount.InexactFloat64()
		for _, c := range cats {
			fmt.Println(cli.RenderHorizontalBar(c.Category, 16, c.Amount.InexactFloat64(), peak, 30,
				fmt.Sprintf("%s  %s", cli.FormatMoney(c.Amount), cli.FormatPercent(c.Share))))
		}
		fmt.Println()
	}
	return nil
}
