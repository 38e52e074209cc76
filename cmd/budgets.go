package cmd

import (
	"fmt"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagBudgetFilter string

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Budget consumption by category",
	RunE:  runBudgets,
}

func init() {
	budgetsCmd.Flags().StringVarP(&flagBudgetFilter, "filter", "f", model.BudgetFilterActive, "active, exceeded or current")
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgets(_ *cobra.Command, _ []string) error {
	switch flagBudgetFilter {
	case model.BudgetFilterActive, model.BudgetFilterExceeded, model.BudgetFilterCurrent:
	default:
		return fmt.Errorf("invalid --filter %q (want active, exceeded or current)", flagBudgetFilter)
	}
	anchor, err := anchorMonth()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	ds, cfg, err := loadData(ctx)
	if err != nil {
		return err
	}

	period := cfg.Budgets.CurrentPeriod
	if period == "" {
		period = pipeline.PeriodLabel(anchor)
	}
	list := pipeline.FilterBudgets(ds.Budgets, flagBudgetFilter, period)

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGETS  " + flagBudgetFilter))
	fmt.Println()

	if len(list) == 0 {
		fmt.Println("  No budgets match.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, b := range list {
		v := pipeline.BudgetVisual(b)
		name := b.Category
		if v.Warning {
			name = cli.Warn("! ") + name
		}
		rows = append(rows, []string{
			name,
			b.Period,
			cli.FormatMoney(b.Spent),
			cli.FormatMoney(b.Limit),
			cli.FormatSignedMoney(b.Remaining()),
			cli.RenderBudgetBar(v.Percent, v.BarTier, 20) + " " + cli.FormatPercent(v.Percent),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Period", "Spent", "Limit", "Remaining", "Used"},
		Rows:    rows,
	}))

	s := pipeline.BudgetTotals(ds.Budgets)
	fmt.Printf("\n  %d budgets · %s of %s spent · %d exceeded · current period %q\n",
		s.Count, cli.FormatMoney(s.Spent), cli.FormatMoney(s.Limit), s.Exceeded, period)
	return nil
}
