package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagCalendarDay int

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Month grid with daily income and expense",
	RunE:  runCalendar,
}

func init() {
	calendarCmd.Flags().IntVarP(&flagCalendarDay, "day", "d", 0, "Show one day's transactions (1-31)")
	calendarCmd.Flags().StringVar(&flagTxStatus, "status", "all", "Only count and list transactions with this status")
	calendarCmd.Flags().StringVar(&flagTxType, "type", "all", "Only count and list transactions of this type")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, _ []string) error {
	if err := validateTxFilters(); err != nil {
		return err
	}
	anchor, err := anchorMonth()
	if err != nil {
		return err
	}
	days := anchor.AddDate(0, 1, -1).Day()
	if flagCalendarDay < 0 || flagCalendarDay > days {
		return fmt.Errorf("--day must be between 1 and %d", days)
	}

	ctx, cancel := commandContext()
	defer cancel()

	ds, _, err := loadData(ctx)
	if err != nil {
		return err
	}

	filtered := pipeline.FilterTransactions(ds.Transactions, pipeline.TxFilter{Status: flagTxStatus, Type: flagTxType})
	byDay := pipeline.GroupByDay(filtered, anchor)

	fmt.Println()
	fmt.Println(cli.RenderTitle("CALENDAR  " + cli.FormatMonth(anchor)))
	fmt.Println()

	const cellW = 11
	var b strings.Builder
	b.WriteString("  ")
	for wd := 0; wd < 7; wd++ {
		b.WriteString(cli.Muted(fmt.Sprintf("%-*s", cellW, cli.FormatDayOfWeek(wd))))
	}
	b.WriteString("\n")
	for _, week := range pipeline.MonthGrid(anchor) {
		var nums, sums strings.Builder
		nums.WriteString("  ")
		sums.WriteString("  ")
		for _, day := range week {
			if day == 0 {
				nums.WriteString(strings.Repeat(" ", cellW))
				sums.WriteString(strings.Repeat(" ", cellW))
				continue
			}
			label := fmt.Sprintf("%2d", day)
			if day == flagCalendarDay {
				label = "[" + label + "]"
			}
			nums.WriteString(fmt.Sprintf("%-*s", cellW, label))

			g, ok := byDay[day]
			if !ok {
				sums.WriteString(strings.Repeat(" ", cellW))
				continue
			}
			net := g.IncomeSum.Sub(g.ExpenseSum)
			cell := fmt.Sprintf("%-*s", cellW, cli.FormatCompactMoney(net))
			if net.IsNegative() {
				sums.WriteString(cli.Warn(cell))
			} else {
				sums.WriteString(cell)
			}
		}
		b.WriteString(nums.String() + "\n" + sums.String() + "\n")
	}
	fmt.Print(b.String())
	fmt.Println()

	items := pipeline.SelectDayOrMonth(byDay, flagCalendarDay, filtered, anchor)
	if flagCalendarDay > 0 {
		g := byDay[flagCalendarDay]
		fmt.Printf("  Day %d · in %s · out %s\n", flagCalendarDay, cli.FormatMoney(g.IncomeSum), cli.FormatMoney(g.ExpenseSum))
	}
	if len(items) == 0 {
		fmt.Println("  No transactions.")
		return nil
	}
	fmt.Print(renderTxTable(items))
	return nil
}
