package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagCategoryKind string

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts and balances",
	RunE:  runAccounts,
}

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List credit cards, invoices and due dates",
	RunE:  runCards,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().StringVar(&flagCategoryKind, "kind", "", "Only expense or income categories")
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runAccounts(_ *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	ds, _, err := loadData(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ACCOUNTS"))
	fmt.Println()

	if len(ds.Accounts) == 0 {
		fmt.Println("  No accounts yet. Add one with `finboard add account`.")
		return nil
	}

	s := pipeline.AccountTotals(ds.Accounts)
	var rows [][]string
	for _, typ := range model.AccountTypes {
		n := 0
		for _, a := range ds.Accounts {
			if a.Type != typ {
				continue
			}
			rows = append(rows, []string{a.Name, string(typ), cli.FormatMoney(a.Balance)})
			n++
		}
		if n > 0 {
			rows = append(rows, []string{cli.Muted("subtotal"), "", cli.Muted(cli.FormatMoney(s.ByType[typ]))}, []string{"---"})
		}
	}
	rows = append(rows, []string{"Total", fmt.Sprintf("%d", s.Count), cli.FormatMoney(s.Total)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Account", "Type", "Balance"},
		Rows:    rows,
	}))
	return nil
}

func runCards(_ *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	ds, _, err := loadData(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CREDIT CARDS"))
	fmt.Println()

	if len(ds.Cards) == 0 {
		fmt.Println("  No credit cards yet. Add one with `finboard add card`.")
		return nil
	}

	rows := make([][]string, 0, len(ds.Cards)+2)
	for _, c := range ds.Cards {
		avail := cli.FormatMoney(c.Available())
		if c.Available().IsNegative() {
			avail = cli.Warn(avail)
		}
		rows = append(rows, []string{c.Name, cli.FormatMoney(c.Limit), cli.FormatMoney(c.CurrentInvoice), avail, cli.FormatDate(c.DueDate)})
	}
	s := pipeline.CardTotals(ds.Cards, time.Now())
	rows = append(rows, []string{"---"}, []string{"Total", cli.FormatMoney(s.Limit), cli.FormatMoney(s.OpenInvoices), cli.FormatMoney(s.Available), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Card", "Limit", "Invoice", "Available", "Due"},
		Rows:    rows,
	}))
	if !s.NextDue.IsZero() {
		fmt.Printf("\n  Next due: %s on %s\n", s.NextDueCard, cli.FormatDate(s.NextDue))
	}
	return nil
}

func runCategories(_ *cobra.Command, _ []string) error {
	kind, err := model.ParseCategoryKind(flagCategoryKind)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	res, _, _, err := openGateway(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	// Read directly: the kind filter is applied by the backend.
	cats, err := res.Gateway.ListCategories(ctx, kind)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CATEGORIES"))
	fmt.Println()

	if len(cats) == 0 {
		fmt.Println("  No categories.")
		return nil
	}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{c.Name, string(c.Kind), c.Icon, c.Color})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Kind", "Icon", "Color"},
		Rows:    rows,
	}))
	return nil
}
