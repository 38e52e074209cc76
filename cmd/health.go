package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagHealthInsert bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is configured and reachable",
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&flagHealthInsert, "insert-sample", false, "Also create a sample transaction to verify writes")
	rootCmd.AddCommand(healthCmd)
}

// sampleTransaction is what --insert-sample writes.
func sampleTransaction(now time.Time) model.Transaction {
	return model.Transaction{
		Description: "Sample",
		Amount:      decimal.RequireFromString("123.45"),
		Date:        model.DateOf(now),
		Category:    "Test",
		Type:        model.Income,
		Status:      model.Paid,
	}
}

func runHealth(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ok := cli.Amount("ok", model.Income)
	fail := cli.Warn("FAIL")

	fmt.Printf("  Backend:  %s\n", cfg.Backend.Type)
	if err := cfg.Validate(); err != nil {
		fmt.Printf("  Config:   %s %v\n", fail, err)
		return errors.New("configuration invalid")
	}
	if !cfg.Configured() {
		fmt.Printf("  Config:   %s %s\n", fail, gateway.ErrConfigMissing.Message)
		return gateway.ErrConfigMissing
	}
	fmt.Printf("  Config:   %s\n", ok)

	return withGateway(func(ctx context.Context, gw gateway.Gateway) error {
		start := time.Now()
		n, err := gw.Probe(ctx)
		if err != nil {
			fmt.Printf("  Read:     %s %s\n", fail, gateway.Info(err).Message)
			return err
		}
		fmt.Printf("  Read:     %s (%d row, %s)\n", ok, n, time.Since(start).Round(time.Millisecond))

		if !flagHealthInsert {
			return nil
		}
		tx, err := gw.CreateTransaction(ctx, sampleTransaction(time.Now()))
		if err != nil {
			fmt.Printf("  Write:    %s %s\n", fail, gateway.Info(err).Message)
			return err
		}
		fmt.Printf("  Write:    %s (transaction %s)\n", ok, tx.ID)
		return nil
	})
}
