package cmd

import (
	"fmt"

	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	vals := tui.NewSetupValues(cfg)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		return err
	}
	tui.ApplySetup(&cfg, *vals)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	if cfg.Backend.Type == config.BackendREST {
		fmt.Println("  Sign in with `finboard login` to read your records.")
	}
	fmt.Println("  Run `finboard setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
