package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/log"
	"github.com/theirongolddev/finboard/internal/tui"
	"github.com/theirongolddev/finboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"dashboard"},
	Short:   "Launch interactive TUI dashboard",
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func fileLogger(name string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(config.DataDir(), 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(config.DataDir(), name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	level := log.ParseLevel(os.Getenv("FINBOARD_LOG_LEVEL"))
	l := log.New(log.Config{
		Level:   level,
		Handler: slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}),
	})
	return l, func() { _ = f.Close() }, nil
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	sess, err := resolveSession(&cfg)
	if err != nil {
		return err
	}
	anchor, err := anchorMonth()
	if err != nil {
		return err
	}

	// Anything written to stderr would tear the alt screen, so the
	// dashboard logs to a file in the data directory.
	logger, closeLog, err := fileLogger("finboard-tui.log")
	if err != nil {
		return err
	}
	defer closeLog()

	app := tui.NewApp(tui.Options{
		Config:  cfg,
		Session: sess,
		Anchor:  anchor,
		Logger:  logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
