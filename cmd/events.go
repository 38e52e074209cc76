package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/finboard/internal/events"

	"github.com/spf13/cobra"
)

var flagEventsCollection string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Work with the record event bus",
}

var eventsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print record-created events as they arrive",
	RunE:  runEventsWatch,
}

func init() {
	eventsWatchCmd.Flags().StringVar(&flagEventsCollection, "collection", "", "Only show events for one collection")
	eventsCmd.AddCommand(eventsWatchCmd)
	rootCmd.AddCommand(eventsCmd)
}

func runEventsWatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Events.AMQPURL == "" {
		return errors.New("events.amqp_url is not set (or export AMQP_URL)")
	}

	client, err := events.NewClient(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.Queue, newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("  Watching %s on exchange %s (Ctrl-C to stop)\n", cfg.Events.Queue, cfg.Events.Exchange)
	err = client.ConsumeRecordCreated(ctx, func(ev *events.RecordCreated) error {
		if flagEventsCollection != "" && ev.Collection != flagEventsCollection {
			return nil
		}
		fmt.Printf("  %s  %-13s %s  %s\n",
			ev.Timestamp.Local().Format(time.TimeOnly), ev.Collection, ev.RecordID, string(ev.Data))
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
