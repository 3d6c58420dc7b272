package cmd

import (
	"context"
	"fmt"

	"github.com/deepakdhaka-1/polymarket-connector/internal/gamma"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events from the discovery API",
	Long: `Lists events (titled groups of related markets) from the Gamma
discovery API. With --slug, shows one event and its markets. With
--search, runs a keyword search instead. No credentials needed.`,
	RunE: runEvents,
}

//nolint:gochecknoglobals // Cobra boilerplate
var (
	eventsLimit  int
	eventsSlug   string
	eventsSearch string
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "l", 20, "Maximum events to list")
	eventsCmd.Flags().StringVar(&eventsSlug, "slug", "", "Show a single event by slug")
	eventsCmd.Flags().StringVar(&eventsSearch, "search", "", "Keyword search across markets and events")
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	client := newGammaClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if eventsSearch != "" {
		raw, err := client.Search(ctx, eventsSearch, eventsLimit, 0)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		fmt.Println(string(raw))
		return nil
	}

	if eventsSlug != "" {
		event, err := client.FetchEventBySlug(ctx, eventsSlug)
		if err != nil {
			return fmt.Errorf("fetch event: %w", err)
		}

		fmt.Printf("%s\n", event.Title)
		fmt.Printf("  ID:     %s\n", event.ID)
		fmt.Printf("  Active: %v  Closed: %v\n", event.Active, event.Closed)
		fmt.Printf("  %d markets:\n", len(event.Markets))
		for _, market := range event.Markets {
			fmt.Printf("    %-10s %s\n", market.ID, market.Question)
		}
		return nil
	}

	events, err := client.FetchEvents(ctx, gamma.ListOptions{Active: true, Limit: eventsLimit})
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}

	fmt.Printf("%d events:\n\n", len(events))
	for _, event := range events {
		fmt.Printf("  %-10s %s (%d markets)\n", event.ID, event.Title, len(event.Markets))
	}

	return nil
}
