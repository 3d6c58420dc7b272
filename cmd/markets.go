package cmd

import (
	"context"
	"fmt"

	"github.com/deepakdhaka-1/polymarket-connector/internal/gamma"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List markets from the discovery API",
	Long: `Lists markets from the Gamma discovery API. With --slug, shows one
market with its outcome tokens instead. No credentials needed.`,
	RunE: runMarkets,
}

//nolint:gochecknoglobals // Cobra boilerplate
var (
	marketsLimit  int
	marketsOrder  string
	marketsClosed bool
	marketsSlug   string
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(marketsCmd)

	marketsCmd.Flags().IntVarP(&marketsLimit, "limit", "l", 20, "Maximum markets to list")
	marketsCmd.Flags().StringVar(&marketsOrder, "order", "volume", "Sort field")
	marketsCmd.Flags().BoolVar(&marketsClosed, "closed", false, "Include closed markets")
	marketsCmd.Flags().StringVar(&marketsSlug, "slug", "", "Show a single market by slug")
}

func runMarkets(cmd *cobra.Command, args []string) error {
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

	if marketsSlug != "" {
		market, err := client.FetchMarketBySlug(ctx, marketsSlug)
		if err != nil {
			return fmt.Errorf("fetch market: %w", err)
		}

		fmt.Printf("%s\n", market.Question)
		fmt.Printf("  ID:     %s\n", market.ID)
		fmt.Printf("  Slug:   %s\n", market.Slug)
		fmt.Printf("  Volume: $%.2f\n", market.Volume)
		fmt.Printf("  Active: %v  Closed: %v  Resolved: %v\n", market.Active, market.Closed, market.Resolved)
		for _, token := range market.Tokens {
			fmt.Printf("  %-4s token %s @ %.4f\n", token.Outcome, token.TokenID, token.Price)
		}
		return nil
	}

	opts := gamma.ListOptions{
		Active: !marketsClosed,
		Closed: marketsClosed,
		Limit:  marketsLimit,
		Order:  marketsOrder,
	}

	markets, err := client.FetchMarkets(ctx, opts)
	if err != nil {
		return fmt.Errorf("fetch markets: %w", err)
	}

	fmt.Printf("%d markets:\n\n", len(markets))
	for _, market := range markets {
		fmt.Printf("  %-10s $%12.2f  %s\n", market.ID, market.Volume, market.Question)
	}

	return nil
}
