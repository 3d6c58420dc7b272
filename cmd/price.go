package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepakdhaka-1/polymarket-connector/internal/clob"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var priceCmd = &cobra.Command{
	Use:   "price <token-id>",
	Short: "Show the current price for a token",
	Long:  `Fetches the current best price for an outcome token. No credentials needed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPrice,
}

//nolint:gochecknoglobals // Cobra boilerplate
var priceSide string

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().StringVar(&priceSide, "side", "BUY", "Price side: BUY or SELL")
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	client, err := newPublicClobClient(cfg, logger)
	if err != nil {
		return err
	}

	side := clob.Buy
	if strings.EqualFold(priceSide, "SELL") {
		side = clob.Sell
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	price, err := client.GetPrice(ctx, args[0], side)
	if err != nil {
		return fmt.Errorf("fetch price: %w", err)
	}

	fmt.Printf("%s %s: %.4f\n", side, args[0], price)

	return nil
}
