package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var bookCmd = &cobra.Command{
	Use:   "book <token-id>",
	Short: "Show the order book for a token",
	Long:  `Fetches the current order book for an outcome token. No credentials needed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBook,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(bookCmd)
}

func runBook(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	book, err := client.GetOrderBook(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetch book: %w", err)
	}

	fmt.Printf("Order book for %s\n\n", args[0])

	fmt.Println("  ASKS")
	for i := len(book.Asks) - 1; i >= 0; i-- {
		fmt.Printf("    %s @ %s\n", book.Asks[i].Size, book.Asks[i].Price)
	}

	fmt.Println("  BIDS")
	for _, level := range book.Bids {
		fmt.Printf("    %s @ %s\n", level.Size, level.Price)
	}

	if bid, ask := book.BestBid(), book.BestAsk(); bid > 0 && ask > 0 {
		fmt.Printf("\n  Spread: %.4f (bid %.4f / ask %.4f)\n", ask-bid, bid, ask)
	}

	return nil
}
