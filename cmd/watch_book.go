package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/stream"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var watchBookCmd = &cobra.Command{
	Use:   "watch-book <token-id> [token-id...]",
	Short: "Stream live book updates for tokens",
	Long: `Connects to the market data WebSocket channel and prints book snapshots
and price changes as they arrive, until interrupted. No credentials
needed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatchBook,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(watchBookCmd)
}

func runWatchBook(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	client, err := stream.Connect(context.Background(), &stream.Config{
		URL:      cfg.WSURL,
		TokenIDs: args,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("connect stream: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	fmt.Printf("Watching %d tokens, Ctrl-C to stop\n\n", len(args))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sigChan:
			fmt.Println("\nStopping")
			return nil

		case msg, ok := <-client.Messages():
			if !ok {
				return fmt.Errorf("stream closed")
			}
			printBookMessage(msg)
		}
	}
}

func printBookMessage(msg *stream.BookMessage) {
	switch msg.EventType {
	case "book":
		bestBid, bestAsk := "-", "-"
		if len(msg.Bids) > 0 {
			bestBid = msg.Bids[len(msg.Bids)-1].Price
		}
		if len(msg.Asks) > 0 {
			bestAsk = msg.Asks[len(msg.Asks)-1].Price
		}
		fmt.Printf("[book]         %s  bid %s / ask %s (%d bid levels, %d ask levels)\n",
			msg.AssetID, bestBid, bestAsk, len(msg.Bids), len(msg.Asks))

	case "price_change":
		fmt.Printf("[price_change] %s  %s @ %s\n", msg.AssetID, msg.Side, msg.Price)

	default:
		fmt.Printf("[%s] %s\n", msg.EventType, msg.AssetID)
	}
}
