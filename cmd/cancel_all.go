package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var cancelAllCmd = &cobra.Command{
	Use:   "cancel-all",
	Short: "Cancel all resting orders",
	Long:  `Cancels every resting order, optionally scoped to one market.`,
	RunE:  runCancelAll,
}

//nolint:gochecknoglobals // Cobra boilerplate
var cancelMarketID string

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(cancelAllCmd)

	cancelAllCmd.Flags().StringVarP(&cancelMarketID, "market", "m", "", "Only cancel orders on this market")
}

func runCancelAll(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	client, err := newClobClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	result, err := client.CancelAll(ctx, cancelMarketID)
	if err != nil {
		return fmt.Errorf("cancel all: %w", err)
	}

	fmt.Printf("Cancelled %d orders\n", len(result.Canceled))
	for orderID, reason := range result.NotCanceled {
		fmt.Printf("Not cancelled: %s (%s)\n", orderID, reason)
	}

	return nil
}
