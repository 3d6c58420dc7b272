package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var cancelOrderCmd = &cobra.Command{
	Use:   "cancel-order <order-id>",
	Short: "Cancel a single resting order",
	Long: `Cancels one resting order by its exchange ID. An order that was
already filled or cancelled counts as success.`,
	Args: cobra.ExactArgs(1),
	RunE: runCancelOrder,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(cancelOrderCmd)
}

func runCancelOrder(cmd *cobra.Command, args []string) error {
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

	result, err := client.CancelOrder(ctx, args[0])
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	if len(result.Canceled) > 0 {
		fmt.Printf("Cancelled: %v\n", result.Canceled)
	} else {
		fmt.Printf("Order %s already gone\n", args[0])
	}
	for orderID, reason := range result.NotCanceled {
		fmt.Printf("Not cancelled: %s (%s)\n", orderID, reason)
	}

	return nil
}
