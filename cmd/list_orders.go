package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listOrdersCmd = &cobra.Command{
	Use:   "list-orders",
	Short: "List resting orders",
	Long:  `Lists every resting order for the authenticated account.`,
	RunE:  runListOrders,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listOrdersCmd)
}

func runListOrders(cmd *cobra.Command, args []string) error {
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

	orders, err := client.GetOpenOrders(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	if len(orders) == 0 {
		fmt.Println("No resting orders")
		return nil
	}

	fmt.Printf("%d resting orders:\n\n", len(orders))
	for _, order := range orders {
		fmt.Printf("  %s\n", order.ID)
		fmt.Printf("    %s %s @ %s (matched %s of %s)\n",
			order.Side, order.Outcome, order.Price, order.SizeMatched, order.OriginalSize)
		fmt.Printf("    market %s, type %s\n\n", order.Market, order.OrderType)
	}

	return nil
}
