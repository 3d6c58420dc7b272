package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepakdhaka-1/polymarket-connector/internal/clob"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var placeOrderCmd = &cobra.Command{
	Use:   "place-order <token-id>",
	Short: "Place a signed order on the exchange",
	Long: `Builds, signs and submits a single order for an outcome token.

The order is EIP-712 signed with POLYMARKET_PRIVATE_KEY and submitted
under the L1 API-key envelope. This places a LIVE order; each invocation
places a new one.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaceOrder,
}

//nolint:gochecknoglobals // Cobra boilerplate
var (
	orderSide       string
	orderPrice      float64
	orderSize       float64
	orderKind       string
	orderExpiration int64
	orderTickSize   float64
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(placeOrderCmd)

	placeOrderCmd.Flags().StringVar(&orderSide, "side", "BUY", "Order side: BUY or SELL")
	placeOrderCmd.Flags().Float64VarP(&orderPrice, "price", "p", 0, "Limit price in (0.01, 0.99)")
	placeOrderCmd.Flags().Float64VarP(&orderSize, "size", "s", 0, "Size in outcome tokens")
	placeOrderCmd.Flags().StringVar(&orderKind, "type", "GTC", "Order type: GTC, GTD or FOK")
	placeOrderCmd.Flags().Int64Var(&orderExpiration, "expiration", 0, "Seconds until expiry (GTD only)")
	placeOrderCmd.Flags().Float64Var(&orderTickSize, "tick-size", 0, "Market tick size (default 0.01)")

	_ = placeOrderCmd.MarkFlagRequired("price")
	_ = placeOrderCmd.MarkFlagRequired("size")
}

func runPlaceOrder(cmd *cobra.Command, args []string) error {
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

	side := clob.Buy
	if strings.EqualFold(orderSide, "SELL") {
		side = clob.Sell
	}

	intent := clob.Intent{
		TokenID:           args[0],
		Side:              side,
		Price:             orderPrice,
		Size:              orderSize,
		Kind:              clob.OrderKind(strings.ToUpper(orderKind)),
		ExpirationSeconds: orderExpiration,
		TickSize:          orderTickSize,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	resp, err := client.CreateOrder(ctx, intent)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}

	fmt.Printf("Order placed\n")
	fmt.Printf("  ID:     %s\n", resp.OrderID)
	fmt.Printf("  Status: %s\n", resp.Status)
	fmt.Printf("  Side:   %s %s @ %.4f x %.2f\n", side, args[0], orderPrice, orderSize)

	return nil
}
