package sink

import (
	"context"
	"fmt"

	"github.com/deepakdhaka-1/polymarket-connector/internal/trigger"
	"go.uber.org/zap"
)

// ConsoleSink implements Sink by pretty-printing events to console.
type ConsoleSink struct {
	logger *zap.Logger
}

// NewConsoleSink creates a new console sink.
func NewConsoleSink(logger *zap.Logger) *ConsoleSink {
	logger.Info("console-sink-initialized")
	return &ConsoleSink{
		logger: logger,
	}
}

// Record pretty-prints a detection event to console.
func (c *ConsoleSink) Record(_ context.Context, event *trigger.Event) error {
	fmt.Println("\n" + "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("🔔 DETECTION: %s\n", event.Kind)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("ID:   %s\n", event.ID[:8])
	fmt.Printf("Time: %s\n", event.EmittedAt.Format("2006-01-02 15:04:05"))

	for _, market := range event.Markets {
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Printf("📈 MARKET %s\n", market.ID)
		fmt.Printf("  Question: %s\n", market.Question)
		fmt.Printf("  Slug:     %s\n", market.Slug)
		fmt.Printf("  Volume:   $%.2f\n", market.Volume)
	}

	for _, trade := range event.Trades {
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Printf("💱 TRADE %s\n", trade.ID)
		fmt.Printf("  Market:  %s\n", trade.Market)
		fmt.Printf("  Side:    %s %s\n", trade.Side, trade.Outcome)
		fmt.Printf("  Price:   %.4f @ %.2f size\n", trade.PriceFloat(), trade.SizeFloat())
	}

	if event.PriceChange != nil {
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Printf("📊 PRICE MOVE (%s)\n", event.PriceChange.Direction)
		fmt.Printf("  Market:   %s\n", event.PriceChange.MarketID)
		fmt.Printf("  Previous: %.4f\n", event.PriceChange.PreviousPrice)
		fmt.Printf("  Current:  %.4f\n", event.PriceChange.CurrentPrice)
		fmt.Printf("  Change:   %.2f%%\n", event.PriceChange.ChangePercent)
	}

	if event.Resolution != nil {
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Printf("🏁 RESOLVED\n")
		fmt.Printf("  Market:  %s\n", event.Resolution.MarketID)
		if event.Resolution.Outcome != "" {
			fmt.Printf("  Outcome: %s\n", event.Resolution.Outcome)
		}
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	return nil
}

// Close is a no-op for console sink.
func (c *ConsoleSink) Close() error {
	c.logger.Info("closing-console-sink")
	return nil
}
