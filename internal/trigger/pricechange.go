package trigger

import (
	"context"
	"fmt"
	"math"

	"github.com/deepakdhaka-1/polymarket-connector/internal/gamma"
)

// PriceChangeDetector watches one market and emits when its price moves by at
// least the configured percentage relative to the previously observed price.
type PriceChangeDetector struct {
	gamma     *gamma.Client
	marketID  string
	threshold float64 // percent, (0, 100]
}

// NewPriceChangeDetector creates a price-change detector for one market.
func NewPriceChangeDetector(client *gamma.Client, marketID string, threshold float64) *PriceChangeDetector {
	return &PriceChangeDetector{
		gamma:     client,
		marketID:  marketID,
		threshold: threshold,
	}
}

func (d *PriceChangeDetector) Kind() string { return KindPriceChange }

func (d *PriceChangeDetector) Fetch(ctx context.Context) (*Snapshot, error) {
	market, err := d.gamma.FetchMarketByID(ctx, d.marketID)
	if err != nil {
		return nil, fmt.Errorf("fetch market %s: %w", d.marketID, err)
	}

	return &Snapshot{Market: market}, nil
}

func (d *PriceChangeDetector) Compare(snap *Snapshot, state *PollState) *Event {
	current := snap.Market.CurrentPrice()

	// A relative change needs a non-zero baseline.
	if !state.hasPrice || state.lastPrice == 0 {
		state.lastPrice = current
		state.hasPrice = true
		return nil
	}

	previous := state.lastPrice
	state.lastPrice = current

	change := math.Abs(current-previous) / previous * 100
	if change < d.threshold {
		return nil
	}

	direction := "down"
	if current > previous {
		direction = "up"
	}

	event := newEvent(KindPriceChange)
	event.Markets = []MarketPayload{{Market: *snap.Market}}
	event.PriceChange = &PriceChangeData{
		MarketID:      d.marketID,
		PreviousPrice: previous,
		CurrentPrice:  current,
		ChangePercent: change,
		Direction:     direction,
	}
	return event
}
