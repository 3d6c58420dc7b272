package trigger

import (
	"time"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
	"github.com/google/uuid"
)

// Detection kinds. The values double as the configuration selector.
const (
	KindNewMarket        = "newMarket"
	KindPriceChange      = "priceChange"
	KindOrderFilled      = "orderFilled"
	KindMarketResolution = "marketResolution"
)

// Event is a single detection emitted by a detector. It is handed to the
// consumer as soon as it is produced and never stored by the engine.
type Event struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	EmittedAt time.Time `json:"emittedAt"`

	Markets     []MarketPayload  `json:"markets,omitempty"`
	Trades      []TradePayload   `json:"trades,omitempty"`
	PriceChange *PriceChangeData `json:"priceChange,omitempty"`
	Resolution  *ResolutionData  `json:"resolution,omitempty"`
}

// MarketPayload is one market record in an event, optionally enriched with
// the full market details.
type MarketPayload struct {
	types.Market
	FullDetails *types.Market `json:"fullDetails,omitempty"`
}

// TradePayload is one trade record in an event, optionally enriched with the
// details of the market it executed on.
type TradePayload struct {
	types.Trade
	FullDetails *types.Market `json:"fullDetails,omitempty"`
}

// PriceChangeData describes a threshold-crossing price move.
type PriceChangeData struct {
	MarketID      string  `json:"marketId"`
	PreviousPrice float64 `json:"previousPrice"`
	CurrentPrice  float64 `json:"currentPrice"`
	ChangePercent float64 `json:"changePercent"`
	Direction     string  `json:"direction"` // "up" or "down"
}

// ResolutionData describes a market reaching its terminal state.
type ResolutionData struct {
	MarketID string `json:"marketId"`
	Outcome  string `json:"outcome,omitempty"`
	Resolved bool   `json:"resolved"`
	Closed   bool   `json:"closed"`
}

func newEvent(kind string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		EmittedAt: time.Now().UTC(),
	}
}
