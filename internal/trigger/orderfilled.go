package trigger

import (
	"context"
	"fmt"
	"sort"

	"github.com/deepakdhaka-1/polymarket-connector/internal/clob"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
)

// maxSeenTrades bounds the dedup set to the most recent trades by match
// time. The set exists purely for dedup, not audit, so older IDs are evicted.
const maxSeenTrades = 100

// OrderFilledDetector emits trade executions not seen on the previous cycle.
// The first successful cycle only seeds the seen-ID set.
type OrderFilledDetector struct {
	clob     *clob.Client
	marketID string
}

// NewOrderFilledDetector creates a fill detector. marketID "" watches all
// markets.
func NewOrderFilledDetector(client *clob.Client, marketID string) *OrderFilledDetector {
	return &OrderFilledDetector{
		clob:     client,
		marketID: marketID,
	}
}

func (d *OrderFilledDetector) Kind() string { return KindOrderFilled }

func (d *OrderFilledDetector) Fetch(ctx context.Context) (*Snapshot, error) {
	trades, err := d.clob.GetTrades(ctx, d.marketID)
	if err != nil {
		return nil, fmt.Errorf("fetch trades: %w", err)
	}

	return &Snapshot{Trades: trades}, nil
}

func (d *OrderFilledDetector) Compare(snap *Snapshot, state *PollState) *Event {
	if !state.tradesSeeded {
		state.seenTradeIDs = newestTradeIDs(snap.Trades)
		state.tradesSeeded = true
		return nil
	}

	var fresh []types.Trade
	for _, trade := range snap.Trades {
		if _, seen := state.seenTradeIDs[trade.ID]; !seen {
			fresh = append(fresh, trade)
		}
	}

	state.seenTradeIDs = newestTradeIDs(snap.Trades)

	if len(fresh) == 0 {
		return nil
	}

	event := newEvent(KindOrderFilled)
	for _, trade := range fresh {
		event.Trades = append(event.Trades, TradePayload{Trade: trade})
	}
	return event
}

// newestTradeIDs retains the IDs of the most recent maxSeenTrades trades by
// match time. Upstream ordering is not guaranteed newest-first, so sort by
// timestamp rather than trusting list position.
func newestTradeIDs(trades []types.Trade) map[string]struct{} {
	sorted := make([]types.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchedAt().After(sorted[j].MatchedAt())
	})

	if len(sorted) > maxSeenTrades {
		sorted = sorted[:maxSeenTrades]
	}

	ids := make(map[string]struct{}, len(sorted))
	for _, trade := range sorted {
		ids[trade.ID] = struct{}{}
	}
	return ids
}
