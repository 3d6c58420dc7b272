package trigger

import (
	"context"
	"fmt"

	"github.com/deepakdhaka-1/polymarket-connector/internal/gamma"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
)

const defaultMarketLimit = 100

// NewMarketDetector emits newly listed active markets.
//
// The first successful cycle only seeds the known-ID set; emitting there
// would flood the consumer with every already-listed market the moment the
// trigger activates.
type NewMarketDetector struct {
	gamma     *gamma.Client
	minVolume float64
	limit     int
}

// NewNewMarketDetector creates a new-market detector. minVolume 0 disables
// the volume filter; limit 0 uses the default page size.
func NewNewMarketDetector(client *gamma.Client, minVolume float64, limit int) *NewMarketDetector {
	if limit <= 0 {
		limit = defaultMarketLimit
	}
	return &NewMarketDetector{
		gamma:     client,
		minVolume: minVolume,
		limit:     limit,
	}
}

func (d *NewMarketDetector) Kind() string { return KindNewMarket }

func (d *NewMarketDetector) Fetch(ctx context.Context) (*Snapshot, error) {
	markets, err := d.gamma.FetchMarkets(ctx, gamma.ListOptions{
		Active: true,
		Limit:  d.limit,
		Order:  "startDate",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch active markets: %w", err)
	}

	return &Snapshot{Markets: markets}, nil
}

func (d *NewMarketDetector) Compare(snap *Snapshot, state *PollState) *Event {
	if !state.seeded {
		state.knownMarketIDs = marketIDSet(snap.Markets)
		state.seeded = true
		return nil
	}

	var fresh []types.Market
	for _, market := range snap.Markets {
		if _, known := state.knownMarketIDs[market.ID]; known {
			continue
		}
		// Volume filter applies after the diff: filtered markets still
		// become known via the wholesale replacement below and never
		// re-emit on later cycles.
		if d.minVolume > 0 && market.Volume < d.minVolume {
			continue
		}
		fresh = append(fresh, market)
	}

	state.knownMarketIDs = marketIDSet(snap.Markets)

	if len(fresh) == 0 {
		return nil
	}

	event := newEvent(KindNewMarket)
	for _, market := range fresh {
		event.Markets = append(event.Markets, MarketPayload{Market: market})
	}
	return event
}

func marketIDSet(markets []types.Market) map[string]struct{} {
	ids := make(map[string]struct{}, len(markets))
	for _, market := range markets {
		ids[market.ID] = struct{}{}
	}
	return ids
}
