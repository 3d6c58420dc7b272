package trigger

import (
	"context"
	"fmt"

	"github.com/deepakdhaka-1/polymarket-connector/internal/gamma"
)

// ResolutionDetector watches one market and emits exactly once when it
// transitions into a terminal state. A market that is already resolved when
// the trigger activates never emits; there is no transition to observe.
type ResolutionDetector struct {
	gamma    *gamma.Client
	marketID string
}

// NewResolutionDetector creates a resolution detector for one market.
func NewResolutionDetector(client *gamma.Client, marketID string) *ResolutionDetector {
	return &ResolutionDetector{
		gamma:    client,
		marketID: marketID,
	}
}

func (d *ResolutionDetector) Kind() string { return KindMarketResolution }

func (d *ResolutionDetector) Fetch(ctx context.Context) (*Snapshot, error) {
	market, err := d.gamma.FetchMarketByID(ctx, d.marketID)
	if err != nil {
		return nil, fmt.Errorf("fetch market %s: %w", d.marketID, err)
	}

	return &Snapshot{Market: market}, nil
}

func (d *ResolutionDetector) Compare(snap *Snapshot, state *PollState) *Event {
	resolvedNow := snap.Market.IsResolved()

	if !state.resolvedSeeded {
		state.resolved = resolvedNow
		state.resolvedSeeded = true
		return nil
	}

	wasResolved := state.resolved
	state.resolved = resolvedNow

	// Edge-triggered: fire on false->true, stay silent while resolved.
	if !resolvedNow || wasResolved {
		return nil
	}

	event := newEvent(KindMarketResolution)
	event.Markets = []MarketPayload{{Market: *snap.Market}}
	event.Resolution = &ResolutionData{
		MarketID: d.marketID,
		Outcome:  snap.Market.Outcome,
		Resolved: snap.Market.Resolved,
		Closed:   snap.Market.Closed,
	}
	return event
}
