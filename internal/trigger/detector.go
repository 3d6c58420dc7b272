// Package trigger implements the polling change-detection engine: a
// timer-driven loop that fetches exchange state once per cycle, diffs it
// against per-trigger poll state and emits discrete detection events.
package trigger

import (
	"context"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
)

// Snapshot is the exchange state fetched once per poll cycle. Which field is
// populated depends on the detector kind: a market list for new-market
// detection, a single market for price and resolution watching, a trade list
// for fill detection.
type Snapshot struct {
	Markets []types.Market
	Market  *types.Market
	Trades  []types.Trade
}

// Detector decides whether a poll cycle produces an event.
//
// Fetch performs the one network call of the cycle. Compare is a pure,
// synchronous diff against the poll state; it mutates the state to reflect
// the new snapshot and returns the event to emit, or nil. Compare is only
// called on a successful fetch, so a failed cycle never touches state.
type Detector interface {
	Kind() string
	Fetch(ctx context.Context) (*Snapshot, error)
	Compare(snap *Snapshot, state *PollState) *Event
}
