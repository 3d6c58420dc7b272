package trigger

// PollState holds the comparison state for one trigger instance. It is owned
// exclusively by the engine that created it, never shared across triggers and
// never persisted: a restart rebuilds it from an empty snapshot.
//
// Each detector uses the slice of state relevant to its kind and leaves the
// rest untouched. The seeded flags distinguish "never polled" from "polled
// and observed nothing", so the first successful cycle can record a baseline
// without emitting.
type PollState struct {
	seeded         bool
	knownMarketIDs map[string]struct{}

	hasPrice  bool
	lastPrice float64

	tradesSeeded bool
	seenTradeIDs map[string]struct{}

	resolvedSeeded bool
	resolved       bool
}

// NewPollState creates an empty poll state.
func NewPollState() *PollState {
	return &PollState{
		knownMarketIDs: make(map[string]struct{}),
		seenTradeIDs:   make(map[string]struct{}),
	}
}
