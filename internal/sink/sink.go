package sink

import (
	"context"

	"github.com/deepakdhaka-1/polymarket-connector/internal/trigger"
)

// Sink is the interface for delivering detection events downstream.
type Sink interface {
	// Record delivers one detection event.
	Record(ctx context.Context, event *trigger.Event) error

	// Close closes the sink connection.
	Close() error
}
