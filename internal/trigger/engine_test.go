package trigger

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
	"go.uber.org/zap"
)

type fakeDetector struct {
	kind    string
	fetch   func(ctx context.Context) (*Snapshot, error)
	compare func(snap *Snapshot, state *PollState) *Event
}

func (d *fakeDetector) Kind() string { return d.kind }

func (d *fakeDetector) Fetch(ctx context.Context) (*Snapshot, error) {
	return d.fetch(ctx)
}

func (d *fakeDetector) Compare(snap *Snapshot, state *PollState) *Event {
	if d.compare == nil {
		return nil
	}
	return d.compare(snap, state)
}

type recordingConsumer struct {
	mu     sync.Mutex
	events []*Event
	err    error
}

func (c *recordingConsumer) Record(_ context.Context, event *Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return c.err
}

func (c *recordingConsumer) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

type fakeDetails struct {
	market *types.Market
	errFor map[string]error
}

func (f *fakeDetails) GetMarketDetails(_ context.Context, marketID string) (*types.Market, error) {
	if err, ok := f.errFor[marketID]; ok {
		return nil, err
	}
	return f.market, nil
}

func TestEngineNeverOverlapsCycles(t *testing.T) {
	var concurrent, maxConcurrent atomic.Int32

	detector := &fakeDetector{
		kind: KindNewMarket,
		fetch: func(ctx context.Context) (*Snapshot, error) {
			now := concurrent.Add(1)
			defer concurrent.Add(-1)
			for {
				peak := maxConcurrent.Load()
				if now <= peak || maxConcurrent.CompareAndSwap(peak, now) {
					break
				}
			}
			time.Sleep(30 * time.Millisecond)
			return &Snapshot{}, nil
		},
	}

	engine := NewEngine(&EngineConfig{
		Detector: detector,
		Consumer: &recordingConsumer{},
		Interval: 5 * time.Millisecond,
		Logger:   zap.NewNop(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		engine.Run(ctx)
		close(done)
	}()

	// Ticks fire every 5ms while each fetch takes 30ms; overlapping cycles
	// would push concurrency above one.
	<-done

	if got := maxConcurrent.Load(); got != 1 {
		t.Errorf("max concurrent fetches = %d, want 1", got)
	}
}

func TestEngineScheduledModeAbsorbsFailures(t *testing.T) {
	var fetches atomic.Int32

	detector := &fakeDetector{
		kind: KindPriceChange,
		fetch: func(ctx context.Context) (*Snapshot, error) {
			fetches.Add(1)
			return nil, errors.New("upstream down")
		},
	}

	engine := NewEngine(&EngineConfig{
		Detector: detector,
		Consumer: &recordingConsumer{},
		Interval: 10 * time.Millisecond,
		Logger:   zap.NewNop(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	engine.Run(ctx)

	// The loop kept polling through repeated failures.
	if got := fetches.Load(); got < 3 {
		t.Errorf("fetches = %d, want at least 3", got)
	}

	status := engine.Status()
	if status.LastError == "" {
		t.Error("status should report the last cycle error")
	}
}

func TestEngineManualModePropagatesFailure(t *testing.T) {
	detector := &fakeDetector{
		kind: KindPriceChange,
		fetch: func(ctx context.Context) (*Snapshot, error) {
			return nil, errors.New("upstream down")
		},
	}

	engine := NewEngine(&EngineConfig{
		Detector: detector,
		Consumer: &recordingConsumer{},
		Interval: time.Minute,
		Logger:   zap.NewNop(),
	})

	if err := engine.PollOnce(context.Background()); err == nil {
		t.Fatal("PollOnce should propagate the fetch error")
	}
}

func TestEngineFailedFetchDoesNotTouchState(t *testing.T) {
	var compares atomic.Int32

	detector := &fakeDetector{
		kind: KindNewMarket,
		fetch: func(ctx context.Context) (*Snapshot, error) {
			return nil, errors.New("timeout")
		},
		compare: func(snap *Snapshot, state *PollState) *Event {
			compares.Add(1)
			return nil
		},
	}

	engine := NewEngine(&EngineConfig{
		Detector: detector,
		Consumer: &recordingConsumer{},
		Interval: time.Minute,
		Logger:   zap.NewNop(),
	})

	_ = engine.PollOnce(context.Background())

	if got := compares.Load(); got != 0 {
		t.Errorf("compare ran %d times after a failed fetch, want 0", got)
	}
	if engine.state.seeded {
		t.Error("state mutated by a failed cycle")
	}
}

func TestEngineEmitsToConsumer(t *testing.T) {
	detector := &fakeDetector{
		kind: KindNewMarket,
		fetch: func(ctx context.Context) (*Snapshot, error) {
			return &Snapshot{}, nil
		},
		compare: func(snap *Snapshot, state *PollState) *Event {
			event := newEvent(KindNewMarket)
			event.Markets = []MarketPayload{{Market: types.Market{ID: "A"}}}
			return event
		},
	}

	consumer := &recordingConsumer{}
	engine := NewEngine(&EngineConfig{
		Detector: detector,
		Consumer: consumer,
		Interval: time.Minute,
		Logger:   zap.NewNop(),
	})

	if err := engine.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce: %v", err)
	}

	if consumer.count() != 1 {
		t.Fatalf("consumer received %d events, want 1", consumer.count())
	}

	status := engine.Status()
	if status.EventsEmitted != 1 || status.CyclesRun != 1 {
		t.Errorf("status = %+v, want 1 event over 1 cycle", status)
	}
}

func TestEngineEnrichmentIsBestEffort(t *testing.T) {
	detector := &fakeDetector{
		kind: KindNewMarket,
		fetch: func(ctx context.Context) (*Snapshot, error) {
			return &Snapshot{}, nil
		},
		compare: func(snap *Snapshot, state *PollState) *Event {
			event := newEvent(KindNewMarket)
			event.Markets = []MarketPayload{
				{Market: types.Market{ID: "A"}},
				{Market: types.Market{ID: "B"}},
			}
			return event
		},
	}

	consumer := &recordingConsumer{}
	engine := NewEngine(&EngineConfig{
		Detector: detector,
		Consumer: consumer,
		Details: &fakeDetails{
			market: &types.Market{ID: "A", Question: "full details"},
			errFor: map[string]error{"B": errors.New("gamma 500")},
		},
		Interval:       time.Minute,
		IncludeDetails: true,
		Logger:         zap.NewNop(),
	})

	if err := engine.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce: %v", err)
	}

	event := consumer.events[0]
	if event.Markets[0].FullDetails == nil {
		t.Error("market A not enriched")
	}
	if event.Markets[1].FullDetails != nil {
		t.Error("market B enriched despite lookup failure")
	}
}

func TestEngineConsumerErrorPropagatesInManualMode(t *testing.T) {
	detector := &fakeDetector{
		kind: KindNewMarket,
		fetch: func(ctx context.Context) (*Snapshot, error) {
			return &Snapshot{}, nil
		},
		compare: func(snap *Snapshot, state *PollState) *Event {
			return newEvent(KindNewMarket)
		},
	}

	engine := NewEngine(&EngineConfig{
		Detector: detector,
		Consumer: &recordingConsumer{err: errors.New("sink closed")},
		Interval: time.Minute,
		Logger:   zap.NewNop(),
	})

	if err := engine.PollOnce(context.Background()); err == nil {
		t.Fatal("PollOnce should propagate the consumer error")
	}
}
