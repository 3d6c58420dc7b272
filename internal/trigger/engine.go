package trigger

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/deepakdhaka-1/polymarket-connector/internal/markets"
	"go.uber.org/zap"
)

// Consumer receives detection events as they are emitted.
type Consumer interface {
	Record(ctx context.Context, event *Event) error
}

// Engine drives one detector on a timer. It owns exactly one PollState and
// runs at most one cycle at a time: a tick arriving while a cycle is in
// flight is dropped, never run concurrently.
type Engine struct {
	detector Detector
	consumer Consumer
	details  markets.DetailClient
	state    *PollState

	interval       time.Duration
	includeDetails bool
	logger         *zap.Logger

	inFlight atomic.Bool

	mu            sync.Mutex
	lastCycleAt   time.Time
	lastError     string
	cyclesRun     uint64
	eventsEmitted uint64
}

// EngineConfig holds configuration for the poll engine.
type EngineConfig struct {
	Detector       Detector
	Consumer       Consumer
	Details        markets.DetailClient // optional, required when IncludeDetails
	Interval       time.Duration
	IncludeDetails bool
	Logger         *zap.Logger
}

// NewEngine creates an engine with a fresh, empty poll state.
func NewEngine(cfg *EngineConfig) *Engine {
	return &Engine{
		detector:       cfg.Detector,
		consumer:       cfg.Consumer,
		details:        cfg.Details,
		state:          NewPollState(),
		interval:       cfg.Interval,
		includeDetails: cfg.IncludeDetails,
		logger:         cfg.Logger,
	}
}

// Run polls on the configured interval until ctx is cancelled. An initial
// cycle runs immediately so the first real detections arrive one interval
// after start rather than two.
//
// Scheduled cycles absorb their errors: a transient upstream failure is
// logged and the engine keeps polling. Use PollOnce when the caller needs
// the error.
func (e *Engine) Run(ctx context.Context) {
	e.logger.Info("trigger-engine-started",
		zap.String("kind", e.detector.Kind()),
		zap.Duration("interval", e.interval))

	e.poll(ctx)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("trigger-engine-stopped", zap.String("kind", e.detector.Kind()))
			return
		case <-ticker.C:
			e.poll(ctx)
		}
	}
}

// PollOnce runs a single cycle synchronously and returns its error.
func (e *Engine) PollOnce(ctx context.Context) error {
	return e.cycle(ctx)
}

func (e *Engine) poll(ctx context.Context) {
	if err := e.cycle(ctx); err != nil {
		e.logger.Warn("poll-cycle-failed",
			zap.String("kind", e.detector.Kind()),
			zap.Error(err))
	}
}

func (e *Engine) cycle(ctx context.Context) error {
	if !e.inFlight.CompareAndSwap(false, true) {
		TicksDroppedTotal.Inc()
		e.logger.Debug("tick-dropped", zap.String("kind", e.detector.Kind()))
		return nil
	}
	defer e.inFlight.Store(false)

	start := time.Now()
	defer func() {
		CycleDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	CyclesTotal.Inc()

	err := e.runCycle(ctx)
	e.recordCycle(err)
	if err != nil {
		CycleErrorsTotal.Inc()
	}
	return err
}

func (e *Engine) runCycle(ctx context.Context) error {
	snap, err := e.detector.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	event := e.detector.Compare(snap, e.state)
	if event == nil {
		return nil
	}

	if e.includeDetails && e.details != nil {
		e.enrich(ctx, event)
	}

	EventsEmittedTotal.WithLabelValues(event.Kind).Inc()
	e.logger.Info("event-emitted",
		zap.String("event-id", event.ID),
		zap.String("kind", event.Kind),
		zap.Int("markets", len(event.Markets)),
		zap.Int("trades", len(event.Trades)))

	if err := e.consumer.Record(ctx, event); err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	e.mu.Lock()
	e.eventsEmitted++
	e.mu.Unlock()

	return nil
}

// enrich attaches full market details to each payload item, best-effort: a
// failed lookup leaves that item unenriched and never blocks the rest.
func (e *Engine) enrich(ctx context.Context, event *Event) {
	for i := range event.Markets {
		detail, err := e.details.GetMarketDetails(ctx, event.Markets[i].ID)
		if err != nil {
			EnrichmentErrorsTotal.Inc()
			e.logger.Warn("enrichment-failed",
				zap.String("market-id", event.Markets[i].ID),
				zap.Error(err))
			continue
		}
		event.Markets[i].FullDetails = detail
	}

	for i := range event.Trades {
		detail, err := e.details.GetMarketDetails(ctx, event.Trades[i].Market)
		if err != nil {
			EnrichmentErrorsTotal.Inc()
			e.logger.Warn("enrichment-failed",
				zap.String("market-id", event.Trades[i].Market),
				zap.Error(err))
			continue
		}
		event.Trades[i].FullDetails = detail
	}
}

func (e *Engine) recordCycle(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cyclesRun++
	e.lastCycleAt = time.Now().UTC()
	if err != nil {
		e.lastError = err.Error()
	} else {
		e.lastError = ""
	}
}

// Status is a point-in-time view of the engine for operational endpoints.
type Status struct {
	Kind          string    `json:"kind"`
	Interval      string    `json:"interval"`
	LastCycleAt   time.Time `json:"lastCycleAt"`
	LastError     string    `json:"lastError,omitempty"`
	CyclesRun     uint64    `json:"cyclesRun"`
	EventsEmitted uint64    `json:"eventsEmitted"`
}

// Status returns the engine's current status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Status{
		Kind:          e.detector.Kind(),
		Interval:      e.interval.String(),
		LastCycleAt:   e.lastCycleAt,
		LastError:     e.lastError,
		CyclesRun:     e.cyclesRun,
		EventsEmitted: e.eventsEmitted,
	}
}
