package trigger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_trigger_cycles_total",
		Help: "Total number of poll cycles started",
	})

	CycleErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_trigger_cycle_errors_total",
		Help: "Total number of poll cycles that failed",
	})

	CycleDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polymarket_trigger_cycle_duration_seconds",
		Help:    "Duration of poll cycles",
		Buckets: prometheus.DefBuckets,
	})

	EventsEmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polymarket_trigger_events_emitted_total",
		Help: "Total number of detection events emitted",
	}, []string{"kind"})

	TicksDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_trigger_ticks_dropped_total",
		Help: "Total number of ticks dropped because a cycle was in flight",
	})

	EnrichmentErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_trigger_enrichment_errors_total",
		Help: "Total number of failed event enrichment lookups",
	})
)
