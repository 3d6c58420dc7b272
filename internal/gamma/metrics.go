package gamma

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MarketsFetchedTotal tracks total markets fetched from the Gamma API.
	MarketsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_gamma_markets_fetched_total",
		Help: "Total number of markets fetched from the Gamma API",
	})

	// FetchDurationSeconds tracks Gamma API request latency.
	FetchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polymarket_gamma_fetch_duration_seconds",
		Help:    "Duration of Gamma API requests",
		Buckets: prometheus.DefBuckets,
	})

	// FetchErrorsTotal tracks Gamma API failures.
	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_gamma_fetch_errors_total",
		Help: "Total number of Gamma API request failures",
	})
)
