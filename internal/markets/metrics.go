package markets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	DetailCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_market_detail_cache_hits_total",
		Help: "Total number of market detail cache hits",
	})

	DetailCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_market_detail_cache_misses_total",
		Help: "Total number of market detail cache misses",
	})
)
