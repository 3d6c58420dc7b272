package clob

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks order-service requests by method and path.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polymarket_clob_requests_total",
		Help: "Total number of CLOB API requests",
	}, []string{"method", "path"})

	// RequestErrorsTotal tracks failed order-service requests.
	RequestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polymarket_clob_request_errors_total",
		Help: "Total number of failed CLOB API requests",
	}, []string{"method", "path"})

	// RequestDurationSeconds tracks CLOB request latency.
	RequestDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polymarket_clob_request_duration_seconds",
		Help:    "Duration of CLOB API requests",
		Buckets: prometheus.DefBuckets,
	})

	// OrdersPlacedTotal tracks successfully submitted orders.
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_clob_orders_placed_total",
		Help: "Total number of orders accepted by the exchange",
	})

	// OrderErrorsTotal tracks rejected or failed order submissions.
	OrderErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_clob_order_errors_total",
		Help: "Total number of failed order submissions",
	})

	// OrdersCancelledTotal tracks cancelled orders.
	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_clob_orders_cancelled_total",
		Help: "Total number of orders cancelled",
	})
)
