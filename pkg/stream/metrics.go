package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	MessagesReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polymarket_stream_messages_received_total",
		Help: "Total number of market channel messages received",
	}, []string{"event_type"})

	MessagesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polymarket_stream_messages_dropped_total",
		Help: "Total number of messages dropped due to a full buffer",
	})
)
