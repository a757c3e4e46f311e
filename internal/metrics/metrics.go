// Package metrics holds the Prometheus collectors of the server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shoplist"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	rpcInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight RPCs.",
		},
	)

	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total number of RPCs handled.",
		},
		[]string{"procedure", "code"},
	)

	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of RPCs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"procedure"},
	)

	itemRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "item_requests_total",
			Help:      "Item requests by outcome.",
		},
		[]string{"outcome"},
	)

	itemTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "item_transitions_total",
			Help:      "Items moved to a terminal state.",
		},
		[]string{"state"},
	)

	tickets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "support",
			Name:      "tickets_total",
			Help:      "Support ticket submissions by outcome.",
		},
		[]string{"outcome"},
	)

	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "rate_limited_total",
			Help:      "RPCs rejected by the per-user rate limiter.",
		},
	)
)

func init() {
	Registry.MustRegister(
		rpcInFlight,
		rpcRequests,
		rpcDuration,
		itemRequests,
		itemTransitions,
		tickets,
		rateLimited,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RPCStarted marks an RPC as in flight and returns the function that
// records its completion.
func RPCStarted(procedure string) func(code string) {
	start := time.Now()
	rpcInFlight.Inc()
	return func(code string) {
		rpcInFlight.Dec()
		rpcRequests.WithLabelValues(procedure, code).Inc()
		rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
	}
}

// RecordItemRequest counts an item request. outcome is "created" or a notice kind.
func RecordItemRequest(outcome string) {
	itemRequests.WithLabelValues(outcome).Inc()
}

// RecordItemTransition counts an item reaching a terminal state.
func RecordItemTransition(state string) {
	itemTransitions.WithLabelValues(state).Inc()
}

// RecordTicket counts a support ticket submission. outcome is "created" or a notice kind.
func RecordTicket(outcome string) {
	tickets.WithLabelValues(outcome).Inc()
}

// RecordRateLimited counts an RPC rejected by the rate limiter.
func RecordRateLimited() {
	rateLimited.Inc()
}
