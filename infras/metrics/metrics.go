// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "renthubber"

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeUnknown  = "unknown"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency distribution of HTTP requests",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlements_total",
		Help:      "Booking completion settlements, labeled by outcome",
	}, []string{"outcome"})

	refundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refunds_total",
		Help:      "Booking cancellations, labeled by refund percentage and outcome",
	}, []string{"percentage", "outcome"})

	refundedCents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refunded_cents_total",
		Help:      "Refunded minor units, labeled by channel",
	}, []string{"channel"})

	payoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payouts_total",
		Help:      "Payout approval attempts, labeled by outcome",
	}, []string{"outcome"})

	processorLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "processor_request_duration_seconds",
		Help:      "Latency of payment processor calls",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	reconciledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciled_total",
		Help:      "Items examined by the reconciler, labeled by kind and outcome",
	}, []string{"kind", "outcome"})
)

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func Settlement(outcome string) {
	settlementsTotal.WithLabelValues(outcome).Inc()
}

func Refund(percentage int, outcome string) {
	refundsTotal.WithLabelValues(strconv.Itoa(percentage), outcome).Inc()
}

func RefundedCents(channel string, cents int64) {
	if cents > 0 {
		refundedCents.WithLabelValues(channel).Add(float64(cents))
	}
}

func Payout(outcome string) {
	payoutsTotal.WithLabelValues(outcome).Inc()
}

// ProcessorTimer starts timing a processor call; call ObserveDuration when it returns.
func ProcessorTimer(operation string) *prometheus.Timer {
	return prometheus.NewTimer(processorLatency.WithLabelValues(operation))
}

func Reconciled(kind, outcome string) {
	reconciledTotal.WithLabelValues(kind, outcome).Inc()
}
