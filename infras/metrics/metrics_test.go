package metrics_test

import (
	"renthubber/infras/metrics"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

	next:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue next
				}
			}

			return metric.GetCounter().GetValue()
		}
	}

	return 0
}

func TestSettlementCounter(t *testing.T) {
	before := counterValue(t, "renthubber_settlements_total", map[string]string{"outcome": metrics.OutcomeSuccess})

	metrics.Settlement(metrics.OutcomeSuccess)

	after := counterValue(t, "renthubber_settlements_total", map[string]string{"outcome": metrics.OutcomeSuccess})
	assert.InDelta(t, before+1, after, 0.0001)
}

func TestRefundedCentsIgnoresZero(t *testing.T) {
	metrics.RefundedCents("card", 0)
	metrics.RefundedCents("wallet", 3000)

	assert.InDelta(t, 0, counterValue(t, "renthubber_refunded_cents_total", map[string]string{"channel": "card"}), 0.0001)
	assert.GreaterOrEqual(t, counterValue(t, "renthubber_refunded_cents_total", map[string]string{"channel": "wallet"}), 3000.0)
}

func TestObserveHTTP(t *testing.T) {
	metrics.ObserveHTTP("GET", "/v1/payouts", 200, 15*time.Millisecond)

	count, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "renthubber_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Positive(t, count)
}
