package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout run outcomes for the order engine.
type CheckoutMetrics struct {
	runDuration *prometheus.HistogramVec
	placed      *prometheus.CounterVec
	failed      *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	runDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_run_duration_seconds",
		Help:    "Duration of checkout runs from first transition to terminal state.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_placed",
		Help: "Orders placed by successful checkout runs.",
	}, []string{"method"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_runs_failed",
		Help: "Checkout runs that reached the failed state.",
	}, []string{"method"})
	reg.MustRegister(runDuration, placed, failed)
	return &CheckoutMetrics{
		runDuration: runDuration,
		placed:      placed,
		failed:      failed,
	}
}

// ObserveRunDuration records the wall time of a finished run.
func (c *CheckoutMetrics) ObserveRunDuration(method string, duration time.Duration) {
	if c == nil || c.runDuration == nil {
		return
	}
	c.runDuration.WithLabelValues(normalizeLabel(method)).Observe(duration.Seconds())
}

// IncPlaced increments the placed-order counter for the method.
func (c *CheckoutMetrics) IncPlaced(method string) {
	if c == nil || c.placed == nil {
		return
	}
	c.placed.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncFailed increments the failed-run counter for the method.
func (c *CheckoutMetrics) IncFailed(method string) {
	if c == nil || c.failed == nil {
		return
	}
	c.failed.WithLabelValues(normalizeLabel(method)).Inc()
}

func normalizeLabel(method string) string {
	if method == "" {
		return "unknown"
	}
	return method
}
