package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout attempts and cart mutations.
type CheckoutMetrics struct {
	duration  *prometheus.HistogramVec
	attempts  *prometheus.CounterVec
	mutations *prometheus.CounterVec
}

// NewCheckoutMetrics registers the terminal metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by terminal outcome.",
	}, []string{"outcome"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutation commands issued to the cart service.",
	}, []string{"op", "outcome"})
	reg.MustRegister(duration, attempts, mutations)
	return &CheckoutMetrics{
		duration:  duration,
		attempts:  attempts,
		mutations: mutations,
	}
}

// ObserveCheckout records one finished checkout attempt.
func (c *CheckoutMetrics) ObserveCheckout(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	label := normalizeLabel(outcome)
	c.duration.WithLabelValues(label).Observe(duration.Seconds())
	c.attempts.WithLabelValues(label).Inc()
}

// IncMutation counts one cart mutation command.
func (c *CheckoutMetrics) IncMutation(op, outcome string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
