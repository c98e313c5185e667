package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart store activity and silent persistence failures.
type CartMetrics struct {
	operations      *prometheus.CounterVec
	persistFailures prometheus.Counter
	notifyFailures  prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart store mutations by operation.",
	}, []string{"op"})
	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Durable slot writes that failed and were swallowed.",
	})
	notifyFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_notify_failures_total",
		Help: "Notification publishes that failed and were dropped.",
	})
	reg.MustRegister(operations, persistFailures, notifyFailures)
	return &CartMetrics{
		operations:      operations,
		persistFailures: persistFailures,
		notifyFailures:  notifyFailures,
	}
}

// IncOperation counts a cart mutation by operation name.
func (c *CartMetrics) IncOperation(op string) {
	if c == nil || c.operations == nil {
		return
	}
	if op == "" {
		op = "unknown"
	}
	c.operations.WithLabelValues(op).Inc()
}

// IncPersistFailure counts a swallowed durable-slot write failure.
func (c *CartMetrics) IncPersistFailure() {
	if c == nil || c.persistFailures == nil {
		return
	}
	c.persistFailures.Inc()
}

// IncNotifyFailure counts a dropped notification publish.
func (c *CartMetrics) IncNotifyFailure() {
	if c == nil || c.notifyFailures == nil {
		return
	}
	c.notifyFailures.Inc()
}
