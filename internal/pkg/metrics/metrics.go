package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics covers the two failure-prone edges of the pipeline: checkout
// outcomes and the broker connection.
type Metrics struct {
	Checkouts              *prometheus.CounterVec
	PublishedEvents        *prometheus.CounterVec
	PublisherReconnects    prometheus.Counter
	DeadLetteredEvents     prometheus.Counter
	StockDecrementFailures prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopcore",
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		PublishedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopcore",
			Name:      "published_events_total",
			Help:      "Notification events published by type and result.",
		}, []string{"event_type", "result"}),
		PublisherReconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopcore",
			Name:      "publisher_reconnects_total",
			Help:      "Broker reconnect attempts.",
		}),
		DeadLetteredEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopcore",
			Name:      "dead_lettered_events_total",
			Help:      "Messages routed to the dead-letter queue.",
		}),
		StockDecrementFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopcore",
			Name:      "stock_decrement_failures_total",
			Help:      "Post-commit stock decrement calls that failed.",
		}),
	}
	reg.MustRegister(
		m.Checkouts,
		m.PublishedEvents,
		m.PublisherReconnects,
		m.DeadLetteredEvents,
		m.StockDecrementFailures,
	)
	return m
}

func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
