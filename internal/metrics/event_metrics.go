package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsCreated is a Prometheus counter for outgoing events created.
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_events_created_total",
		Help: "The total number of outgoing webhook events created",
	})

	// EventsSent is a Prometheus counter for events fully dispatched.
	EventsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_events_sent_total",
		Help: "The total number of events marked sent",
	})

	// EventsFailed is a Prometheus counter for failed dispatch attempts.
	EventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_events_failed_total",
		Help: "The total number of events marked error after a dispatch attempt",
	})

	// DeliveryAttempts is a Prometheus counter for per-destination POSTs.
	DeliveryAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_delivery_attempts_total",
		Help: "The total number of per-destination delivery attempts",
	})

	// DeliveryFailures is a Prometheus counter for per-destination failures.
	DeliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_delivery_failures_total",
		Help: "The total number of per-destination delivery failures",
	})
)
