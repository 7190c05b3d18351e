// Package metrics holds the service's Prometheus collectors and the decorators that feed them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "shipping"

// Outcomes recorded for external lookups.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	ExternalLookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_lookup_duration_seconds",
			Help:      "Duration of postal code and distance lookups",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resolver", "outcome"},
	)

	ShipmentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipments_created_total",
			Help:      "Total number of shipments created",
		},
	)

	StatusUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_updates_total",
			Help:      "Total number of status entries appended to shipments",
		},
	)

	NotificationsDeliveredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_delivered_total",
			Help:      "Total number of customer notifications delivered",
		},
		[]string{"event"},
	)

	NotificationsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Total number of failed notification delivery attempts",
		},
		[]string{"event"},
	)

	NotificationsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dropped_total",
			Help:      "Total number of notifications given up on",
		},
		[]string{"event", "reason"},
	)

	NotificationQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notification_queue_depth",
			Help:      "Number of notifications waiting for a worker",
		},
	)
)

// Register registers all collectors with reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		ExternalLookupDuration,
		ShipmentsCreatedTotal,
		StatusUpdatesTotal,
		NotificationsDeliveredTotal,
		NotificationsFailedTotal,
		NotificationsDroppedTotal,
		NotificationQueueDepth,
	)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
