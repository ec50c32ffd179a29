// Package metrics exposes prometheus instruments for the tracking pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	StatusTransitions  *prometheus.CounterVec
	NotificationsSent  prometheus.Counter
	NotificationsDead  prometheus.Counter
	ShipmentsCommitted prometheus.Counter
	ItemsPurged        prometheus.Counter
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "The total number of accepted status transitions",
		}, []string{"status"}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of notifications published to the broker",
		}),
		NotificationsDead: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dead_lettered_total",
			Help:      "The total number of notifications moved to the dead-letter table",
		}),
		ShipmentsCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipments_committed_total",
			Help:      "The total number of shipment commits",
		}),
		ItemsPurged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_purged_total",
			Help:      "The total number of expired tracking items purged",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
