// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RFQCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfq_created_total",
			Help: "Total number of RFQs created, by type and initial status",
		},
		[]string{"rfq_type", "status"},
	)

	RFQRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfq_rejected_total",
			Help: "Total number of RFQ submissions rejected before creation",
		},
		[]string{"reason"},
	)

	MatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfq_match_outcomes_total",
			Help: "Matching engine outcomes, by reason (matched, no_candidates, directory_error)",
		},
		[]string{"reason"},
	)

	MatchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rfq_match_candidates",
			Help:    "Number of vendors returned per match",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7},
		},
	)

	RecipientWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfq_recipient_writes_total",
			Help: "Recipient assignment writes, by store and result",
		},
		[]string{"store", "result"},
	)

	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfq_notifications_total",
			Help: "Notification outbox deliveries, by channel and status",
		},
		[]string{"channel", "status"},
	)

	IntakeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "rfq_intake_duration_seconds",
			Help: "Duration of RFQ intake requests in seconds",
		},
		[]string{"rfq_type"},
	)
)
