package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	NotificationSentCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_sent_count",
			Help: "Total number of outbound notifications",
		},
		[]string{"channel", "status"}, // status: delivered, failed, skipped
	)

	InvitationClaimCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invitation_claim_count",
			Help: "Total number of invitation claim attempts by outcome",
		},
		[]string{"outcome"}, // outcome: claimed, exhausted, missing
	)

	CascadeDeleteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cascade_delete_failures",
			Help: "Dependent record deletions that failed during a cascade",
		},
		[]string{"parent", "collection"},
	)
)

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration records database query latency.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// IncrementNotificationSent increments the outbound notification counter.
func IncrementNotificationSent(channel, status string) {
	NotificationSentCount.WithLabelValues(channel, status).Inc()
}

// IncrementInvitationClaim increments the invitation claim counter.
func IncrementInvitationClaim(outcome string) {
	InvitationClaimCount.WithLabelValues(outcome).Inc()
}

// IncrementCascadeFailure increments the cascade failure counter.
func IncrementCascadeFailure(parent, collection string) {
	CascadeDeleteFailures.WithLabelValues(parent, collection).Inc()
}
