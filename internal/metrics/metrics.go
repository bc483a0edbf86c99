package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics — exported for use by the issuance orchestrator
var (
	VouchersIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voucher_issued_total",
			Help: "Total vouchers issued across all batches",
		},
	)

	IssuanceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voucher_issuance_failures_total",
			Help: "Failed issuance calls by error kind",
		},
		[]string{"kind"},
	)

	ProvisioningDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voucher_provisioning_duration_seconds",
			Help:    "Router provisioning duration per batch in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	NotificationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voucher_notification_failures_total",
			Help: "Credential deliveries that failed after successful issuance",
		},
	)
)
