package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Discrepancies turned into corrective actions by bulk generation, by
	// type. Read-only listings do not count.
	DiscrepanciesDetected *prometheus.CounterVec

	// Corrective actions created, by origin (single, bulk).
	ActionsCreated *prometheus.CounterVec

	// Status transitions, by target status.
	StatusChanges *prometheus.CounterVec

	// Reminder dispatches, by outcome.
	RemindersSent *prometheus.CounterVec

	OperationDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		DiscrepanciesDetected: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "audit_discrepancies_detected_total",
			Help: "Discrepancies actioned by bulk generation.",
		}, []string{"type"}),

		ActionsCreated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "audit_corrective_actions_created_total",
			Help: "Corrective actions created.",
		}, []string{"origin"}),

		StatusChanges: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "audit_corrective_action_status_changes_total",
			Help: "Corrective action status transitions.",
		}, []string{"status"}),

		RemindersSent: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "audit_reminders_total",
			Help: "Consolidated reminders dispatched.",
		}, []string{"outcome"}),

		OperationDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "audit_operation_duration_seconds",
			Help:    "Duration of batch operations.",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}
}
