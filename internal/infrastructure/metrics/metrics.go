package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Total number of rental applications committed",
		},
	)

	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_status_transitions_total",
			Help: "Application status changes by previous and new status",
		},
		[]string{"from", "to"},
	)

	WizardAdvance = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_advance_total",
			Help: "Wizard advance attempts by step and result",
		},
		[]string{"step", "result"},
	)

	NotificationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_notifications_failed_total",
			Help: "Tenant status notifications that could not be delivered",
		},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler { return promhttp.Handler() }
