// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsCreated counts issued attendance sessions.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendify_sessions_created_total",
		Help: "Number of attendance sessions issued.",
	})

	// MarkResults counts validation attempts by terminal status.
	MarkResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendify_attendance_marks_total",
		Help: "Attendance mark attempts by outcome status.",
	}, []string{"status"})

	// StorageErrors counts requests that failed on storage, not business rules.
	StorageErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendify_storage_errors_total",
		Help: "Requests rejected because storage was unavailable or failing.",
	})
)
