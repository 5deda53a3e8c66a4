// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CustomersRegisteredTotal counts registry inserts by result (stored, duplicate).
	CustomersRegisteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customers_registered_total",
			Help: "Total number of customer registrations by result",
		},
		[]string{"result"},
	)

	// EnrollmentsTotal counts enrollment attempts by outcome.
	EnrollmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrollments_total",
			Help: "Total number of student enrollment attempts by outcome",
		},
		[]string{"status"},
	)

	// DBQueryDuration measures database query latency, including connection setup.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	// DBConnectErrorsTotal counts failed connection attempts.
	DBConnectErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_connect_errors_total",
			Help: "Total number of failed database connection attempts",
		},
	)
)

// RecordCustomerRegistered records a registry insert attempt.
func RecordCustomerRegistered(stored bool) {
	if stored {
		CustomersRegisteredTotal.WithLabelValues("stored").Inc()
		return
	}
	CustomersRegisteredTotal.WithLabelValues("duplicate").Inc()
}

// RecordEnrollment records an enrollment outcome.
func RecordEnrollment(status string) {
	EnrollmentsTotal.WithLabelValues(status).Inc()
}

// RecordDBQuery records a database query duration.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDBConnectError records a failed connection attempt.
func RecordDBConnectError() {
	DBConnectErrorsTotal.Inc()
}
