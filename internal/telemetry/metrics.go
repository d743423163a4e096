// Package telemetry exposes prometheus metrics for the fill pipeline.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// runsTotal tracks completed fill runs.
	runsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "templater_runs_total",
		Help: "Total number of completed template fill runs",
	})

	// runDuration tracks the wall time of one fill run.
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "templater_run_duration_seconds",
		Help:    "Time taken by one template fill run",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	})

	// placeholdersReplaced tracks the distribution of placeholders resolved
	// per run.
	placeholdersReplaced = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "templater_placeholders_replaced",
		Help:    "Number of distinct placeholders replaced per run",
		Buckets: []float64{0, 5, 10, 15, 20, 30, 50},
	})

	// warningsTotal tracks degraded extraction paths across runs.
	warningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "templater_warnings_total",
		Help: "Total number of extraction warnings",
	})
)

// RecordRun records the outcome of one fill run.
func RecordRun(d time.Duration, replaced, warnings int) {
	runsTotal.Inc()
	runDuration.Observe(d.Seconds())
	placeholdersReplaced.Observe(float64(replaced))
	warningsTotal.Add(float64(warnings))
}
