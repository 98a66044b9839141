// Package metrics provides Prometheus metrics for the rate feed pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fxrates"

var (
	// FetchTotal counts completed fetch cycles by outcome.
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Total number of fetch cycles",
		},
		[]string{"outcome"},
	)

	// FetchDuration measures a whole fetch + extract cycle.
	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of fetch cycles in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// RecordsExtracted is the size of the last extracted record set.
	RecordsExtracted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_extracted",
			Help:      "Number of currency rates in the last extracted set",
		},
	)

	// RecordsDropped counts feed items rejected by validation.
	RecordsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Total number of feed items dropped by validation",
		},
	)

	// TriggersSkipped counts triggers ignored because a fetch was in flight.
	TriggersSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triggers_skipped_total",
			Help:      "Total number of fetch triggers dropped by the single-flight guard",
		},
	)
)

// RecordFetch records a completed cycle.
func RecordFetch(outcome string, seconds float64) {
	FetchTotal.WithLabelValues(outcome).Inc()
	FetchDuration.Observe(seconds)
}

// RecordExtraction records the result of one extraction pass.
func RecordExtraction(extracted, dropped int) {
	RecordsExtracted.Set(float64(extracted))
	RecordsDropped.Add(float64(dropped))
}

// RecordSkippedTrigger records a dropped trigger.
func RecordSkippedTrigger() {
	TriggersSkipped.Inc()
}
