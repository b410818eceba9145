// Package metrics provides Prometheus metrics for the relay.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blogrelay"

var (
	// JobRunsTotal counts scheduled job runs by outcome.
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Total number of scheduled job runs",
		},
		[]string{"job", "status"},
	)

	// JobDuration measures how long each job run takes.
	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduled job runs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	PostsIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_ingested_total",
			Help:      "Feed items stored as new drafts",
		},
	)

	PostsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_skipped_total",
			Help:      "Feed items skipped because the title was already stored",
		},
	)

	PostsPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_published_total",
			Help:      "Drafts promoted to published",
		},
	)

	// StoreConnectionStatus is 1 when the last store ping succeeded.
	StoreConnectionStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_connection_status",
			Help:      "Store connection status (1 = reachable, 0 = unreachable)",
		},
	)
)

// RecordJobRun records one finished job run.
func RecordJobRun(job, status string, duration float64) {
	JobRunsTotal.WithLabelValues(job, status).Inc()
	JobDuration.WithLabelValues(job).Observe(duration)
}

func RecordIngested() { PostsIngestedTotal.Inc() }

func RecordSkipped() { PostsSkippedTotal.Inc() }

func RecordPublished() { PostsPublishedTotal.Inc() }

// SetStoreReachable sets the store gauge from the result of a ping.
func SetStoreReachable(ok bool) {
	if ok {
		StoreConnectionStatus.Set(1)
		return
	}
	StoreConnectionStatus.Set(0)
}
