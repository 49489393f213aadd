package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SeedMetrics holds the counters recorded during a seeding run. Each instance owns its
// registry so a batch job can export it once as a node_exporter textfile.
type SeedMetrics struct {
	registry *prometheus.Registry

	// PostsCreated counts posts persisted by the seeder.
	PostsCreated prometheus.Counter
	// CommentsCreated counts comments persisted by the seeder.
	CommentsCreated prometheus.Counter
	// PostFailures counts posts whose generation failed and was skipped.
	PostFailures prometheus.Counter
	// StoreLatency records store operation latency by operation.
	StoreLatency *prometheus.HistogramVec
	// RunDuration is the wall time of the last run in seconds.
	RunDuration prometheus.Gauge
	// LastRunTimestamp is the unix time the last run finished.
	LastRunTimestamp prometheus.Gauge
	// RedisErrors counts failed cache commands by command name.
	RedisErrors *prometheus.CounterVec
}

// NewSeedMetrics returns a SeedMetrics instance registered on a fresh registry.
func NewSeedMetrics() *SeedMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &SeedMetrics{
		registry: reg,
		PostsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "blogseed_posts_created_total",
			Help: "Total number of posts created by the seeder",
		}),
		CommentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "blogseed_comments_created_total",
			Help: "Total number of comments created by the seeder",
		}),
		PostFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "blogseed_post_failures_total",
			Help: "Total number of posts that failed to generate",
		}),
		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blogseed_store_latency_seconds",
			Help:    "Store operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "blogseed_run_duration_seconds",
			Help: "Duration of the last seeding run in seconds",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "blogseed_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed seeding run",
		}),
		RedisErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blogseed_redis_errors_total",
			Help: "Total number of Redis command errors",
		}, []string{"command"}),
	}
}

// TrackStore returns a function that records store latency when called (e.g. defer).
func (m *SeedMetrics) TrackStore(operation string) func() {
	start := time.Now()
	return func() {
		m.StoreLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// ObserveRun records run duration and completion time.
func (m *SeedMetrics) ObserveRun(started, finished time.Time) {
	m.RunDuration.Set(finished.Sub(started).Seconds())
	m.LastRunTimestamp.Set(float64(finished.Unix()))
}

// WriteTextfile writes the current metric values in the text exposition format.
func (m *SeedMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
