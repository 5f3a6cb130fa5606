// Package metrics collects runtime and evaluation metrics: Prometheus
// collectors for the engine's kernel passes and buffer pool, plus raw
// runtime memory snapshots for the CLI summary.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/qsim/internal/qstate"
)

// Recorder implements the engine's pass-recording interface on top of
// Prometheus collectors. Construct with NewRecorder and register it on a
// registry before use.
type Recorder struct {
	evaluations  *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
	poolHits     prometheus.CounterFunc
	poolMisses   prometheus.CounterFunc
}

// NewRecorder builds the collector set. Pool hit/miss counters read the
// buffer pool's own counters lazily at scrape time.
func NewRecorder() *Recorder {
	return &Recorder{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qsim",
			Name:      "evaluations_total",
			Help:      "Completed circuit evaluations by outcome.",
		}, []string{"outcome"}),
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qsim",
			Name:      "kernel_pass_duration_seconds",
			Help:      "Wall time of individual kernel passes.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"kernel"}),
		poolHits: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "qsim",
			Name:      "buffer_pool_hits_total",
			Help:      "Amplitude buffers served from the pool.",
		}, func() float64 {
			hits, _ := qstate.PoolCounters()
			return float64(hits)
		}),
		poolMisses: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "qsim",
			Name:      "buffer_pool_misses_total",
			Help:      "Amplitude buffers freshly allocated.",
		}, func() float64 {
			_, misses := qstate.PoolCounters()
			return float64(misses)
		}),
	}
}

// Register adds all collectors to the registry.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{r.evaluations, r.passDuration, r.poolHits, r.poolMisses} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveKernelPass records one completed kernel pass.
func (r *Recorder) ObserveKernelPass(kernelName string, elapsed time.Duration) {
	r.passDuration.WithLabelValues(kernelName).Observe(elapsed.Seconds())
}

// IncEvaluations counts one finished evaluation by outcome.
func (r *Recorder) IncEvaluations(outcome string) {
	r.evaluations.WithLabelValues(outcome).Inc()
}
