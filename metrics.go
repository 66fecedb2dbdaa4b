package katachi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "katachi"

type metrics struct {
	sources  *prometheus.CounterVec
	moves    prometheus.Counter
	patterns prometheus.Gauge
	duration prometheus.Histogram
}

// newMetrics creates the run metrics. A nil registerer creates them without registering them anywhere.
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		sources: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sources_total",
			Help:      "Game records processed, by result",
		}, []string{"result"}),
		moves: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "moves_total",
			Help:      "Moves whose pattern was recorded",
		}),
		patterns: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "patterns",
			Help:      "Distinct canonical patterns found so far",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "source_duration_seconds",
			Help:      "Time spent reading and replaying one game record",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~0.8s
		}),
	}
}

const resultMined = "mined"

func (m *metrics) mined(moves int) {
	m.sources.WithLabelValues(resultMined).Inc()
	m.moves.Add(float64(moves))
}

func (m *metrics) skipped(kind Kind) { m.sources.WithLabelValues(kind.String()).Inc() }
