package question

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	modeLive     = "live"
	modeFallback = "fallback"
)

// Metrics holds the generation pipeline collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	generations *prometheus.CounterVec
	batches     *prometheus.CounterVec
	dropped     prometheus.Counter
	duration    *prometheus.HistogramVec
}

// NewMetrics builds the collectors and registers them with reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eduquiz",
			Subsystem: "questions",
			Name:      "generations_total",
			Help:      "Question set generations by the mode that produced the set.",
		}, []string{"mode"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eduquiz",
			Subsystem: "questions",
			Name:      "batches_total",
			Help:      "Provider batch fetches by outcome.",
		}, []string{"outcome"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eduquiz",
			Subsystem: "questions",
			Name:      "dropped_items_total",
			Help:      "Parsed items rejected by the acceptance gate.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eduquiz",
			Subsystem: "questions",
			Name:      "generation_duration_seconds",
			Help:      "Time to produce a question set.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		}, []string{"mode"}),
	}
	if reg != nil {
		reg.MustRegister(m.generations, m.batches, m.dropped, m.duration)
	}
	return m
}

func (m *Metrics) observeGeneration(mode string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(mode).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func (m *Metrics) observeBatch(err error) {
	if m == nil {
		return
	}
	m.batches.WithLabelValues(errorKind(err)).Inc()
}

func (m *Metrics) addDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.dropped.Add(float64(n))
}
