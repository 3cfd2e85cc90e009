package reasoner

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records reasoner activity. A nil *Metrics records nothing.
type Metrics struct {
	inferences *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	errors     *prometheus.CounterVec
	iterations prometheus.Histogram
}

// NewMetrics registers the reasoner metrics with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		inferences: f.NewCounterVec(prometheus.CounterOpts{
			Name: "semowl_reasoner_inferences_total",
			Help: "Axioms inferred, by rule",
		}, []string{"rule"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "semowl_reasoner_rule_duration_seconds",
			Help:    "Time spent applying a rule once",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"rule"}),
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "semowl_reasoner_rule_errors_total",
			Help: "Rule applications that failed, by rule",
		}, []string{"rule"}),
		iterations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "semowl_reasoner_iterations",
			Help:    "Iterations per reasoning run",
			Buckets: prometheus.LinearBuckets(1, 2, 8),
		}),
	}
}

func (m *Metrics) observeRule(rule string, n int, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(rule).Observe(d.Seconds())
	if err != nil {
		m.errors.WithLabelValues(rule).Inc()
		return
	}
	m.inferences.WithLabelValues(rule).Add(float64(n))
}

func (m *Metrics) observeRun(iterations int) {
	if m == nil {
		return
	}
	m.iterations.Observe(float64(iterations))
}
