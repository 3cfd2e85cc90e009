package validator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records validator activity. A nil *Metrics records nothing.
type Metrics struct {
	issues   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
}

// NewMetrics registers the validator metrics with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		issues: f.NewCounterVec(prometheus.CounterOpts{
			Name: "semowl_validator_issues_total",
			Help: "Issues reported, by rule and severity",
		}, []string{"rule", "severity"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "semowl_validator_rule_duration_seconds",
			Help:    "Time spent running a validator rule",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"rule"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "semowl_validator_runs_total",
			Help: "Validation runs, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observeRule(rule string, issues []Issue, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(rule).Observe(d.Seconds())
	for _, i := range issues {
		m.issues.WithLabelValues(rule, string(i.Severity)).Inc()
	}
}

func (m *Metrics) observeRun(rep *Report, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.runs.WithLabelValues("failed").Inc()
	case rep.Valid():
		m.runs.WithLabelValues("valid").Inc()
	default:
		m.runs.WithLabelValues("invalid").Inc()
	}
}
