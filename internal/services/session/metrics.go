package session

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the coordinator's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	Attempts      *prometheus.CounterVec
	Failures      *prometheus.CounterVec
	Verifications *prometheus.CounterVec
	KDFDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Attempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "didauth",
			Name:      "auth_attempts_total",
			Help:      "Authentication attempts by result.",
		}, []string{"result"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "didauth",
			Name:      "auth_failures_total",
			Help:      "Failed authentication attempts by error kind.",
		}, []string{"kind"}),
		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "didauth",
			Name:      "challenge_verifications_total",
			Help:      "Challenge verifications by result.",
		}, []string{"result"}),
		KDFDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "didauth",
			Name:      "kdf_duration_seconds",
			Help:      "Session key derivation time by password source.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"source"}),
	}
}

func (m *Metrics) attempt(err error) {
	if m == nil {
		return
	}
	if err == nil {
		m.Attempts.WithLabelValues("success").Inc()
		return
	}
	m.Attempts.WithLabelValues("failure").Inc()
	m.Failures.WithLabelValues(kindLabel(err)).Inc()
}

func (m *Metrics) verification(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.Verifications.WithLabelValues("ok").Inc()
	} else {
		m.Verifications.WithLabelValues("failed").Inc()
	}
}

func (m *Metrics) kdf(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.KDFDuration.WithLabelValues(source).Observe(d.Seconds())
}
