package gate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for gate admissions.
//
// A nil *Metrics is valid and records nothing, so instrumentation stays
// optional for library users.
type Metrics struct {
	admissions   *prometheus.CounterVec
	waitDuration prometheus.Histogram
	workOutcomes *prometheus.CounterVec
	available    prometheus.Gauge
}

// NewMetrics creates gate metrics registered with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	return newMetrics(promauto.With(prometheus.DefaultRegisterer))
}

// NewMetricsWith creates gate metrics registered with the given registerer.
// Tests use this to avoid duplicate registration on the global registry.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	return newMetrics(promauto.With(reg))
}

func newMetrics(factory promauto.Factory) *Metrics {
	return &Metrics{
		admissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crptgate_gate_admissions_total",
				Help: "Total admission attempts by result",
			},
			[]string{"result"},
		),

		waitDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "crptgate_gate_wait_duration_seconds",
				Help:    "Time spent waiting for a permit",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to 16s
			},
		),

		workOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crptgate_gate_work_total",
				Help: "Total gated work executions by outcome",
			},
			[]string{"outcome"},
		),

		available: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crptgate_gate_permits_available",
				Help: "Permits available in the current window, as last observed",
			},
		),
	}
}

// recordAdmission records one admission attempt and its wait time.
func (m *Metrics) recordAdmission(result string, waited time.Duration) {
	if m == nil {
		return
	}
	m.admissions.WithLabelValues(result).Inc()
	m.waitDuration.Observe(waited.Seconds())
}

// recordWork records the outcome of one executed unit of work.
func (m *Metrics) recordWork(outcome string) {
	if m == nil {
		return
	}
	m.workOutcomes.WithLabelValues(outcome).Inc()
}

// setAvailable updates the last-observed available permit count.
func (m *Metrics) setAvailable(n int) {
	if m == nil {
		return
	}
	m.available.Set(float64(n))
}
