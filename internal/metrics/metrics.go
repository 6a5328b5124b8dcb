package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "containers_rule"

// Metrics holds the counters recorded by the driver loop. Each instance owns
// its own registry so tests and multiple runners do not share state.
type Metrics struct {
	Registry *prometheus.Registry

	Iterations    prometheus.Counter
	SleepDuration prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	return &Metrics{
		Registry: reg,
		Iterations: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "iterations_total",
				Help:      "Number of completed sleep-and-print iterations",
			},
		),
		SleepDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sleep_duration_ms",
				Help:      "Sampled sleep duration in milliseconds",
				Buckets:   prometheus.LinearBuckets(2000, 500, 7),
			},
		),
	}
}

// Observe records one completed iteration that slept for ms milliseconds.
func (m *Metrics) Observe(ms int) {
	m.Iterations.Inc()
	m.SleepDuration.Observe(float64(ms))
}

// Summary is a point-in-time view of the registry.
type Summary struct {
	Iterations uint64
	TotalSlept float64
}

// Snapshot gathers the registry and returns the current totals.
func (m *Metrics) Snapshot() (Summary, error) {
	var s Summary

	families, err := m.Registry.Gather()
	if err != nil {
		return s, err
	}

	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch mf.GetName() {
			case namespace + "_iterations_total":
				s.Iterations = uint64(metric.GetCounter().GetValue())
			case namespace + "_sleep_duration_ms":
				s.TotalSlept = metric.GetHistogram().GetSampleSum()
			}
		}
	}

	return s, nil
}
