package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineRunMetrics observes analysis runs end to end: outcome counts,
// wall-clock duration and how many status polls each run needed.
type PipelineRunMetrics struct {
	registry *prometheus.Registry
	service  string

	runsTotal    *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	pollsPerRun  prometheus.Histogram
	runsInFlight prometheus.Gauge
}

func NewPipelineRunMetrics(service string) *PipelineRunMetrics {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zant",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total analysis runs by outcome.",
		},
		[]string{"service", "outcome"},
	)
	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zant",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Analysis run duration in seconds by outcome.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service", "outcome"},
	)
	pollsPerRun := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "zant",
			Subsystem: "pipeline",
			Name:      "polls_per_run",
			Help:      "Status polls needed to finish one analysis run.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	runsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "zant",
			Subsystem: "pipeline",
			Name:      "runs_in_flight",
			Help:      "Number of analysis runs currently in progress.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(runsTotal, runDuration, pollsPerRun, runsInFlight)

	return &PipelineRunMetrics{
		registry:     registry,
		service:      service,
		runsTotal:    runsTotal,
		runDuration:  runDuration,
		pollsPerRun:  pollsPerRun,
		runsInFlight: runsInFlight,
	}
}

func (m *PipelineRunMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineRunMetrics) StartRun() {
	m.runsInFlight.Inc()
}

func (m *PipelineRunMetrics) FinishRun(outcome string, duration time.Duration, polls int) {
	m.runsInFlight.Dec()
	m.runsTotal.WithLabelValues(m.service, outcome).Inc()
	m.runDuration.WithLabelValues(m.service, outcome).Observe(duration.Seconds())
	m.pollsPerRun.Observe(float64(polls))
}
