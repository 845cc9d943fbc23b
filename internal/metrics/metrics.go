package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

// Metrics provides Prometheus metrics for the solver server.
type Metrics struct {
	calculations     *prometheus.CounterVec
	calcDuration     *prometheus.HistogramVec
	remaining        prometheus.Histogram
	guessesDropped   *prometheus.CounterVec
	dictionaryWords  prometheus.Gauge
	dictionaryReload *prometheus.CounterVec
	activeSessions   prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a collector on its own registry, so tests can build as many
// as they like.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,

		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Total number of dictionary filter runs",
			},
			[]string{"source"},
		),
		calcDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "calculation_duration_seconds",
				Help:      "Duration of dictionary filter runs in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"source"},
		),
		remaining: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "candidates_remaining",
				Help:      "Number of candidates left after a calculation",
				Buckets:   []float64{0, 1, 2, 5, 10, 50, 100, 500, 1000, 5000},
			},
		),
		guessesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "guesses_dropped_total",
				Help:      "Guesses left out of a calculation, by reason",
			},
			[]string{"reason"},
		),
		dictionaryWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dictionary_words",
				Help:      "Number of words in the active dictionary",
			},
		),
		dictionaryReload: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dictionary_reloads_total",
				Help:      "Dictionary reload attempts",
			},
			[]string{"status"},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Current number of boards held in memory",
			},
		),
	}

	registry.MustRegister(
		m.calculations,
		m.calcDuration,
		m.remaining,
		m.guessesDropped,
		m.dictionaryWords,
		m.dictionaryReload,
		m.activeSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordCalculation records one engine run.
func (m *Metrics) RecordCalculation(source string, res solver.Result, elapsed time.Duration) {
	m.calculations.WithLabelValues(source).Inc()
	m.calcDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	m.remaining.Observe(float64(len(res.Words)))
	if n := res.Incomplete(); n > 0 {
		m.guessesDropped.WithLabelValues("incomplete").Add(float64(n))
	}
	if n := res.Invalid(); n > 0 {
		m.guessesDropped.WithLabelValues("invalid_shape").Add(float64(n))
	}
}

// SetDictionarySize updates the active dictionary gauge.
func (m *Metrics) SetDictionarySize(n int) { m.dictionaryWords.Set(float64(n)) }

// RecordReload counts a reload attempt.
func (m *Metrics) RecordReload(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dictionaryReload.WithLabelValues(status).Inc()
}

// SetActiveSessions updates the session gauge.
func (m *Metrics) SetActiveSessions(n int) { m.activeSessions.Set(float64(n)) }

// Registry exposes the underlying registry (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
