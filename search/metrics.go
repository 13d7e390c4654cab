package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/poiesic/journalrank/core"
)

const metricsNamespace = "journalrank"

// MetricsMonitor is a SearchMonitor that records Prometheus metrics.
// It keeps no per-call state and may be shared between engines.
type MetricsMonitor struct {
	requests   *prometheus.CounterVec
	candidates *prometheus.CounterVec
	results    *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
}

var _ SearchMonitor = (*MetricsMonitor)(nil)

// NewMetricsMonitor creates the search metrics and registers them on reg.
func NewMetricsMonitor(reg prometheus.Registerer) (*MetricsMonitor, error) {
	m := &MetricsMonitor{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "search_requests_total",
				Help:      "Total number of search requests",
			},
			[]string{"mode"},
		),
		candidates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "search_candidates_total",
				Help:      "Candidates produced by each ranking before merging",
			},
			[]string{"source"}, // "semantic" / "lexical"
		),
		results: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "search_results",
				Help:      "Number of results returned per search",
				Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
			},
			[]string{"mode"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "search_duration_seconds",
				Help:      "Search duration in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"mode"},
		),
	}

	for _, c := range []prometheus.Collector{m.requests, m.candidates, m.results, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MetricsMonitor) Start(_ string, mode Mode) {
	m.requests.WithLabelValues(string(mode)).Inc()
}

func (m *MetricsMonitor) AfterSemanticSearch(results []*core.ScoredResult) {
	m.candidates.WithLabelValues("semantic").Add(float64(len(results)))
}

func (m *MetricsMonitor) AfterLexicalSearch(results []*core.ScoredResult) {
	m.candidates.WithLabelValues("lexical").Add(float64(len(results)))
}

func (m *MetricsMonitor) AfterMerge(_ int) {}

func (m *MetricsMonitor) Finish(mode Mode, results []*core.ScoredResult, elapsed time.Duration) {
	m.results.WithLabelValues(string(mode)).Observe(float64(len(results)))
	m.duration.WithLabelValues(string(mode)).Observe(elapsed.Seconds())
}
