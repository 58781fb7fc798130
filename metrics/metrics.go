// Package metrics defines the Prometheus collectors of the reader and
// exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "japanesereader"

// Metrics holds all Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	SentencesTotal      prometheus.Counter
	UnitsTotal          prometheus.Counter
	AnalyzeSeconds      prometheus.Histogram
	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec
	LookupFailuresTotal *prometheus.CounterVec
	AmbiguousClassTotal prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg uses a
// fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		SentencesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentences_total",
			Help:      "Total sentences analysed.",
		}),
		UnitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_total",
			Help:      "Total units produced by segmentation.",
		}),
		AnalyzeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analyze_seconds",
			Help:      "Sentence analysis latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CacheHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by cache (dictionary, translation).",
		}, []string{"cache"}),
		CacheMissesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by cache (dictionary, translation).",
		}, []string{"cache"}),
		LookupFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_failures_total",
			Help:      "Failed external lookups by source (dictionary, translation).",
		}, []string{"source"}),
		AmbiguousClassTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ambiguous_class_total",
			Help:      "Verb-like units whose inflectional class could not be guessed.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.SentencesTotal,
		m.UnitsTotal,
		m.AnalyzeSeconds,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.LookupFailuresTotal,
		m.AmbiguousClassTotal,
	)
	return m
}

func (m *Metrics) CacheHit(cache string) {
	if m != nil {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	}
}

func (m *Metrics) CacheMiss(cache string) {
	if m != nil {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func (m *Metrics) LookupFailure(source string) {
	if m != nil {
		m.LookupFailuresTotal.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) AmbiguousClass() {
	if m != nil {
		m.AmbiguousClassTotal.Inc()
	}
}

// Sentence records one analysed sentence of n units.
func (m *Metrics) Sentence(units int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SentencesTotal.Inc()
	m.UnitsTotal.Add(float64(units))
	m.AnalyzeSeconds.Observe(elapsed.Seconds())
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
