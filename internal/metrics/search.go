package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query and indexing Prometheus metrics.
var (
	TermLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikisearch",
			Name:      "term_lookups_total",
			Help:      "Total number of term lookups against the index",
		},
		[]string{"status"}, // "ok" / "error"
	)

	TermLookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wikisearch",
			Name:      "term_lookup_duration_seconds",
			Help:      "Term lookup duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	OperatorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikisearch",
			Name:      "query_operators_total",
			Help:      "Boolean operators applied while evaluating queries",
		},
		[]string{"op"},
	)

	ResultSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wikisearch",
			Name:      "query_result_documents",
			Help:      "Number of documents in evaluated query results",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	PageFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikisearch",
			Name:      "page_fetches_total",
			Help:      "Total number of page downloads",
		},
		[]string{"status"},
	)

	PageFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wikisearch",
			Name:      "page_fetch_duration_seconds",
			Help:      "Page download duration in seconds, including throttling",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	PagesIndexedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wikisearch",
			Name:      "pages_indexed_total",
			Help:      "Total number of pages written to the index",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers query and indexing metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(TermLookupsTotal)
	prometheus.MustRegister(TermLookupDuration)
	prometheus.MustRegister(OperatorsTotal)
	prometheus.MustRegister(ResultSize)
	prometheus.MustRegister(PageFetchesTotal)
	prometheus.MustRegister(PageFetchDuration)
	prometheus.MustRegister(PagesIndexedTotal)
	searchMetricsRegistered = true
}
