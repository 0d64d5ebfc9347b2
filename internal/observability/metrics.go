package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docwatch_runs_total",
		Help: "Total number of validation runs, by outcome.",
	}, []string{"outcome"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docwatch_run_seconds",
		Help:    "Time spent on a full validation run.",
		Buckets: prometheus.DefBuckets,
	})

	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docwatch_parsing_seconds",
		Help:    "Time spent parsing a source or documentation file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FindingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docwatch_findings_total",
		Help: "Total number of findings emitted, by severity.",
	}, []string{"severity"})

	BaselinedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docwatch_findings_baselined_total",
		Help: "Total number of findings demoted by the baseline.",
	})

	SuggestionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docwatch_suggestions_total",
		Help: "Total number of heuristic link suggestions produced.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docwatch_watcher_events_total",
		Help: "Total number of debounced file change batches received by the watcher.",
	})

	StaleRunsDiscardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docwatch_stale_runs_discarded_total",
		Help: "Total number of in-flight runs superseded by a newer change.",
	})
)
