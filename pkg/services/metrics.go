package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transition outcomes recorded in l10n_transitions_total.
const (
	outcomeOK       = "ok"
	outcomeConflict = "conflict"
	outcomeReadOnly = "readonly"
	outcomeError    = "error"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "l10n_transitions_total",
		Help: "Translation transitions by kind and outcome.",
	}, []string{"transition", "outcome"})

	transitionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "l10n_transition_duration_seconds",
		Help:    "Wall time of a translation transition including retries.",
		Buckets: prometheus.DefBuckets,
	}, []string{"transition"})

	scopeUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "l10n_scope_updates_total",
		Help: "Relative counter updates applied per aggregate scope.",
	}, []string{"scope"})

	latestAdvancesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "l10n_latest_advances_total",
		Help: "Latest-activity pointer moves per aggregate scope.",
	}, []string{"scope"})

	resourceSeedsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "l10n_resource_scope_seeds_total",
		Help: "Resource-scope records created and seeded with a string count.",
	})

	recalculationDrift = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "l10n_recalculation_drift",
		Help: "Scopes whose stored counters disagreed with the last recomputation.",
	}, []string{"scope"})

	scopeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "l10n_scope_cache_hits_total",
		Help: "Hits in the resource/locale metadata cache.",
	})
	scopeCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "l10n_scope_cache_misses_total",
		Help: "Misses in the resource/locale metadata cache.",
	})
)
