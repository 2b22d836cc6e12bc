package decision

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scenery",
		Subsystem: "decision",
		Name:      "turns_total",
		Help:      "Processed turns by intent and action.",
	}, []string{"intent", "action"})

	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scenery",
		Subsystem: "decision",
		Name:      "fallbacks_total",
		Help:      "Fallback cascade activations by kind.",
	}, []string{"kind"})

	enrichmentSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "scenery",
		Subsystem: "decision",
		Name:      "enrichment_skipped_total",
		Help:      "Enrichment steps skipped because the route budget was spent.",
	})
)
