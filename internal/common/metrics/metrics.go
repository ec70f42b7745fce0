// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_turns_total",
			Help: "Total number of user turns processed, by conversation state",
		},
		[]string{"state"},
	)

	TurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "conversation_turn_duration_seconds",
			Help: "Duration of full turn handling in seconds",
		},
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of orchestration pipeline runs, by status",
		},
		[]string{"status"},
	)

	UnderwritingDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "underwriting_decisions_total",
			Help: "Total number of underwriting evaluations, by decision",
		},
		[]string{"decision"},
	)

	SanctionLettersRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sanction_letters_rendered_total",
			Help: "Total number of sanction letters written to disk",
		},
	)

	NegotiationIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "negotiation_intents_total",
			Help: "Total number of negotiation intents handled, by kind",
		},
		[]string{"kind"},
	)
)
