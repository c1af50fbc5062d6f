package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rate_engine",
			Name:      "quotes_computed_total",
			Help:      "Rate quotes produced, by carrier and source",
		},
		[]string{"carrier", "source"},
	)

	LiveFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rate_engine",
			Name:      "live_fetch_failures_total",
			Help:      "Failed live carrier rate calls, by carrier and reason",
		},
		[]string{"carrier", "reason"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rate_engine",
			Name:      "recommendations_total",
			Help:      "Carrier recommendations served, by priority strategy",
		},
		[]string{"priority"},
	)

	OutcomesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rate_engine",
			Name:      "delivery_outcomes_total",
			Help:      "Delivery outcomes recorded, by carrier and result",
		},
		[]string{"carrier", "result"},
	)
)
