// Package metrics exposes the prometheus counters of the backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IncomeEvents counts processed income events by distribution strategy.
	IncomeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moneydash_income_events_total",
		Help: "Number of income events processed by the allocation engine, by strategy",
	}, []string{"strategy"})

	// RuleFallbacks counts income events where invalid custom rules caused
	// the proportional fallback.
	RuleFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneydash_allocation_rule_fallbacks_total",
		Help: "Number of income events that fell back to proportional distribution because the allocation rules were invalid",
	})

	// ImportedTransactions counts transactions created through file import.
	ImportedTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneydash_imported_transactions_total",
		Help: "Number of transactions created through file imports",
	})
)
