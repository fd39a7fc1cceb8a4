// Package metrics exposes the service's Prometheus counters. All metrics
// are registered on the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "negotiator_sessions_created_total",
		Help: "Negotiation sessions opened.",
	})

	ChatTurns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "negotiator_chat_turns_total",
		Help: "Buyer messages processed.",
	})

	GeneratorFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "negotiator_generator_failures_total",
		Help: "Provider calls that errored and fell back to the canned reply.",
	})

	Evaluations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "negotiator_evaluations_total",
		Help: "Negotiation evaluations computed.",
	})

	SessionsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "negotiator_sessions_swept_total",
		Help: "Idle sessions removed by the background sweep.",
	})
)
