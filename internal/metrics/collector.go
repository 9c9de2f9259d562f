// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the collectors.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector aggregates the orchestrator metrics.
type Collector struct {
	discoveryAttempts  *prometheus.CounterVec
	routingDecisions   *prometheus.CounterVec
	llmClassifications *prometheus.CounterVec
	dispatchRequests   *prometheus.CounterVec
	dispatchDuration   *prometheus.HistogramVec
}

// NewCollector creates a Collector registered on reg. A nil reg uses the
// default registerer.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		discoveryAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "discovery_attempts_total",
				Help:      "Total number of agent card discovery attempts",
			},
			[]string{"outcome"},
		),
		routingDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "routing_decisions_total",
				Help:      "Total number of routing decisions by matching method",
			},
			[]string{"method"},
		),
		llmClassifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_classifications_total",
				Help:      "Total number of LLM classification calls",
			},
			[]string{"outcome"},
		),
		dispatchRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_requests_total",
				Help:      "Total number of query dispatches to agents",
			},
			[]string{"agent", "outcome"},
		),
		dispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Dispatch round-trip duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"agent"},
		),
	}
}

// ObserveDiscovery records one discovery attempt.
func (c *Collector) ObserveDiscovery(outcome string) {
	c.discoveryAttempts.WithLabelValues(outcome).Inc()
}

// ObserveRouting records one routing decision.
func (c *Collector) ObserveRouting(method string) {
	c.routingDecisions.WithLabelValues(method).Inc()
}

// ObserveClassification records one LLM classification call.
func (c *Collector) ObserveClassification(outcome string) {
	c.llmClassifications.WithLabelValues(outcome).Inc()
}

// ObserveDispatch records one dispatch and its duration.
func (c *Collector) ObserveDispatch(agent, outcome string, duration time.Duration) {
	c.dispatchRequests.WithLabelValues(agent, outcome).Inc()
	c.dispatchDuration.WithLabelValues(agent).Observe(duration.Seconds())
}
