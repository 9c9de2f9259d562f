package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/agentmesh/a2a"
	"github.com/BaSui01/agentmesh/internal/metrics"
	"github.com/BaSui01/agentmesh/registry"
)

// Dispatcher delivers a query to a selected agent and normalizes the reply
// into a plain string. Dispatch failures are values, never errors: the
// interactive loop must keep running after any single failure.
type Dispatcher struct {
	client  *a2a.Client
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewDispatcher creates a Dispatcher using the given A2A client.
func NewDispatcher(client *a2a.Client, collector *metrics.Collector, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		client:  client,
		logger:  logger.With(zap.String("component", "dispatcher")),
		metrics: collector,
	}
}

// Send delivers the query to the named agent from the given store snapshot
// and returns the normalized reply text. Unknown agents and transport
// failures come back as error-prefixed strings.
func (d *Dispatcher) Send(ctx context.Context, store *registry.Store, agentName, query string) string {
	desc := store.Get(agentName)
	if desc == nil {
		d.observe(agentName, metrics.OutcomeFailure, 0)
		return fmt.Sprintf("Agent %s is not available.", agentName)
	}

	msg := a2a.NewUserMessage(query)
	start := time.Now()
	result, err := d.client.SendMessage(ctx, desc.Endpoint, msg)
	elapsed := time.Since(start)
	if err != nil {
		d.observe(agentName, metrics.OutcomeFailure, elapsed)
		d.logger.Warn("dispatch failed",
			zap.String("agent", agentName),
			zap.Error(err),
		)
		return fmt.Sprintf("Error communicating with %s: %v", agentName, err)
	}

	d.observe(agentName, metrics.OutcomeSuccess, elapsed)
	d.logger.Info("dispatch completed",
		zap.String("agent", agentName),
		zap.String("result_kind", string(result.Kind)),
		zap.Duration("latency", elapsed),
	)
	return result.Text()
}

func (d *Dispatcher) observe(agent, outcome string, elapsed time.Duration) {
	if d.metrics != nil {
		d.metrics.ObserveDispatch(agent, outcome, elapsed)
	}
}
