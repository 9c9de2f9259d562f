// Package orchestrator drives one query end to end: match against the
// descriptor store, dispatch unless the matcher produced a terminal
// answer, and surface a single string to the caller.
package orchestrator

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/BaSui01/agentmesh/registry"
	"github.com/BaSui01/agentmesh/router"
)

// Options configures an Orchestrator.
type Options struct {
	// Registry is the raw name→URL mapping to discover from.
	Registry map[string]string
	// Discoverer fetches capability descriptors.
	Discoverer *registry.Discoverer
	// Matcher selects an agent per query.
	Matcher *router.Matcher
	// Dispatcher delivers queries to agents.
	Dispatcher *Dispatcher
	// ScanHost and ScanPorts optionally extend discovery with a port scan.
	ScanHost  string
	ScanPorts []int
	// Logger is the logger instance.
	Logger *zap.Logger
}

// Orchestrator ties the registry, matcher, and dispatcher together. It is
// stateless across queries except for the shared descriptor store, which
// it holds behind an atomic pointer: a refresh builds a complete new store
// and swaps it in, so an in-flight match never observes a partial clear.
type Orchestrator struct {
	opts  Options
	store atomic.Pointer[registry.Store]
	log   *zap.Logger
}

// New creates an Orchestrator. The store starts empty; call Discover to
// populate it.
func New(opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	o := &Orchestrator{
		opts: opts,
		log:  opts.Logger.With(zap.String("component", "orchestrator")),
	}
	o.store.Store(registry.NewStore())
	return o
}

// Store returns the current descriptor store snapshot.
func (o *Orchestrator) Store() *registry.Store {
	return o.store.Load()
}

// Discover runs a full discovery pass (registry entries plus the optional
// port scan) into a fresh store and publishes it. Returns the number of
// usable agents. Zero is a reportable outcome, not an error.
func (o *Orchestrator) Discover(ctx context.Context) int {
	store, count := o.opts.Discoverer.DiscoverAll(ctx, o.opts.Registry)
	if len(o.opts.ScanPorts) > 0 {
		count += o.opts.Discoverer.ScanPorts(ctx, store, o.opts.ScanHost, o.opts.ScanPorts)
	}
	o.store.Store(store)
	o.log.Info("discovery pass completed", zap.Int("agents", count))
	return count
}

// Refresh clears and re-runs discovery. The swap is atomic: concurrent
// matches keep reading the previous snapshot until the new one is fully
// built.
func (o *Orchestrator) Refresh(ctx context.Context) int {
	return o.Discover(ctx)
}

// Handle processes one query to completion and returns the final answer
// string. Per-query state machine: received → matching → (terminal answer
// | dispatching) → done. Nothing below this method raises across the query
// boundary.
func (o *Orchestrator) Handle(ctx context.Context, query string) string {
	store := o.store.Load()
	decision := o.opts.Matcher.Select(ctx, store, query)
	if decision.Terminal {
		return decision.Answer
	}
	return o.opts.Dispatcher.Send(ctx, store, decision.Agent, query)
}
