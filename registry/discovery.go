package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/agentmesh/a2a"
	"github.com/BaSui01/agentmesh/internal/metrics"
)

// Discoverer fetches capability descriptors from registered agents and
// builds the descriptor store. Each per-agent fetch is independent: a
// failure excludes that agent and never aborts the rest of the batch.
type Discoverer struct {
	client  *a2a.Client
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewDiscoverer creates a Discoverer using the given A2A client.
func NewDiscoverer(client *a2a.Client, collector *metrics.Collector, logger *zap.Logger) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{
		client:  client,
		logger:  logger.With(zap.String("component", "discoverer")),
		metrics: collector,
	}
}

// DiscoverAll attempts a card fetch for every entry of the raw name→URL
// registry, concurrently, and returns a freshly built store plus the count
// of agents successfully added. Store order is discovery completion order.
// Zero successes is a normal outcome, not an error.
func (d *Discoverer) DiscoverAll(ctx context.Context, raw map[string]string) (*Store, int) {
	store := NewStore()
	if len(raw) == 0 {
		return store, 0
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		url := raw[name]
		g.Go(func() error {
			desc, err := d.discoverOne(ctx, name, url)
			if err != nil {
				// Isolate-and-continue: the agent is simply absent until
				// the next refresh.
				d.logger.Warn("discovery failed",
					zap.String("agent", name),
					zap.String("url", url),
					zap.Error(err),
				)
				d.observe("failure")
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			if err := store.Add(desc); err != nil {
				d.logger.Warn("descriptor rejected", zap.String("agent", name), zap.Error(err))
				d.observe("failure")
				return nil
			}
			d.observe("success")
			d.logger.Info("agent discovered",
				zap.String("agent", name),
				zap.String("description", desc.Description),
			)
			return nil
		})
	}
	// Workers only report nil; Wait is for completion, not errors.
	_ = g.Wait()

	return store, store.Len()
}

// ScanPorts probes candidate ports on host as additional discovery targets
// and merges successes into store. Agents found this way are named after
// their card display name, normalized and deduplicated. Returns the number
// of agents added.
func (d *Discoverer) ScanPorts(ctx context.Context, store *Store, host string, ports []int) int {
	if len(ports) == 0 {
		return 0
	}

	known := make(map[string]bool)
	for _, desc := range store.All() {
		known[desc.Endpoint] = true
	}

	type found struct {
		port int
		desc *AgentDescriptor
	}

	var mu sync.Mutex
	results := make(map[int]*AgentDescriptor)
	g, ctx := errgroup.WithContext(ctx)
	for _, port := range ports {
		port := port
		url := fmt.Sprintf("http://%s:%d", host, port)
		if known[url] {
			continue
		}
		g.Go(func() error {
			card, err := d.client.ResolveCard(ctx, url)
			if err != nil {
				d.logger.Debug("no agent found", zap.String("url", url))
				return nil
			}
			mu.Lock()
			results[port] = DescriptorFromCard(NormalizeName(card.Name), url, card)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Merge in port order so repeated scans name duplicates the same way.
	ordered := make([]found, 0, len(results))
	for _, port := range ports {
		if desc, ok := results[port]; ok {
			ordered = append(ordered, found{port: port, desc: desc})
		}
	}

	added := 0
	for _, f := range ordered {
		name := f.desc.Name
		for i := 1; store.Has(f.desc.Name); i++ {
			f.desc.Name = fmt.Sprintf("%s_%d", name, i)
		}
		if err := store.Add(f.desc); err != nil {
			continue
		}
		d.observe("success")
		d.logger.Info("agent discovered by port scan",
			zap.String("agent", f.desc.Name),
			zap.Int("port", f.port),
		)
		added++
	}
	return added
}

// discoverOne fetches and validates a single agent's card.
func (d *Discoverer) discoverOne(ctx context.Context, name, url string) (*AgentDescriptor, error) {
	card, err := d.client.ResolveCard(ctx, url)
	if err != nil {
		return nil, err
	}
	return DescriptorFromCard(name, url, card), nil
}

func (d *Discoverer) observe(outcome string) {
	if d.metrics != nil {
		d.metrics.ObserveDiscovery(outcome)
	}
}
