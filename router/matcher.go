package router

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/agentmesh/internal/metrics"
	"github.com/BaSui01/agentmesh/llm"
	"github.com/BaSui01/agentmesh/registry"
)

// Matcher selects an agent for a query. It only ever iterates the
// descriptor store, so a selected name always has a discovered descriptor.
type Matcher struct {
	classifier llm.Classifier
	logger     *zap.Logger
	metrics    *metrics.Collector
}

// NewMatcher creates a Matcher. classifier may be nil, in which case the
// LLM stage is skipped entirely.
func NewMatcher(classifier llm.Classifier, collector *metrics.Collector, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		classifier: classifier,
		logger:     logger.With(zap.String("component", "matcher")),
		metrics:    collector,
	}
}

// Select runs the fallback chain for one query against one store snapshot.
// It never returns an error: every stage failure degrades to the next
// stage, and an empty store yields a terminal no-agents decision.
func (m *Matcher) Select(ctx context.Context, store *registry.Store, query string) Decision {
	// Stage 1: list-agents shortcut. Terminal even on an empty store.
	if IsListCommand(query) {
		return m.decide(Decision{
			Query:    query,
			Method:   MethodList,
			Terminal: true,
			Answer:   store.DescribeForPrompt(),
		})
	}

	if store.Len() == 0 {
		return m.decide(Decision{
			Query:    query,
			Method:   MethodNone,
			Terminal: true,
			Answer:   registry.NoAgentsSentinel,
		})
	}

	// Stage 2: LLM classification.
	if decision, ok := m.classify(ctx, store, query); ok {
		return m.decide(decision)
	}

	// Stage 3: keyword buckets.
	if decision, ok := m.keywordMatch(store, query); ok {
		return m.decide(decision)
	}

	// Stage 4: first available.
	first := store.First()
	m.logger.Info("routing by first-available fallback",
		zap.String("query", query),
		zap.String("agent", first.Name),
	)
	return m.decide(Decision{Query: query, Agent: first.Name, Method: MethodFirstAvailable})
}

// classify runs the LLM stage. The second return value is false whenever
// the stage could not produce a selection, for any reason.
func (m *Matcher) classify(ctx context.Context, store *registry.Store, query string) (Decision, bool) {
	if m.classifier == nil {
		return Decision{}, false
	}

	prompt := BuildClassificationPrompt(store.DescribeForPrompt(), query)
	reply, err := m.classifier.Classify(ctx, prompt)
	if err != nil {
		m.observeClassification(metrics.OutcomeFailure)
		m.logger.Warn("llm classification failed", zap.Error(err))
		return Decision{}, false
	}

	candidate := normalizeCandidate(reply)
	if candidate == "" {
		m.observeClassification(metrics.OutcomeFailure)
		return Decision{}, false
	}

	if store.Has(candidate) {
		m.observeClassification(metrics.OutcomeSuccess)
		m.logger.Info("llm selected agent",
			zap.String("query", query),
			zap.String("agent", candidate),
		)
		return Decision{Query: query, Agent: candidate, Method: MethodLLM}, true
	}

	// Substring match in both directions, first hit in store order wins.
	for _, name := range store.Names() {
		if strings.Contains(candidate, name) || strings.Contains(name, candidate) {
			m.observeClassification(metrics.OutcomeSuccess)
			m.logger.Info("llm selected agent by partial match",
				zap.String("query", query),
				zap.String("candidate", candidate),
				zap.String("agent", name),
			)
			return Decision{Query: query, Agent: name, Method: MethodLLMPartial}, true
		}
	}

	m.observeClassification(metrics.OutcomeFailure)
	m.logger.Warn("llm returned unknown agent", zap.String("candidate", candidate))
	return Decision{}, false
}

// keywordMatch runs the keyword bucket stage.
func (m *Matcher) keywordMatch(store *registry.Store, query string) (Decision, bool) {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	bucket := matchBucket(queryLower)
	if bucket == nil {
		return Decision{}, false
	}

	for _, desc := range store.All() {
		if containsAny(desc.SearchText(), bucket.descriptor) {
			m.logger.Info("routing by keyword bucket",
				zap.String("query", query),
				zap.String("bucket", bucket.name),
				zap.String("agent", desc.Name),
			)
			return Decision{Query: query, Agent: desc.Name, Method: MethodKeyword}, true
		}
	}
	return Decision{}, false
}

// normalizeCandidate reduces a raw LLM reply to an agent-name candidate:
// first line, trimmed, lowercased, surrounding quotes and backticks
// stripped.
func normalizeCandidate(reply string) string {
	candidate := strings.TrimSpace(reply)
	if i := strings.IndexByte(candidate, '\n'); i >= 0 {
		candidate = candidate[:i]
	}
	candidate = strings.Trim(candidate, "\"'` ")
	return strings.ToLower(candidate)
}

func (m *Matcher) decide(d Decision) Decision {
	if m.metrics != nil {
		m.metrics.ObserveRouting(string(d.Method))
	}
	return d
}

func (m *Matcher) observeClassification(outcome string) {
	if m.metrics != nil {
		m.metrics.ObserveClassification(outcome)
	}
}
