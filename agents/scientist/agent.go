// Package scientist implements the scientific paper search agent backed
// by the arXiv Atom API.
package scientist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/agentmesh/a2a"
)

// defaultMaxResults caps how many papers a single query returns.
const defaultMaxResults = 5

// Config configures the scientist agent.
type Config struct {
	// ArxivURL overrides the arXiv API endpoint. Empty means the public API.
	ArxivURL string
	// Timeout bounds one search request.
	Timeout time.Duration
	// MaxResults caps the number of papers returned per query.
	MaxResults int
	// Logger is the logger instance.
	Logger *zap.Logger
}

// DefaultConfig returns the default scientist agent configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    15 * time.Second,
		MaxResults: defaultMaxResults,
	}
}

// Agent searches arXiv for papers matching the query. Upstream failures
// degrade into an apologetic text reply so the caller always gets a
// well-formed answer.
type Agent struct {
	arxiv      *arxivClient
	maxResults int
	log        *zap.Logger
}

// New creates the scientist agent.
func New(config Config) *Agent {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.MaxResults <= 0 {
		config.MaxResults = defaultMaxResults
	}
	return &Agent{
		arxiv:      newArxivClient(config.ArxivURL, config.Timeout),
		maxResults: config.MaxResults,
		log:        config.Logger.With(zap.String("component", "scientist_agent")),
	}
}

// Execute searches arXiv and renders the hits as a readable list. A failed
// or empty search still produces a text reply, never an error.
func (a *Agent) Execute(ctx context.Context, text string) (string, error) {
	query := extractTopic(text)
	papers, err := a.arxiv.Search(ctx, query, a.maxResults)
	if err != nil {
		a.log.Warn("arxiv search failed", zap.String("query", query), zap.Error(err))
		return "I'm sorry, I couldn't reach the paper archive right now. Please try again in a moment.", nil
	}
	if len(papers) == 0 {
		return fmt.Sprintf("I couldn't find any papers about %q. Try rephrasing your topic.", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the top papers I found about %q:\n", query)
	for i, paper := range papers {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, paper.Title, paper.Link)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// extractTopic strips the conversational framing from a query so the
// archive search sees the topic, not the phrasing.
func extractTopic(text string) string {
	topic := strings.TrimSpace(text)
	lower := strings.ToLower(topic)
	for _, prefix := range []string{
		"find papers about",
		"find papers on",
		"search for papers about",
		"search for papers on",
		"papers about",
		"papers on",
		"find research on",
		"research on",
	} {
		if strings.HasPrefix(lower, prefix) {
			topic = strings.TrimSpace(topic[len(prefix):])
			break
		}
	}
	if topic == "" {
		return text
	}
	return topic
}

// Card returns the agent card advertising this agent at baseURL.
func Card(baseURL string) *a2a.AgentCard {
	card := a2a.NewAgentCard(
		"Scientist Agent",
		"An agent that searches arXiv for scientific papers and research articles.",
		baseURL,
		"1.0.0",
	)
	card.AddSkill(a2a.AgentSkill{
		ID:          "search_papers",
		Name:        "Search Papers",
		Description: "Finds scientific papers on arXiv matching a research topic.",
		Tags:        []string{"research", "arxiv", "paper", "scientific"},
		Examples:    []string{"Find papers about quantum computing", "Search for research on neural networks", "Any recent arxiv articles on superconductors?"},
	})
	return card
}

var _ a2a.Executor = (*Agent)(nil)
