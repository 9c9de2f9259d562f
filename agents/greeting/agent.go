// Package greeting implements the greeting agent.
package greeting

import (
	"context"
	"strings"

	"github.com/BaSui01/agentmesh/a2a"
)

// Agent produces friendly greeting replies keyed on the utterance.
type Agent struct{}

// New creates the greeting agent.
func New() *Agent {
	return &Agent{}
}

// Execute picks a reply matching the tone of the greeting.
func (a *Agent) Execute(ctx context.Context, text string) (string, error) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "good morning"):
		return "Good morning! Hope your day is off to a great start.", nil
	case strings.Contains(lower, "how are you"):
		return "I'm doing well, thank you for asking! How can I help you today?", nil
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		return "Hello there! Nice to meet you.", nil
	default:
		return "Greetings! How can I help you today?", nil
	}
}

// Card returns the agent card advertising this agent at baseURL.
func Card(baseURL string) *a2a.AgentCard {
	card := a2a.NewAgentCard(
		"Greeting Agent",
		"A friendly agent for greetings and casual conversation.",
		baseURL,
		"1.0.0",
	)
	card.AddSkill(a2a.AgentSkill{
		ID:          "greet",
		Name:        "Greet",
		Description: "Responds to greetings with a friendly conversational reply.",
		Tags:        []string{"greeting", "hello"},
		Examples:    []string{"Hello there", "Good morning", "How are you?"},
	})
	return card
}

var _ a2a.Executor = (*Agent)(nil)
