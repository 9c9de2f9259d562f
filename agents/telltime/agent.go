// Package telltime implements the time-telling agent.
package telltime

import (
	"context"
	"time"

	"github.com/BaSui01/agentmesh/a2a"
)

// Agent answers every query with the current time.
type Agent struct {
	// now is swappable for tests.
	now func() time.Time
}

// New creates the time agent.
func New() *Agent {
	return &Agent{now: time.Now}
}

// Execute returns the current time, whatever the utterance was. Time is
// the only thing this agent knows.
func (a *Agent) Execute(ctx context.Context, text string) (string, error) {
	return "The current time is " + a.now().Format("2006-01-02 15:04:05") + ".", nil
}

// Card returns the agent card advertising this agent at baseURL.
func Card(baseURL string) *a2a.AgentCard {
	card := a2a.NewAgentCard(
		"TellTime Agent",
		"An agent that tells the current time.",
		baseURL,
		"1.0.0",
	)
	card.AddSkill(a2a.AgentSkill{
		ID:          "tell_time",
		Name:        "Tell Time",
		Description: "Reports the current date and time.",
		Tags:        []string{"time", "clock"},
		Examples:    []string{"What time is it?", "Tell me the current time", "What's the clock say?"},
	})
	return card
}

var _ a2a.Executor = (*Agent)(nil)
