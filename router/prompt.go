package router

import "fmt"

// classificationPrompt is the selection prompt sent to the LLM backend. The
// reply contract is a bare agent name; anything else is handled by the
// substring fallback or discarded.
const classificationPrompt = `You are an intelligent agent orchestrator. Analyze the user query and select the MOST APPROPRIATE agent to handle it.

%s

User Query: "%s"

Rules:
1. Choose the agent whose skills BEST match the user's request
2. Respond with ONLY the agent name (e.g., "telltime_agent" or "greeting_agent")
3. If no agent is perfect, choose the closest match
4. Be concise - respond with just the agent name

Agent to use:`

// BuildClassificationPrompt renders the selection prompt from the store
// digest and the user query.
func BuildClassificationPrompt(digest, query string) string {
	return fmt.Sprintf(classificationPrompt, digest, query)
}
