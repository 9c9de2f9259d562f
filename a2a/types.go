// Package a2a implements the client and server sides of the HTTP
// agent-to-agent protocol: agent card discovery, message dispatch, and
// response normalization. The wire format follows the published A2A
// schema; this package consumes it and does not extend it.
package a2a

// WellKnownPath is the discovery path serving the agent card.
const WellKnownPath = "/.well-known/agent.json"

// AgentCapabilities advertises optional protocol features of an agent.
type AgentCapabilities struct {
	// Streaming indicates the agent supports streaming responses.
	Streaming bool `json:"streaming"`
	// PushNotifications indicates the agent supports push notifications.
	PushNotifications bool `json:"pushNotifications"`
}

// AgentSkill describes a single named capability of an agent.
type AgentSkill struct {
	// ID is the unique identifier of this skill.
	ID string `json:"id"`
	// Name is the human-readable skill name.
	Name string `json:"name"`
	// Description explains what the skill does.
	Description string `json:"description"`
	// Tags are free-text labels used for coarse matching.
	Tags []string `json:"tags,omitempty"`
	// Examples are sample utterances this skill handles.
	Examples []string `json:"examples,omitempty"`
}

// AgentCard is the capability descriptor an agent serves at WellKnownPath.
type AgentCard struct {
	// Name is the display name of the agent.
	Name string `json:"name"`
	// Description is a human-readable summary of the agent's purpose.
	Description string `json:"description"`
	// URL is the base endpoint where the agent accepts messages.
	URL string `json:"url"`
	// Version is the agent version.
	Version string `json:"version"`
	// Capabilities lists optional protocol features.
	Capabilities AgentCapabilities `json:"capabilities"`
	// DefaultInputModes lists accepted input content types.
	DefaultInputModes []string `json:"defaultInputModes,omitempty"`
	// DefaultOutputModes lists produced output content types.
	DefaultOutputModes []string `json:"defaultOutputModes,omitempty"`
	// Skills lists the agent's skills in the order the agent advertises them.
	Skills []AgentSkill `json:"skills,omitempty"`
}

// NewAgentCard creates an AgentCard with the required fields set.
func NewAgentCard(name, description, url, version string) *AgentCard {
	return &AgentCard{
		Name:               name,
		Description:        description,
		URL:                url,
		Version:            version,
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
	}
}

// AddSkill appends a skill to the card and returns the card for chaining.
func (c *AgentCard) AddSkill(skill AgentSkill) *AgentCard {
	c.Skills = append(c.Skills, skill)
	return c
}

// Validate checks that the card has all fields the routing core relies on.
func (c *AgentCard) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.Description == "" {
		return ErrMissingDescription
	}
	if c.URL == "" {
		return ErrMissingURL
	}
	return nil
}
