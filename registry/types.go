// Package registry tracks remote agents: the static name→endpoint mapping,
// the capability descriptors discovered from them, and the discovery client
// that populates the store.
package registry

import (
	"strings"

	"github.com/BaSui01/agentmesh/a2a"
)

// Skill is the matching-relevant projection of an advertised agent skill.
type Skill struct {
	// ID is the skill identifier from the agent card.
	ID string `json:"id"`
	// Name is the skill name.
	Name string `json:"name"`
	// Description explains what the skill does.
	Description string `json:"description"`
	// Examples are sample utterances, in card order.
	Examples []string `json:"examples,omitempty"`
}

// AgentDescriptor is the discovered record of one remote agent. Descriptors
// are immutable after discovery; a refresh builds an entirely new store.
type AgentDescriptor struct {
	// Name is the unique registry key of the agent.
	Name string `json:"name"`
	// Endpoint is the base URL of the agent.
	Endpoint string `json:"endpoint"`
	// Description is the human-readable summary from the agent card.
	Description string `json:"description"`
	// Skills lists the agent's skills in card order.
	Skills []Skill `json:"skills,omitempty"`
	// Tags aggregates the free-text labels across all skills.
	Tags []string `json:"tags,omitempty"`
	// Capabilities carries the card's protocol feature flags. Informational
	// only; the routing decision does not consult them.
	Capabilities a2a.AgentCapabilities `json:"capabilities"`
}

// DescriptorFromCard builds an AgentDescriptor from a resolved agent card.
func DescriptorFromCard(name, endpoint string, card *a2a.AgentCard) *AgentDescriptor {
	desc := &AgentDescriptor{
		Name:         name,
		Endpoint:     endpoint,
		Description:  card.Description,
		Capabilities: card.Capabilities,
	}
	seen := make(map[string]bool)
	for _, skill := range card.Skills {
		desc.Skills = append(desc.Skills, Skill{
			ID:          skill.ID,
			Name:        skill.Name,
			Description: skill.Description,
			Examples:    append([]string(nil), skill.Examples...),
		})
		for _, tag := range skill.Tags {
			if !seen[tag] {
				seen[tag] = true
				desc.Tags = append(desc.Tags, tag)
			}
		}
	}
	return desc
}

// SearchText returns the lowercased concatenation of the descriptor's
// description, skill text, and tags, the corpus the keyword matcher scans.
func (d *AgentDescriptor) SearchText() string {
	var b strings.Builder
	b.WriteString(d.Description)
	for _, skill := range d.Skills {
		b.WriteByte(' ')
		b.WriteString(skill.Name)
		b.WriteByte(' ')
		b.WriteString(skill.Description)
		for _, ex := range skill.Examples {
			b.WriteByte(' ')
			b.WriteString(ex)
		}
	}
	for _, tag := range d.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	return strings.ToLower(b.String())
}

// NormalizeName converts an agent display name to a registry key: lowercase
// with spaces and hyphens collapsed to underscores.
func NormalizeName(display string) string {
	name := strings.ToLower(strings.TrimSpace(display))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}
