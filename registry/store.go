package registry

import (
	"fmt"
	"strings"
	"sync"
)

// NoAgentsSentinel is the digest returned when the store is empty.
const NoAgentsSentinel = "No agents available."

// maxPromptExamples bounds the examples rendered per skill in the digest.
const maxPromptExamples = 3

// Store holds the discovered agent descriptors in insertion order. A Store
// is built once by discovery and read-only afterwards; refresh replaces the
// whole store rather than mutating it, so in-flight readers always observe
// a consistent snapshot.
type Store struct {
	order       []string
	descriptors map[string]*AgentDescriptor

	// digest is built lazily on first use and safe for concurrent readers.
	digestOnce sync.Once
	digest     string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{descriptors: make(map[string]*AgentDescriptor)}
}

// Add appends a descriptor under its name. Adding a duplicate name returns
// an error; discovery deduplicates names before it gets here.
func (s *Store) Add(desc *AgentDescriptor) error {
	if desc == nil || desc.Name == "" {
		return fmt.Errorf("registry: invalid descriptor")
	}
	if _, exists := s.descriptors[desc.Name]; exists {
		return fmt.Errorf("registry: agent %s already present", desc.Name)
	}
	s.order = append(s.order, desc.Name)
	s.descriptors[desc.Name] = desc
	return nil
}

// Get returns the descriptor for name, or nil when absent.
func (s *Store) Get(name string) *AgentDescriptor {
	return s.descriptors[name]
}

// Has reports whether name is present.
func (s *Store) Has(name string) bool {
	_, ok := s.descriptors[name]
	return ok
}

// Len returns the number of descriptors.
func (s *Store) Len() int { return len(s.order) }

// Names returns the agent names in insertion order.
func (s *Store) Names() []string {
	return append([]string(nil), s.order...)
}

// All returns the descriptors in insertion order.
func (s *Store) All() []*AgentDescriptor {
	out := make([]*AgentDescriptor, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.descriptors[name])
	}
	return out
}

// First returns the first descriptor in insertion order, or nil when empty.
func (s *Store) First() *AgentDescriptor {
	if len(s.order) == 0 {
		return nil
	}
	return s.descriptors[s.order[0]]
}

// DescribeForPrompt renders the store as a textual digest: each agent's
// name and description, its skills, and up to three examples per skill. The
// same text serves the list-agents answer and the LLM classification
// context. Returns NoAgentsSentinel when the store is empty; never errors.
func (s *Store) DescribeForPrompt() string {
	if len(s.order) == 0 {
		return NoAgentsSentinel
	}

	s.digestOnce.Do(func() {
		var b strings.Builder
		b.WriteString("Available agents:\n")
		for _, name := range s.order {
			desc := s.descriptors[name]
			fmt.Fprintf(&b, "\n- **%s**: %s\n", name, desc.Description)
			if len(desc.Skills) > 0 {
				b.WriteString("  Skills:\n")
				for _, skill := range desc.Skills {
					fmt.Fprintf(&b, "    - %s: %s\n", skill.Name, skill.Description)
					if len(skill.Examples) > 0 {
						examples := skill.Examples
						if len(examples) > maxPromptExamples {
							examples = examples[:maxPromptExamples]
						}
						fmt.Fprintf(&b, "      Examples: %s\n", strings.Join(examples, ", "))
					}
				}
			}
		}
		s.digest = b.String()
	})
	return s.digest
}
