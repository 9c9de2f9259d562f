// Package router maps a free-text query onto exactly one discovered agent,
// or a terminal answer, through a strict fallback chain: list shortcut, LLM
// classification, keyword buckets, first available.
package router

// Method identifies which matching strategy produced a decision.
type Method string

const (
	// MethodList marks the list-agents shortcut.
	MethodList Method = "list"
	// MethodLLM marks an exact LLM classification match.
	MethodLLM Method = "llm"
	// MethodLLMPartial marks an LLM match resolved by substring.
	MethodLLMPartial Method = "llm_partial"
	// MethodKeyword marks the keyword bucket fallback.
	MethodKeyword Method = "keyword"
	// MethodFirstAvailable marks the last-resort first-agent fallback.
	MethodFirstAvailable Method = "first_available"
	// MethodNone marks the no-agent-available terminal outcome.
	MethodNone Method = "none"
)

// Decision is the ephemeral result of matching one query. Either Terminal
// is set and Answer carries the final text, or Agent names the selection to
// dispatch to.
type Decision struct {
	// Query is the original query text.
	Query string
	// Agent is the selected agent name; empty for terminal decisions.
	Agent string
	// Method records the strategy that produced this decision.
	Method Method
	// Terminal means the answer is final and no dispatch happens.
	Terminal bool
	// Answer is the final text for terminal decisions.
	Answer string
}
