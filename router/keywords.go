package router

import "strings"

// listCommands are the control phrases that trigger the list-agents
// shortcut instead of routing.
var listCommands = map[string]bool{
	"list":        true,
	"agents":      true,
	"list agents": true,
	"show agents": true,
}

// IsListCommand reports whether the query is a list-agents control phrase.
func IsListCommand(query string) bool {
	return listCommands[strings.ToLower(strings.TrimSpace(query))]
}

// keywordBucket pairs the keywords that classify a query with the keywords
// a descriptor must advertise to serve that topic.
type keywordBucket struct {
	name       string
	query      []string
	descriptor []string
}

// keywordBuckets are tried in order; the first bucket whose query keywords
// match classifies the query.
var keywordBuckets = []keywordBucket{
	{
		name:       "time",
		query:      []string{"time", "clock", "hour", "when", "minute"},
		descriptor: []string{"time", "clock", "current"},
	},
	{
		name:       "greeting",
		query:      []string{"hello", "hi", "greet", "how are you", "good morning"},
		descriptor: []string{"greet", "friendly", "conversation", "hello"},
	},
	{
		name:       "research",
		query:      []string{"paper", "arxiv", "research", "article", "publication"},
		descriptor: []string{"paper", "arxiv", "research", "scientific"},
	},
}

// containsAny reports whether text contains any of the keywords.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// matchBucket returns the first bucket classifying the query, or nil.
func matchBucket(queryLower string) *keywordBucket {
	for i := range keywordBuckets {
		if containsAny(queryLower, keywordBuckets[i].query) {
			return &keywordBuckets[i]
		}
	}
	return nil
}
