package a2a

import (
	"bytes"
	"encoding/json"
)

// ResultKind identifies the decoded shape of a dispatch result.
type ResultKind string

const (
	// ResultKindTask means the agent returned an artifact-bearing task.
	ResultKindTask ResultKind = "task"
	// ResultKindMessage means the agent returned a bare message.
	ResultKindMessage ResultKind = "message"
	// ResultKindOpaque means the result matched neither known shape.
	ResultKindOpaque ResultKind = "opaque"
)

// SendResult is the tagged decoding of a message/send reply. Exactly one of
// Task and Message is set for the corresponding kind; Raw always holds the
// original result bytes.
type SendResult struct {
	Kind    ResultKind
	Task    *Task
	Message *Message
	Raw     json.RawMessage
}

// ParseResult decodes a raw JSON-RPC result into a SendResult. The shape is
// chosen by the "kind" discriminator; a missing or unknown discriminator
// yields an opaque result rather than an error, so callers never branch on
// response shape themselves.
func ParseResult(raw json.RawMessage) *SendResult {
	res := &SendResult{Kind: ResultKindOpaque, Raw: raw}

	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return res
	}

	switch probe.Kind {
	case KindTask:
		var task Task
		if err := json.Unmarshal(raw, &task); err == nil {
			res.Kind = ResultKindTask
			res.Task = &task
		}
	case KindMessage:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err == nil {
			res.Kind = ResultKindMessage
			res.Message = &msg
		}
	}
	return res
}

// Text normalizes the result into a single string: the first text part of
// the first artifact when present, the message text for bare messages, and
// a compact rendering of the raw result otherwise. Never returns "".
func (r *SendResult) Text() string {
	switch r.Kind {
	case ResultKindTask:
		for _, artifact := range r.Task.Artifacts {
			for _, part := range artifact.Parts {
				if part.Kind == "text" && part.Text != "" {
					return part.Text
				}
			}
		}
		return renderRaw(r.Raw)
	case ResultKindMessage:
		if text := r.Message.Text(); text != "" {
			return text
		}
		return renderRaw(r.Raw)
	default:
		return renderRaw(r.Raw)
	}
}

// renderRaw compacts raw JSON for display; falls back to the raw bytes when
// the payload is not valid JSON, and to a placeholder when empty.
func renderRaw(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "(empty result)"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
