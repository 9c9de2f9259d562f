package a2a

import (
	"encoding/json"
	"testing"
)

func TestParseResult_TaskKind(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "task-1",
		"contextId": "ctx-1",
		"status": {"state": "completed"},
		"artifacts": [
			{"artifactId": "a-1", "name": "response", "parts": [{"kind": "text", "text": "The current time is 2025-01-01 12:00:00."}]}
		],
		"kind": "task"
	}`)

	result := ParseResult(raw)
	if result.Kind != ResultKindTask {
		t.Fatalf("expected task kind, got %s", result.Kind)
	}
	if got := result.Text(); got != "The current time is 2025-01-01 12:00:00." {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestParseResult_MessageKind(t *testing.T) {
	raw := json.RawMessage(`{
		"role": "agent",
		"parts": [{"kind": "text", "text": "Hello there!"}],
		"messageId": "m-1",
		"kind": "message"
	}`)

	result := ParseResult(raw)
	if result.Kind != ResultKindMessage {
		t.Fatalf("expected message kind, got %s", result.Kind)
	}
	if got := result.Text(); got != "Hello there!" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestParseResult_UnknownKindIsOpaque(t *testing.T) {
	raw := json.RawMessage(`{"kind": "mystery", "payload": 42}`)

	result := ParseResult(raw)
	if result.Kind != ResultKindOpaque {
		t.Fatalf("expected opaque kind, got %s", result.Kind)
	}
	if got := result.Text(); got == "" {
		t.Error("opaque result must still render non-empty text")
	}
}

func TestParseResult_MissingKindIsOpaque(t *testing.T) {
	raw := json.RawMessage(`{"answer": "yes"}`)

	result := ParseResult(raw)
	if result.Kind != ResultKindOpaque {
		t.Fatalf("expected opaque kind, got %s", result.Kind)
	}
}

func TestSendResult_TextNeverEmpty(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"task without artifacts", `{"id": "t", "status": {"state": "completed"}, "kind": "task"}`},
		{"task with non-text parts", `{"id": "t", "status": {"state": "completed"}, "artifacts": [{"artifactId": "a", "parts": [{"kind": "data"}]}], "kind": "task"}`},
		{"message without text", `{"role": "agent", "parts": [], "messageId": "m", "kind": "message"}`},
		{"opaque object", `{"weird": true}`},
		{"non-json payload", `not json at all`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseResult(json.RawMessage(tc.raw))
			if got := result.Text(); got == "" {
				t.Errorf("Text() returned empty string for %s", tc.name)
			}
		})
	}
}

func TestSendResult_TextEmptyRawPlaceholder(t *testing.T) {
	result := ParseResult(nil)
	if got := result.Text(); got != "(empty result)" {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestSendResult_TextPicksFirstArtifactFirstTextPart(t *testing.T) {
	task := &Task{
		ID:     "t",
		Status: TaskStatus{State: TaskStateCompleted},
		Artifacts: []Artifact{
			{ArtifactID: "a-1", Parts: []Part{{Kind: "data"}, TextPart("first"), TextPart("second")}},
			{ArtifactID: "a-2", Parts: []Part{TextPart("third")}},
		},
		Kind: KindTask,
	}
	raw, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	result := ParseResult(raw)
	if got := result.Text(); got != "first" {
		t.Errorf("expected first text part of first artifact, got %q", got)
	}
}
