package a2a

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Kind discriminator values carried by protocol objects.
const (
	KindMessage = "message"
	KindTask    = "task"
)

// Message roles.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Part is a single content part of a message or artifact. Only text parts
// are produced by this module; other kinds pass through untouched.
type Part struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

// TextPart creates a text part.
func TextPart(text string) Part {
	return Part{Kind: "text", Text: text}
}

// Message is the protocol message envelope.
type Message struct {
	Role      string `json:"role"`
	Parts     []Part `json:"parts"`
	MessageID string `json:"messageId"`
	Kind      string `json:"kind,omitempty"`
}

// NewUserMessage creates a user message carrying a single text part and a
// fresh unique message ID.
func NewUserMessage(text string) *Message {
	return &Message{
		Role:      RoleUser,
		Parts:     []Part{TextPart(text)},
		MessageID: uuid.New().String(),
		Kind:      KindMessage,
	}
}

// NewAgentMessage creates an agent reply message with a single text part.
func NewAgentMessage(text string) *Message {
	return &Message{
		Role:      RoleAgent,
		Parts:     []Part{TextPart(text)},
		MessageID: uuid.New().String(),
		Kind:      KindMessage,
	}
}

// Text returns the first text part of the message, or "" if none exists.
func (m *Message) Text() string {
	for _, p := range m.Parts {
		if p.Kind == "text" && p.Text != "" {
			return p.Text
		}
	}
	return ""
}

// Validate checks that an outgoing message carries text content.
func (m *Message) Validate() error {
	if m == nil || m.Text() == "" {
		return ErrEmptyMessage
	}
	return nil
}

// TaskState is the lifecycle state of a task.
type TaskState string

const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
)

// TaskStatus holds the current state of a task.
type TaskStatus struct {
	State TaskState `json:"state"`
}

// Artifact is an output produced by a task.
type Artifact struct {
	ArtifactID string `json:"artifactId"`
	Name       string `json:"name,omitempty"`
	Parts      []Part `json:"parts"`
}

// Task is the task/result structure an agent may return from a dispatch.
type Task struct {
	ID        string     `json:"id"`
	ContextID string     `json:"contextId,omitempty"`
	Status    TaskStatus `json:"status"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
	Kind      string     `json:"kind,omitempty"`
}

// NewCompletedTask wraps a single text reply in a completed task with one
// artifact, the shape the surrounding task plumbing expects.
func NewCompletedTask(contextID, text string) *Task {
	return &Task{
		ID:        uuid.New().String(),
		ContextID: contextID,
		Status:    TaskStatus{State: TaskStateCompleted},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "response",
				Parts:      []Part{TextPart(text)},
			},
		},
		Kind: KindTask,
	}
}

// sendRequest is the JSON-RPC envelope for message/send.
type sendRequest struct {
	JSONRPC string     `json:"jsonrpc"`
	ID      string     `json:"id"`
	Method  string     `json:"method"`
	Params  sendParams `json:"params"`
}

type sendParams struct {
	Message *Message `json:"message"`
}

// sendResponse is the JSON-RPC envelope of a message/send reply. Result is
// kept raw: its shape varies by agent and is decoded by ParseResult.
type sendResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
