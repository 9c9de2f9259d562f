package a2a

import "errors"

// Agent card validation errors.
var (
	// ErrMissingName indicates the agent card is missing a name.
	ErrMissingName = errors.New("agent card: missing name")
	// ErrMissingDescription indicates the agent card is missing a description.
	ErrMissingDescription = errors.New("agent card: missing description")
	// ErrMissingURL indicates the agent card is missing a URL.
	ErrMissingURL = errors.New("agent card: missing url")
)

// Protocol errors.
var (
	// ErrRemoteUnavailable indicates the remote agent could not be reached.
	ErrRemoteUnavailable = errors.New("a2a: remote agent unavailable")
	// ErrInvalidResponse indicates the remote agent returned a malformed body.
	ErrInvalidResponse = errors.New("a2a: invalid response")
	// ErrRPC indicates the remote agent returned a JSON-RPC error object.
	ErrRPC = errors.New("a2a: rpc error")
	// ErrEmptyMessage indicates an outgoing message has no text content.
	ErrEmptyMessage = errors.New("a2a: empty message")
)
