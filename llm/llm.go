// Package llm defines the classification backend used by the router: an
// opaque prompt-in, text-out call. Availability of a backend is an external
// precondition; absence degrades routing, it never fails it.
package llm

import (
	"context"
	"errors"
)

// Classification errors.
var (
	// ErrUnavailable indicates no backend is configured (for example,
	// missing credentials). Callers skip classification entirely.
	ErrUnavailable = errors.New("llm: backend unavailable")
	// ErrEmptyResponse indicates the backend returned no usable text.
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Classifier is a minimal text-generation backend: one prompt in, one text
// completion out.
type Classifier interface {
	// Classify sends the prompt and returns the raw completion text.
	Classify(ctx context.Context, prompt string) (string, error)
	// Name identifies the backend for logging.
	Name() string
}
