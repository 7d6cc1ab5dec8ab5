// Package genclient abstracts the external answer-generation backend behind
// a small Driver interface, with credential rotation, model-size fallback,
// and bounded retries layered on top of whichever Driver is configured.
package genclient

import (
	"context"
)

// Prompt is the fully-assembled text handed to the generator, along with the
// model size to request. RotatingDriver overwrites ModelSize with each entry
// of its own fallback list in turn.
type Prompt struct {
	Text      string
	ModelSize string
}

// Driver generates a completion for a prompt. Implementations are free to
// call out to any backend; the default implementation is an HTTP client.
type Driver interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
