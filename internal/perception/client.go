// Package perception turns a spoken utterance into an ordered list of tagged
// intents. The classification itself is delegated to an external language
// model; this package owns the client plumbing and the post-processing
// contract (segment splitting, vocabulary validation, fail-open fallback).
package perception

import "context"

// LLMClient is the minimal interface every model provider implements.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
