// Package llm defines the language-model collaborator boundary. The episode
// controller hands the client one or more rendered prompts and receives a
// single raw text response; everything beyond that request/response exchange
// is out of scope for the harness core.
package llm

import "context"

// Client is the LLM collaborator interface.
type Client interface {
	// Complete sends the rendered prompts, in order, and returns the
	// model's raw text response. The first prompt is treated as the
	// system prompt by implementations that distinguish roles.
	Complete(ctx context.Context, prompts []string) (string, error)
}
