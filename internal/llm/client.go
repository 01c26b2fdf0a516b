// Package llm provides the chat model backends behind one synchronous
// interface.
package llm

import "context"

// Message is one entry of the model prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client generates a reply for an ordered message list. A call may block
// for tens of seconds; callers apply their own timeout via ctx.
// Implementations over a single backend connection serialize calls
// internally.
type Client interface {
	Generate(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error)
}
