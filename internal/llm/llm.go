package llm

import (
	"context"
	"fmt"
)

// Sampling is fixed across providers: low temperature for deterministic,
// data-bound answers, and a hard cap on reply length.
const (
	chatTemperature = 0.3
	maxOutputTokens = 1000
)

// Client is the external text-generation service. Chat sends exactly two
// conversational turns (the composed system prompt and the user's message)
// and returns the single textual reply verbatim.
type Client interface {
	Chat(ctx context.Context, systemPrompt, userMessage string) (string, error)
	Close()
}

// UpstreamError is the one failure category for the text-generation call.
// Network, auth, quota and malformed-response failures all collapse into it,
// with the underlying cause kept for diagnostics.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("answer generation failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
