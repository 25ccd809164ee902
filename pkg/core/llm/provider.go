package llm

import (
	"context"
)

// Provider is the interface for all LLM providers. One synchronous text
// request, one text response; callers bound the call with the context.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
