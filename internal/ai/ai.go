// Package ai generates job descriptions through a text-generation provider.
package ai

import "context"

// Usage is the provider's token accounting for one call.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Client abstracts the text-generation provider. Implementations send the
// system instruction and user prompt and return the generated text verbatim.
type Client interface {
	Generate(ctx context.Context, system, prompt string) (string, Usage, error)
}
