// Package llm provides the text-generation clients behind the
// escalating answer tiers. A Client is a raw provider handle; the
// TextService wrappers in service.go add per-role timeouts and retry.
package llm

import "context"

// Client defines the interface for text-generation providers.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config selects and tunes a provider.
type Config struct {
	// Provider is one of "openai", "local" or "mock".
	Provider string
	// APIKey authenticates against hosted providers. Local endpoints
	// usually accept any non-empty value.
	APIKey string
	// BaseURL overrides the provider endpoint, e.g. an Ollama or
	// llama.cpp server speaking the OpenAI wire format.
	BaseURL string
	Model   string
	// Temperature defaults to 0.3: answers should restate data, not
	// get creative with it.
	Temperature float64
	MaxTokens   int
}
