package llm

import (
	"fmt"
	"strings"
)

// NewClient creates a raw client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "local":
		// A local OpenAI-compatible server. No real key is needed but
		// the wire format requires one.
		if cfg.APIKey == "" {
			cfg.APIKey = "local"
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:11434/v1"
		}
		return newOpenAIClient(cfg)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
