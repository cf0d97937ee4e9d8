package perception

import (
	"context"
	"fmt"
	"time"
)

// ClientOptions selects and configures a model provider.
type ClientOptions struct {
	Provider string // groq, openai, gemini
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewClient builds an LLMClient for the configured provider. Unknown
// providers are an error rather than a silent default so a config typo
// surfaces at startup.
func NewClient(ctx context.Context, opts ClientOptions) (LLMClient, error) {
	switch opts.Provider {
	case "", "groq":
		config := DefaultOpenAIConfig(opts.APIKey)
		applyOverrides(&config, opts)
		return NewOpenAIClientWithConfig(config), nil
	case "openai":
		config := DefaultOpenAIConfig(opts.APIKey)
		config.BaseURL = "https://api.openai.com/v1"
		config.Model = "gpt-4o-mini"
		applyOverrides(&config, opts)
		return NewOpenAIClientWithConfig(config), nil
	case "gemini":
		return NewGeminiClient(ctx, opts.APIKey, opts.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", opts.Provider)
	}
}

func applyOverrides(config *OpenAIConfig, opts ClientOptions) {
	if opts.Model != "" {
		config.Model = opts.Model
	}
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	if opts.Timeout > 0 {
		config.Timeout = opts.Timeout
	}
}
