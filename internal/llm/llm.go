package llm

import (
	"context"
	"fmt"

	"github.com/shelftools/describer/internal/config"
)

// Request is a single text-generation call.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Client generates text from a prompt. Implementations wrap one upstream
// model API.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// New returns the Client for the configured provider.
func New(cfg *config.Config) (Client, error) {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case "ollama":
		return NewOllama(cfg.OllamaURL, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
