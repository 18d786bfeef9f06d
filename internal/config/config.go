package config

import (
	"fmt"
	"os"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultProvider       = "anthropic"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultGeminiModel    = "gemini-2.0-flash"
	DefaultOpenAIModel    = "gpt-4o"
	DefaultOllamaModel    = "mistral-small3.2:24b"
	DefaultOllamaURL      = "http://localhost:11434"
)

// Config carries every externally supplied setting. It is built once by
// Load and passed to the components that need it; nothing else reads the
// environment.
type Config struct {
	NotionAPIKey     string
	NotionDatabaseID string

	// Provider selects the text-generation backend: "anthropic", "gemini",
	// "openai", or "ollama".
	Provider        string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	OllamaURL       string
	OllamaModel     string

	// HardcoverToken is optional; without it the Hardcover source is
	// simply not registered.
	HardcoverToken string

	// SlackWebhookURL is optional; without it the run summary is skipped.
	SlackWebhookURL string

	// RunLogURL links to the CI execution log, empty outside CI.
	RunLogURL string
}

// Load reads the environment into a Config and validates the keys every
// command needs.
func Load() (*Config, error) {
	cfg := &Config{
		NotionAPIKey:     os.Getenv("NOTION_API_KEY"),
		NotionDatabaseID: os.Getenv("NOTION_DATABASE_ID"),
		Provider:         os.Getenv("DESCRIBER_LLM_PROVIDER"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:   os.Getenv("ANTHROPIC_MODEL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		OllamaURL:        os.Getenv("OLLAMA_URL"),
		OllamaModel:      os.Getenv("OLLAMA_MODEL"),
		HardcoverToken:   os.Getenv("HARDCOVER_API_TOKEN"),
		SlackWebhookURL:  os.Getenv("SLACK_WEBHOOK_URL"),
		RunLogURL:        runLogURL(),
	}

	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.AnthropicModel == "" {
		cfg.AnthropicModel = DefaultAnthropicModel
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = DefaultGeminiModel
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = DefaultOpenAIModel
	}
	if cfg.OllamaModel == "" {
		cfg.OllamaModel = DefaultOllamaModel
	}
	if cfg.OllamaURL == "" {
		cfg.OllamaURL = DefaultOllamaURL
	}

	if cfg.NotionAPIKey == "" {
		return nil, fmt.Errorf("NOTION_API_KEY not set")
	}
	if cfg.NotionDatabaseID == "" {
		return nil, fmt.Errorf("NOTION_DATABASE_ID not set")
	}

	return cfg, nil
}

// runLogURL composes a link to the workflow run when executing in GitHub
// Actions, where all three variables are present.
func runLogURL() string {
	server := os.Getenv("GITHUB_SERVER_URL")
	repo := os.Getenv("GITHUB_REPOSITORY")
	runID := os.Getenv("GITHUB_RUN_ID")
	if server == "" || repo == "" || runID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/actions/runs/%s", server, repo, runID)
}
