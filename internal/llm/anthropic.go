package llm

import (
	"context"
	"fmt"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

// Anthropic calls the Anthropic Messages API.
type Anthropic struct {
	apiKey string
	model  string
}

// NewAnthropic returns a new Anthropic client
func NewAnthropic(apiKey, model string) *Anthropic {
	return &Anthropic{apiKey: apiKey, model: model}
}

// Generate sends one prompt and returns the model's text reply.
func (a *Anthropic) Generate(ctx context.Context, req Request) (string, error) {
	settings := types.RequestSettings{
		Model:     a.model,
		MaxTokens: req.MaxTokens,
	}

	response, err := anthropic.PromptWithSettings(req.System, req.Prompt, "", a.apiKey, settings)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return response.Content[0].Text, nil
}
