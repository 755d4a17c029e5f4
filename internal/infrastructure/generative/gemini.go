package generative

import (
	"context"
	"fmt"
	"strings"

	"github.com/reglet-dev/apmlc/internal/application/ports"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

var _ ports.GenerativeFallback = (*GeminiClient)(nil)

// GeminiClient calls Gemini through the Google GenAI SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini client for apiKey.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Name identifies the provider in consent prompts.
func (c *GeminiClient) Name() string {
	return "gemini (" + c.model + ")"
}

// Generate sends the prompt with the directives as system instruction.
func (c *GeminiClient) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.SystemDirectives != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemDirectives, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}
	return text, nil
}
