package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/reglet-dev/apmlc/internal/application/ports"
)

const (
	// DefaultAnthropicBaseURL is the public Messages API root.
	DefaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	// DefaultAnthropicModel is used when no model is configured.
	DefaultAnthropicModel = "claude-sonnet-4-5"
	anthropicVersion      = "2023-06-01"
)

var _ ports.GenerativeFallback = (*AnthropicClient)(nil)

// AnthropicConfig configures the Anthropic Messages API client.
type AnthropicConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Temperature    float64
	Logger         *slog.Logger
}

// DefaultAnthropicConfig returns sensible defaults.
func DefaultAnthropicConfig(apiKey string) AnthropicConfig {
	return AnthropicConfig{
		APIKey:         apiKey,
		BaseURL:        DefaultAnthropicBaseURL,
		Model:          DefaultAnthropicModel,
		Timeout:        2 * time.Minute,
		MaxRetries:     3,
		InitialBackoff: time.Second,
		MaxBackoff:     10 * time.Second,
		Temperature:    0.1,
	}
}

// AnthropicClient calls the Messages API over HTTP.
type AnthropicClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	cfg        AnthropicConfig
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewAnthropicClient creates a client. Zero fields in cfg take their defaults.
func NewAnthropicClient(cfg AnthropicConfig) *AnthropicClient {
	def := DefaultAnthropicConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &AnthropicClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		cfg:        cfg,
	}
}

// Name identifies the provider in consent prompts.
func (c *AnthropicClient) Name() string {
	return "anthropic (" + c.cfg.Model + ")"
}

// Generate sends one message and returns the concatenated text blocks.
// Rate limits, server errors and transient network errors are retried with exponential backoff.
func (c *AnthropicClient) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("anthropic API key not configured")
	}

	body, err := json.Marshal(anthropicRequest{
		Model:       c.cfg.Model,
		MaxTokens:   req.MaxTokens,
		System:      req.SystemDirectives,
		Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt}},
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := CalculateBackoff(BackoffExponential, attempt, c.cfg.InitialBackoff, c.cfg.MaxBackoff)
			c.logger.Debug("retrying anthropic request", "attempt", attempt, "delay", delay, "error", lastErr)
			if err := sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		text, err := c.send(ctx, body)
		if err == nil {
			c.logger.Debug("anthropic request complete", "duration", time.Since(start), "response_len", len(text))
			return text, nil
		}
		if !isTransientError(err) {
			return "", err
		}
		lastErr = err
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *AnthropicClient) send(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("API error: %s", parsed.Error.Message)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("no completion returned")
	}
	return text, nil
}
