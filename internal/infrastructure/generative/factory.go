// Package generative provides backends for the generative fallback and repair ports.
package generative

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/reglet-dev/apmlc/internal/application/ports"
)

// Providers
const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderStatic    = "static"
)

// Config selects and configures a backend.
type Config struct {
	Provider   string
	Model      string
	APIKey     string
	APIKeyEnv  string
	BaseURL    string
	StaticFile string
	Timeout    time.Duration
	MaxRetries int
}

// apiKey prefers the explicit key, then the configured environment variable,
// then the provider's conventional variable.
func (c Config) apiKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	switch c.Provider {
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	case ProviderGemini:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_API_KEY")
	}
	return ""
}

// New creates the backend named by cfg.Provider. ProviderNone and "" yield nil.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (ports.GenerativeFallback, error) {
	switch cfg.Provider {
	case "", ProviderNone:
		return nil, nil
	case ProviderAnthropic:
		key := cfg.apiKey()
		if key == "" {
			return nil, fmt.Errorf("anthropic provider selected but no API key is set")
		}
		ac := DefaultAnthropicConfig(key)
		ac.Model = cfg.Model
		ac.BaseURL = cfg.BaseURL
		ac.Timeout = cfg.Timeout
		if cfg.MaxRetries > 0 {
			ac.MaxRetries = cfg.MaxRetries
		}
		ac.Logger = logger
		return NewAnthropicClient(ac), nil
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.apiKey(), cfg.Model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderStatic:
		backend, err := NewStaticBackend(cfg.StaticFile)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown generative provider %q (expected none, anthropic, gemini or static)", cfg.Provider)
	}
}
