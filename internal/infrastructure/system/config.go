// Package system loads the apmlc configuration file (~/.apmlc/config.yaml).
package system

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	apperrors "github.com/reglet-dev/apmlc/internal/application/errors"
	"github.com/reglet-dev/apmlc/internal/domain/values"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema []byte

// Config is the global configuration file.
type Config struct {
	Runtime   RuntimeConfig   `yaml:"runtime"`
	Fallback  FallbackConfig  `yaml:"fallback"`
	Repair    RepairConfig    `yaml:"repair"`
	Redaction RedactionConfig `yaml:"redaction"`
	Batch     BatchConfig     `yaml:"batch"`
	History   HistoryConfig   `yaml:"history"`
}

// RuntimeConfig pins the UI runtime referenced by generated artifacts.
type RuntimeConfig struct {
	Package string `yaml:"package"`
	Version string `yaml:"version"`
}

// FallbackConfig selects the generative backend.
type FallbackConfig struct {
	// Provider is one of "none", "anthropic", "gemini" or "static"
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKeyEnv  string `yaml:"api_key_env"`
	BaseURL    string `yaml:"base_url"`
	StaticFile string `yaml:"static_file"`
	// Timeout bounds one fallback call, e.g. "60s"
	Timeout        string `yaml:"timeout"`
	MaxTokens      int    `yaml:"max_tokens"`
	MaxPromptChars int    `yaml:"max_prompt_chars"`
	MaxRetries     int    `yaml:"max_retries"`
	RequireConsent bool   `yaml:"require_consent"`
}

// RepairConfig controls the one-shot repair of malformed documents.
// Repair uses the fallback provider.
type RepairConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Timeout   string `yaml:"timeout"`
	MaxTokens int    `yaml:"max_tokens"`
}

// RedactionConfig configures secret scrubbing of text sent to backends.
type RedactionConfig struct {
	HashMode        HashModeConfig `yaml:"hash_mode"`
	Patterns        []string       `yaml:"patterns"`
	DisableGitleaks bool           `yaml:"disable_gitleaks"`
}

// HashModeConfig controls hash-based redaction.
type HashModeConfig struct {
	Salt    string `yaml:"salt"`
	Enabled bool   `yaml:"enabled"`
}

// BatchConfig bounds concurrent compilation.
type BatchConfig struct {
	Parallelism int `yaml:"parallelism"`
}

// HistoryConfig bounds the per-session artifact history.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// DefaultConfig returns a Config with safe defaults for all fields.
// The fallback is off until a provider is configured.
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{Package: "vue", Version: "3"},
		Fallback: FallbackConfig{
			Provider:       "none",
			Timeout:        "60s",
			MaxTokens:      4000,
			MaxPromptChars: 16000,
			MaxRetries:     3,
			RequireConsent: true,
		},
		Repair: RepairConfig{
			Enabled:   true,
			Timeout:   "30s",
			MaxTokens: 2000,
		},
		Redaction: RedactionConfig{Patterns: []string{}},
		Batch:     BatchConfig{Parallelism: 4},
		History:   HistoryConfig{Limit: 20},
	}
}

// RuntimeTarget returns the validated runtime target.
func (c *Config) RuntimeTarget() (values.RuntimeTarget, error) {
	rt, err := values.NewRuntimeTarget(c.Runtime.Package, c.Runtime.Version)
	if err != nil {
		return values.RuntimeTarget{}, apperrors.NewConfigurationError("runtime", err.Error(), err)
	}
	return rt, nil
}

// FallbackTimeout parses fallback.timeout. Empty means no limit.
func (c *Config) FallbackTimeout() (time.Duration, error) {
	return parseDuration("fallback.timeout", c.Fallback.Timeout)
}

// RepairTimeout parses repair.timeout. Empty means no limit.
func (c *Config) RepairTimeout() (time.Duration, error) {
	return parseDuration("repair.timeout", c.Repair.Timeout)
}

func parseDuration(aspect, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, apperrors.NewConfigurationError(aspect, fmt.Sprintf("invalid duration %q", s), err)
	}
	return d, nil
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// Load reads, validates and decodes the file at path over DefaultConfig().
// A missing file yields DefaultConfig().
func (l *ConfigLoader) Load(path string) (*Config, error) {
	//nolint:gosec // G304: path is the user-provided config file
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, apperrors.NewConfigurationError("file", "failed to read system config", err)
	}
	return l.Parse(data)
}

// Parse validates and decodes YAML config bytes over DefaultConfig().
func (l *ConfigLoader) Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := validateSchema(data); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.NewConfigurationError("file", "failed to parse system config", err)
	}

	if _, err := cfg.RuntimeTarget(); err != nil {
		return nil, err
	}
	if _, err := cfg.FallbackTimeout(); err != nil {
		return nil, err
	}
	if _, err := cfg.RepairTimeout(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateSchema(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return apperrors.NewConfigurationError("file", "failed to parse system config", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return apperrors.NewConfigurationError("file", "failed to decode system config", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("config.schema.json", bytes.NewReader(configSchema)); err != nil {
		return fmt.Errorf("failed to add config schema: %w", err)
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return apperrors.NewConfigurationError("schema", formatSchemaValidationError(verr), err)
		}
		return apperrors.NewConfigurationError("schema", "config validation failed", err)
	}
	return nil
}

// formatSchemaValidationError flattens nested schema errors into one message.
func formatSchemaValidationError(err *jsonschema.ValidationError) string {
	var messages []string
	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 && e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return "config validation failed"
	}
	return strings.Join(messages, "; ")
}
