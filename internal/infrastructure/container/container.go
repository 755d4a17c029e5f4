// Package container provides dependency injection for the application.
package container

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/reglet-dev/apmlc/internal/application/ports"
	"github.com/reglet-dev/apmlc/internal/application/services"
	"github.com/reglet-dev/apmlc/internal/domain/patterns"
	domainservices "github.com/reglet-dev/apmlc/internal/domain/services"
	"github.com/reglet-dev/apmlc/internal/infrastructure/generative"
	"github.com/reglet-dev/apmlc/internal/infrastructure/metrics"
	"github.com/reglet-dev/apmlc/internal/infrastructure/output"
	"github.com/reglet-dev/apmlc/internal/infrastructure/persistence/memory"
	"github.com/reglet-dev/apmlc/internal/infrastructure/prompt"
	"github.com/reglet-dev/apmlc/internal/infrastructure/redaction"
	"github.com/reglet-dev/apmlc/internal/infrastructure/system"
)

// Container holds all application dependencies.
type Container struct {
	systemCfg       *system.Config
	registry        *patterns.Registry
	redactor        *redaction.Redactor
	cache           *memory.ArtifactCache
	metrics         *metrics.Aggregator
	formatters      *output.FormatterFactory
	compileUseCase  *services.CompileDocumentUseCase
	batchUseCase    *services.BatchCompileUseCase
	analyzeUseCase  *services.AnalyzeDocumentUseCase
	validation      *services.ValidationRepairService
	logger          *slog.Logger
	fallbackEnabled bool
}

// Options configure the container. Non-zero fields override the config file.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string
	// Provider overrides fallback.provider
	Provider string
	// Model overrides fallback.model
	Model string
	// AssumeYes skips the consent prompt
	AssumeYes bool
	// DisableRepair turns off the repair call regardless of config
	DisableRepair bool
}

// DefaultConfigPath returns ~/.apmlc/config.yaml, or "" when the home directory is unknown.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".apmlc", "config.yaml")
}

// New creates a new dependency injection container.
func New(ctx context.Context, opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	configPath := opts.SystemConfigPath
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	systemCfg := system.DefaultConfig()
	if configPath != "" {
		loaded, err := system.NewConfigLoader().Load(configPath)
		if err != nil {
			return nil, err
		}
		systemCfg = loaded
	}
	if opts.Provider != "" {
		systemCfg.Fallback.Provider = opts.Provider
	}
	if opts.Model != "" {
		systemCfg.Fallback.Model = opts.Model
	}

	runtime, err := systemCfg.RuntimeTarget()
	if err != nil {
		return nil, err
	}
	fallbackTimeout, err := systemCfg.FallbackTimeout()
	if err != nil {
		return nil, err
	}
	repairTimeout, err := systemCfg.RepairTimeout()
	if err != nil {
		return nil, err
	}

	redactor, err := redaction.New(redaction.Config{
		Patterns:        systemCfg.Redaction.Patterns,
		HashMode:        systemCfg.Redaction.HashMode.Enabled,
		Salt:            systemCfg.Redaction.HashMode.Salt,
		DisableGitleaks: systemCfg.Redaction.DisableGitleaks,
		Logger:          opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	backend, err := generative.New(ctx, generative.Config{
		Provider:   systemCfg.Fallback.Provider,
		Model:      systemCfg.Fallback.Model,
		APIKeyEnv:  systemCfg.Fallback.APIKeyEnv,
		BaseURL:    systemCfg.Fallback.BaseURL,
		StaticFile: systemCfg.Fallback.StaticFile,
		Timeout:    fallbackTimeout,
		MaxRetries: systemCfg.Fallback.MaxRetries,
	}, opts.Logger)
	if err != nil {
		return nil, err
	}

	// A static backend replays canned app code and cannot repair documents.
	var repairer ports.RepairCapability
	if backend != nil && systemCfg.Repair.Enabled && !opts.DisableRepair &&
		systemCfg.Fallback.Provider != generative.ProviderStatic {
		repairer = backend
	}

	var consent ports.ConsentPrompter
	if backend != nil && systemCfg.Fallback.RequireConsent {
		consent = prompt.NewConsentPrompter(opts.AssumeYes, opts.Logger)
	}

	registry := patterns.NewDefaultRegistry()
	detector := domainservices.NewIssueDetector()
	parser := domainservices.NewDocumentParser()
	analyzer := domainservices.NewPatternAnalyzer(registry)

	validation := services.NewValidationRepairService(
		detector,
		repairer,
		redactor,
		systemCfg.Repair.MaxTokens,
		repairTimeout,
		opts.Logger,
	)

	fallback := services.NewFallbackAdapter(
		backend,
		redactor,
		services.DefaultStyleGuide(runtime.Marker()),
		systemCfg.Fallback.MaxTokens,
		systemCfg.Fallback.MaxPromptChars,
		opts.Logger,
	)

	cache := memory.NewArtifactCache(systemCfg.History.Limit)
	aggregator := metrics.NewAggregator()

	compileUseCase := services.NewCompileDocumentUseCase(
		validation,
		parser,
		analyzer,
		domainservices.NewRuleBasedGenerator(registry),
		domainservices.NewArtifactAssembler(registry, runtime),
		fallback,
		domainservices.NewConsistencyEnforcer(runtime),
		cache,
		aggregator,
		consent,
		fallbackTimeout,
		opts.Logger,
	)

	opts.Logger.Debug("container initialized",
		"provider", systemCfg.Fallback.Provider,
		"runtime", runtime.Marker(),
		"repair", repairer != nil,
		"patterns", len(registry.IDs()))

	return &Container{
		systemCfg:       systemCfg,
		registry:        registry,
		redactor:        redactor,
		cache:           cache,
		metrics:         aggregator,
		formatters:      output.NewFormatterFactory(),
		compileUseCase:  compileUseCase,
		batchUseCase:    services.NewBatchCompileUseCase(compileUseCase, opts.Logger),
		analyzeUseCase:  services.NewAnalyzeDocumentUseCase(detector, parser, analyzer, opts.Logger),
		validation:      validation,
		logger:          opts.Logger,
		fallbackEnabled: backend != nil,
	}, nil
}

// CompileUseCase returns the single-document compile use case.
func (c *Container) CompileUseCase() *services.CompileDocumentUseCase {
	return c.compileUseCase
}

// BatchCompileUseCase returns the batch compile use case.
func (c *Container) BatchCompileUseCase() *services.BatchCompileUseCase {
	return c.batchUseCase
}

// AnalyzeUseCase returns the analyze use case.
func (c *Container) AnalyzeUseCase() *services.AnalyzeDocumentUseCase {
	return c.analyzeUseCase
}

// Validation returns the validation and repair service.
func (c *Container) Validation() *services.ValidationRepairService {
	return c.validation
}

// Registry returns the pattern registry.
func (c *Container) Registry() *patterns.Registry {
	return c.registry
}

// Redactor returns the secret scrubber.
func (c *Container) Redactor() *redaction.Redactor {
	return c.redactor
}

// Cache returns the session artifact cache.
func (c *Container) Cache() *memory.ArtifactCache {
	return c.cache
}

// Metrics returns the compile metrics aggregator.
func (c *Container) Metrics() *metrics.Aggregator {
	return c.metrics
}

// Formatters returns the output formatter factory.
func (c *Container) Formatters() ports.FormatterFactory {
	return c.formatters
}

// FallbackEnabled reports whether a generative backend is configured.
func (c *Container) FallbackEnabled() bool {
	return c.fallbackEnabled
}

// Parallelism returns the configured batch parallelism.
func (c *Container) Parallelism() int {
	return c.systemCfg.Batch.Parallelism
}

// FallbackTimeout returns the configured fallback timeout, 0 when unset.
func (c *Container) FallbackTimeout() time.Duration {
	d, _ := c.systemCfg.FallbackTimeout() // validated in New
	return d
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
