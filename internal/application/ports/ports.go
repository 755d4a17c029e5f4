// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

// GenerationRequest is the bounded request sent to a generative backend.
type GenerationRequest struct {
	Prompt           string
	SystemDirectives string
	MaxTokens        int
}

// GenerativeFallback produces application code for components the rule-based
// generators cannot handle. The response is opaque text; callers extract markup.
type GenerativeFallback interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// RepairCapability rewrites malformed APML. The response is corrected APML only.
type RepairCapability interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// ArtifactCache keeps the latest artifact per session. Last writer wins.
type ArtifactCache interface {
	Put(ctx context.Context, sessionID string, artifact *entities.CompilationArtifact) error
	Get(ctx context.Context, sessionID string) (*entities.CompilationArtifact, bool, error)
	History(ctx context.Context, sessionID string) ([]*entities.CompilationArtifact, error)
}

// MetricsSink accumulates per-compile metrics outside the core.
type MetricsSink interface {
	Record(m dto.CompileMetrics)
}

// TextScrubber removes secrets from text bound for external services.
type TextScrubber interface {
	Scrub(text string) string
}

// ConsentPrompter asks the user before a document leaves the machine.
type ConsentPrompter interface {
	ConfirmExternalCall(ctx context.Context, provider string) (bool, error)
}

// OutputFormatter formats compile results.
type OutputFormatter interface {
	Format(resp *dto.CompileResponse) error
}

// ReportFormatter formats validation and analysis reports.
type ReportFormatter interface {
	FormatReport(resp *dto.AnalyzeResponse) error
}

// FormatterFactory builds formatters for a named output format.
type FormatterFactory interface {
	Create(format string, w io.Writer) (OutputFormatter, error)
	CreateReport(format string, w io.Writer) (ReportFormatter, error)
}
