package dto

import (
	"time"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

// CompileResponse contains the result of compiling one document.
type CompileResponse struct {
	// Artifact is the compiled output; never nil on success
	Artifact *entities.CompilationArtifact `json:"artifact" yaml:"artifact"`

	// Analysis is the pattern classification that chose the strategy
	Analysis *entities.AnalysisResult `json:"analysis" yaml:"analysis"`

	// Issues found before parsing (repaired documents keep the original list)
	Issues []entities.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`

	// ComponentErrors are component-scoped generation failures
	ComponentErrors []ComponentError `json:"component_errors,omitempty" yaml:"component_errors,omitempty"`

	// Warnings are non-fatal problems such as a degraded fallback
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	Metrics  CompileMetrics   `json:"metrics" yaml:"metrics"`
	Metadata ResponseMetadata `json:"metadata" yaml:"metadata"`
}

// ComponentError is a serializable component-scoped failure.
type ComponentError struct {
	Component string   `json:"component" yaml:"component"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message   string   `json:"message" yaml:"message"`
	Fields    []string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// CompileMetrics describes one compile call.
type CompileMetrics struct {
	Strategy        values.Strategy `json:"strategy" yaml:"strategy"`
	Components      int             `json:"components" yaml:"components"`
	Known           int             `json:"known" yaml:"known"`
	Unknown         int             `json:"unknown" yaml:"unknown"`
	Duration        time.Duration   `json:"duration" yaml:"duration"`
	FallbackCalled  bool            `json:"fallback_called" yaml:"fallback_called"`
	Repaired        bool            `json:"repaired" yaml:"repaired"`
	Degraded        bool            `json:"degraded" yaml:"degraded"`
	Failed          bool            `json:"failed" yaml:"failed"`
	ComponentErrors int             `json:"component_errors" yaml:"component_errors"`
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// RequestID from the original request
	RequestID string `json:"request_id" yaml:"request_id"`

	// CompilationID uniquely identifies this compile
	CompilationID string `json:"compilation_id" yaml:"compilation_id"`

	// Source from the original request
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// ProcessedAt is when the request was processed
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`

	// Duration is how long the request took
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// BatchCompileResult pairs a request with its outcome, in input order.
type BatchCompileResult struct {
	Response *CompileResponse
	Err      error
	Source   string
}

// AnalyzeResponse reports validation issues and pattern classification without compiling.
type AnalyzeResponse struct {
	Source     string                             `json:"source,omitempty" yaml:"source,omitempty"`
	Issues     []entities.Issue                   `json:"issues" yaml:"issues"`
	Analysis   *entities.AnalysisResult           `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Components []entities.ComponentClassification `json:"components" yaml:"components"`
	ParseError string                             `json:"parse_error,omitempty" yaml:"parse_error,omitempty"`
}

// Valid reports whether the document has no issues and parsed cleanly.
func (r *AnalyzeResponse) Valid() bool {
	return len(r.Issues) == 0 && r.ParseError == ""
}
