// Package dto contains data transfer objects for application layer use cases.
package dto

import "time"

// CompileRequest encapsulates all inputs needed to compile one document.
type CompileRequest struct {
	// Source names the document in logs and reports (usually a file path)
	Source   string
	Text     string
	Options  CompileOptions
	Metadata RequestMetadata
}

// CompileOptions controls fallback and repair behavior for one compile.
type CompileOptions struct {
	// SessionID, when set, stores the artifact in the session cache
	SessionID string

	// FallbackTimeout bounds the generative fallback call (0 = configured default)
	FallbackTimeout time.Duration

	// RepairTimeout bounds the repair call (0 = configured default)
	RepairTimeout time.Duration

	// DisableFallback skips the generative fallback; affected artifacts are degraded
	DisableFallback bool
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string
}

// BatchCompileRequest compiles several documents with shared options.
type BatchCompileRequest struct {
	Requests []CompileRequest

	// Parallelism limits concurrent compiles (0 = sequential)
	Parallelism int
}

// AnalyzeRequest encapsulates inputs for validation and analysis without code generation.
type AnalyzeRequest struct {
	Source string
	Text   string

	// FilterExpression selects components in the report (expr syntax)
	FilterExpression string
	Sections         []string
	Patterns         []string
	UnresolvedOnly   bool
}
