// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

// ValidationError indicates the input document or a request option is invalid.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// UnrepairableDocument indicates structural issues that repair could not fix.
type UnrepairableDocument struct {
	Cause     error
	Issues    []entities.Issue // Issues found in the original text
	Remaining []entities.Issue // Issues still present after repair, if one was attempted
}

func (e *UnrepairableDocument) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		msgs = append(msgs, i.String())
	}
	base := fmt.Sprintf("document could not be repaired: %s", strings.Join(msgs, "; "))
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *UnrepairableDocument) Unwrap() error {
	return e.Cause
}

// NewUnrepairableDocument creates a new unrepairable document error.
func NewUnrepairableDocument(issues, remaining []entities.Issue, cause error) *UnrepairableDocument {
	return &UnrepairableDocument{
		Issues:    issues,
		Remaining: remaining,
		Cause:     cause,
	}
}

// AnalysisError indicates an internal invariant violation during pattern analysis.
type AnalysisError struct {
	Cause   error
	Message string
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// NewAnalysisError creates a new analysis error.
func NewAnalysisError(message string, cause error) *AnalysisError {
	return &AnalysisError{Message: message, Cause: cause}
}

// GenerationError indicates the generative fallback failed or timed out.
type GenerationError struct {
	Cause  error
	Reason string
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generative fallback failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("generative fallback failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// NewGenerationError creates a new generation error.
func NewGenerationError(reason string, cause error) *GenerationError {
	return &GenerationError{Reason: reason, Cause: cause}
}

// ExtractionError indicates generative output contained no usable markup.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract markup from generated output: %s", e.Reason)
}

// NewExtractionError creates a new extraction error.
func NewExtractionError(reason string) *ExtractionError {
	return &ExtractionError{Reason: reason}
}

// ConsistencyError indicates an artifact declares both an alias and its canonical identifier.
type ConsistencyError struct {
	Cause      error
	Identifier string
	Alias      string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency check failed: script declares both %s and alias %s", e.Identifier, e.Alias)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Cause
}

// NewConsistencyError creates a new consistency error.
func NewConsistencyError(identifier, alias string, cause error) *ConsistencyError {
	return &ConsistencyError{Identifier: identifier, Alias: alias, Cause: cause}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
