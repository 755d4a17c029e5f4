package entities

import (
	"fmt"
	"strings"
)

// ParseFailure names why the parser rejected a document.
type ParseFailure string

const (
	ParseUnterminatedBlock ParseFailure = "unterminated block"
	ParseUnbalancedBrace   ParseFailure = "unbalanced closing brace"
	ParseInvalidEntry      ParseFailure = "invalid entry"
	ParseUnterminatedList  ParseFailure = "unterminated list"
)

// ParseError reports malformed structure with the offending line.
type ParseError struct {
	Reason ParseFailure
	Detail string
	Line   int
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("parse error at line %d: %s: %s", e.Line, e.Reason, e.Detail)
	}
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Reason)
}

// NewParseError creates a new parse error.
func NewParseError(reason ParseFailure, line int, detail string) *ParseError {
	return &ParseError{Reason: reason, Line: line, Detail: detail}
}

// MissingFieldsError is a component-scoped generation failure.
type MissingFieldsError struct {
	Ref     ComponentRef
	Pattern string
	Fields  []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("component %s (%s) is missing required fields: %s",
		e.Ref, e.Pattern, strings.Join(e.Fields, ", "))
}

// GeneratorPanicError wraps a recovered panic from a pattern generator.
type GeneratorPanicError struct {
	Ref     ComponentRef
	Pattern string
	Value   any
}

func (e *GeneratorPanicError) Error() string {
	return fmt.Sprintf("component %s (%s) generator failed: %v", e.Ref, e.Pattern, e.Value)
}
