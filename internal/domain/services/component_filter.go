package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

const (
	maxFilterLength   = 1000
	maxFilterASTNodes = 100
)

// ComponentEnv defines the variables available during filter expression evaluation.
type ComponentEnv struct {
	Name     string   `expr:"name"`
	Section  string   `expr:"section"`
	Declared string   `expr:"declared"`
	Pattern  string   `expr:"pattern"`
	Match    string   `expr:"match"`
	Keywords []string `expr:"keywords"`
	Resolved bool     `expr:"resolved"`
	Complex  bool     `expr:"complex"`
}

// CompileComponentFilter compiles a boolean filter expression over ComponentEnv.
func CompileComponentFilter(expression string) (*vm.Program, error) {
	if len(expression) > maxFilterLength {
		return nil, fmt.Errorf("filter expression exceeds %d characters", maxFilterLength)
	}
	program, err := expr.Compile(expression,
		expr.Env(ComponentEnv{}),
		expr.AsBool(),
		expr.MaxNodes(maxFilterASTNodes),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return program, nil
}

// ComponentFilter selects component classifications for reporting.
type ComponentFilter struct {
	// Inclusion filters
	patterns map[string]bool
	sections map[string]bool

	// Advanced filtering
	program *vm.Program

	unresolvedOnly bool
}

// NewComponentFilter initializes a new empty filter.
func NewComponentFilter() *ComponentFilter {
	return &ComponentFilter{
		patterns: make(map[string]bool),
		sections: make(map[string]bool),
	}
}

// WithPatterns includes only components resolved to these patterns.
func (f *ComponentFilter) WithPatterns(ids []string) *ComponentFilter {
	f.patterns = toSet(ids)
	return f
}

// WithSections includes only components declared in these sections.
func (f *ComponentFilter) WithSections(names []string) *ComponentFilter {
	f.sections = toSet(names)
	return f
}

// WithUnresolvedOnly keeps only components no pattern resolved.
func (f *ComponentFilter) WithUnresolvedOnly(only bool) *ComponentFilter {
	f.unresolvedOnly = only
	return f
}

// WithFilterExpression applies a compiled Expr program for advanced filtering.
func (f *ComponentFilter) WithFilterExpression(program *vm.Program) *ComponentFilter {
	f.program = program
	return f
}

// Matches evaluates whether a classification passes the filter.
// It returns a reason when the component is excluded.
func (f *ComponentFilter) Matches(cls entities.ComponentClassification) (bool, string) {
	if f.unresolvedOnly && cls.Resolved() {
		return false, "resolved by a pattern"
	}
	if len(f.sections) > 0 && !f.sections[cls.Ref.Section] {
		return false, "excluded by --section"
	}
	if len(f.patterns) > 0 && !f.patterns[cls.ResolvedPattern] {
		return false, "excluded by --pattern"
	}
	if f.program == nil {
		return true, ""
	}

	env := ComponentEnv{
		Name:     cls.Ref.Component,
		Section:  cls.Ref.Section,
		Declared: cls.DeclaredPattern,
		Pattern:  cls.ResolvedPattern,
		Match:    string(cls.Match),
		Keywords: cls.ComplexKeywords,
		Resolved: cls.Resolved(),
		Complex:  len(cls.ComplexKeywords) > 0,
	}
	output, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Sprintf("filter expression error: %v", err)
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Sprintf("filter expression did not return boolean: %v", output)
	}
	if !result {
		return false, "excluded by --filter expression"
	}
	return true, ""
}

// Apply returns the classifications that pass the filter, in order.
func (f *ComponentFilter) Apply(classes []entities.ComponentClassification) []entities.ComponentClassification {
	out := make([]entities.ComponentClassification, 0, len(classes))
	for _, c := range classes {
		if ok, _ := f.Matches(c); ok {
			out = append(out, c)
		}
	}
	return out
}

// toSet converts a slice to a map (set)
func toSet(slice []string) map[string]bool {
	s := make(map[string]bool, len(slice))
	for _, item := range slice {
		s[item] = true
	}
	return s
}
