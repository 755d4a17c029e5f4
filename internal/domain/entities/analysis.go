package entities

import "github.com/reglet-dev/apmlc/internal/domain/values"

// MatchKind records how a component was resolved to a pattern.
type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchSemantic MatchKind = "semantic"
	MatchNone     MatchKind = "none"
)

// ComponentClassification is the analyzer's verdict for one renderable component.
type ComponentClassification struct {
	Ref             ComponentRef `json:"ref" yaml:"ref"`
	DeclaredPattern string       `json:"declared_pattern,omitempty" yaml:"declared_pattern,omitempty"`
	ResolvedPattern string       `json:"resolved_pattern,omitempty" yaml:"resolved_pattern,omitempty"`
	Match           MatchKind    `json:"match" yaml:"match"`
	ComplexKeywords []string     `json:"complex_keywords,omitempty" yaml:"complex_keywords,omitempty"`
}

// Resolved reports whether a rule-based generator will handle the component.
func (c ComponentClassification) Resolved() bool {
	return c.Match != MatchNone
}

// AnalysisResult classifies a document's components and picks the compilation strategy.
type AnalysisResult struct {
	Strategy        values.Strategy           `json:"strategy" yaml:"strategy"`
	KnownPatterns   []string                  `json:"known_patterns" yaml:"known_patterns"`
	UnknownPatterns []string                  `json:"unknown_patterns" yaml:"unknown_patterns"`
	Components      []ComponentClassification `json:"components" yaml:"components"`
	// ComplexBlocks lists data blocks whose text carries complexity keywords.
	ComplexBlocks []ComponentRef `json:"complex_blocks,omitempty" yaml:"complex_blocks,omitempty"`
	Complex       bool           `json:"complex" yaml:"complex"`
}

// Classification returns the classification for ref.
func (a *AnalysisResult) Classification(ref ComponentRef) (ComponentClassification, bool) {
	for _, c := range a.Components {
		if c.Ref == ref {
			return c, true
		}
	}
	return ComponentClassification{}, false
}
