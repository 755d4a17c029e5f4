package services

import (
	"errors"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/patterns"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

// ComplexityKeywords mark behavior beyond what rule-based patterns can express.
var ComplexityKeywords = []string{"custom", "advanced", "interactive", "dynamic", "api", "websocket"}

// ErrNilAnalysisInput is returned when the analyzer is called without a document or registry.
var ErrNilAnalysisInput = errors.New("analysis requires a document and a pattern registry")

// PatternAnalyzer classifies components against the pattern registry and
// selects the compilation strategy. It holds no per-call state.
type PatternAnalyzer struct {
	registry *patterns.Registry
}

// NewPatternAnalyzer creates an analyzer over registry.
func NewPatternAnalyzer(registry *patterns.Registry) *PatternAnalyzer {
	return &PatternAnalyzer{registry: registry}
}

// Classify resolves every renderable component by exact pattern id, then by
// semantic keywords. Complexity keywords are checked in every block, data
// blocks included, and any hit flags the whole document.
func (a *PatternAnalyzer) Classify(doc *entities.Document) (*entities.AnalysisResult, error) {
	if doc == nil || a.registry == nil {
		return nil, ErrNilAnalysisInput
	}

	result := &entities.AnalysisResult{
		KnownPatterns:   []string{},
		UnknownPatterns: []string{},
	}
	known := make(map[string]bool)

	for _, c := range doc.Components() {
		tokens := patterns.Tokenize(c.RawText)
		if !c.IsRenderable() {
			if len(tokens.Matches(ComplexityKeywords)) > 0 {
				result.Complex = true
				result.ComplexBlocks = append(result.ComplexBlocks, c.Ref())
			}
			continue
		}

		cls := entities.ComponentClassification{
			Ref:             c.Ref(),
			DeclaredPattern: c.PatternName,
			Match:           entities.MatchNone,
			ComplexKeywords: tokens.Matches(ComplexityKeywords),
		}

		switch {
		case c.PatternName != "" && a.registry.Has(c.PatternName):
			cls.ResolvedPattern = c.PatternName
			cls.Match = entities.MatchExact
		default:
			if id, ok := a.registry.SemanticMatch(tokens); ok {
				cls.ResolvedPattern = id
				cls.Match = entities.MatchSemantic
			}
		}

		if cls.Resolved() {
			if !known[cls.ResolvedPattern] {
				known[cls.ResolvedPattern] = true
				result.KnownPatterns = append(result.KnownPatterns, cls.ResolvedPattern)
			}
		} else {
			result.UnknownPatterns = append(result.UnknownPatterns, unresolvedName(c))
		}
		if len(cls.ComplexKeywords) > 0 {
			result.Complex = true
		}
		result.Components = append(result.Components, cls)
	}

	result.Strategy = values.DecideStrategy(len(result.KnownPatterns), result.Complex)
	return result, nil
}

// unresolvedName is the declared pattern, or the component name when none was declared.
func unresolvedName(c *entities.ComponentConfig) string {
	if c.PatternName != "" {
		return c.PatternName
	}
	return c.Name
}
