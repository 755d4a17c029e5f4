package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/patterns"
)

// PendingMarkerPrefix starts the comment that tags a placeholder for generative output.
const PendingMarkerPrefix = "<!-- apmlc:pending "

// GenerationResult collects the fragments and component errors of one rule-based pass.
type GenerationResult struct {
	Fragments    []entities.ComponentFragment
	Errors       []error
	Unresolved   []string
	PatternsUsed []string
}

// HasPending reports whether any fragment is a placeholder.
func (r *GenerationResult) HasPending() bool {
	for _, f := range r.Fragments {
		if f.Pending {
			return true
		}
	}
	return false
}

// RuleBasedGenerator renders resolved components with registered pattern generators.
type RuleBasedGenerator struct {
	registry *patterns.Registry
}

// NewRuleBasedGenerator creates a generator over registry.
func NewRuleBasedGenerator(registry *patterns.Registry) *RuleBasedGenerator {
	return &RuleBasedGenerator{registry: registry}
}

// Generate renders every classified component in section order, then declaration order.
// Component failures are collected and do not stop the batch.
func (g *RuleBasedGenerator) Generate(doc *entities.Document, analysis *entities.AnalysisResult) *GenerationResult {
	result := &GenerationResult{}
	if doc == nil || analysis == nil {
		return result
	}
	used := make(map[string]bool)

	for _, c := range doc.Components() {
		cls, ok := analysis.Classification(c.Ref())
		if !ok {
			continue
		}
		if !cls.Resolved() {
			result.pending(c, unresolvedName(c))
			continue
		}

		def, ok := g.registry.Get(cls.ResolvedPattern)
		if !ok {
			result.pending(c, cls.ResolvedPattern)
			continue
		}
		if missing := c.MissingFields(def.RequiredFields); len(missing) > 0 {
			result.Errors = append(result.Errors, &entities.MissingFieldsError{Ref: c.Ref(), Pattern: def.ID, Fields: missing})
			result.pending(c, def.ID)
			continue
		}

		frag, err := generateSafely(def, c)
		if err != nil {
			result.Errors = append(result.Errors, err)
			result.pending(c, def.ID)
			continue
		}

		result.Fragments = append(result.Fragments, entities.ComponentFragment{
			Ref:       c.Ref(),
			PatternID: def.ID,
			Fragment:  wrapComponent(c, frag),
		})
		if !used[def.ID] {
			used[def.ID] = true
			result.PatternsUsed = append(result.PatternsUsed, def.ID)
		}
	}
	return result
}

func (r *GenerationResult) pending(c *entities.ComponentConfig, pattern string) {
	r.Fragments = append(r.Fragments, entities.ComponentFragment{
		Ref:       c.Ref(),
		PatternID: pattern,
		Pending:   true,
		Fragment:  entities.Fragment{Markup: pendingMarkup(c.Name, pattern)},
	})
	r.Unresolved = append(r.Unresolved, c.Ref().String())
}

func generateSafely(def patterns.Definition, c *entities.ComponentConfig) (frag entities.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &entities.GeneratorPanicError{Ref: c.Ref(), Pattern: def.ID, Value: r}
		}
	}()
	return def.Generator.Generate(c), nil
}

// wrapComponent places a fragment in the per-component container.
func wrapComponent(c *entities.ComponentConfig, frag entities.Fragment) entities.Fragment {
	visible := c.Text("visible_when", "true")
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="component %s" v-if="%s">`, html.EscapeString(c.Name), html.EscapeString(visible))
	sb.WriteByte('\n')
	for _, line := range strings.Split(frag.Markup, "\n") {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString("</div>")

	out := entities.Fragment{
		Markup:   sb.String(),
		Bindings: frag.Bindings,
		Methods:  frag.Methods,
	}
	if visible != "true" && entities.IsIdentifier(visible) && !hasBinding(frag.Bindings, visible) {
		out.Bindings = append([]entities.Binding{{Name: visible, Kind: entities.BindFlag}}, frag.Bindings...)
	}
	return out
}

func hasBinding(bindings []entities.Binding, name string) bool {
	for _, b := range bindings {
		if b.Name == name {
			return true
		}
	}
	return false
}

func pendingMarkup(name, pattern string) string {
	return fmt.Sprintf(`<div class="component %s pending">%s%s --><p>Component type '%s' not yet implemented</p></div>`,
		html.EscapeString(name), PendingMarkerPrefix, html.EscapeString(name), html.EscapeString(pattern))
}
