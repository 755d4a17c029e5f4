// Package patterns holds the catalog of rule-based code generators.
// Each pattern maps a component "type" to a pure function producing Vue markup.
package patterns

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

// ErrRegistrySealed is returned when registering after startup.
var ErrRegistrySealed = errors.New("pattern registry is sealed")

// Generator turns a component configuration into markup.
// Implementations must be pure: no I/O and no shared mutable state.
type Generator interface {
	Generate(c *entities.ComponentConfig) entities.Fragment
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(c *entities.ComponentConfig) entities.Fragment

// Generate calls f(c).
func (f GeneratorFunc) Generate(c *entities.ComponentConfig) entities.Fragment {
	return f(c)
}

// Definition describes one registered pattern.
type Definition struct {
	Generator        Generator
	ID               string
	Description      string
	Style            string
	RequiredFields   []string
	SemanticKeywords []string
}

// Registry maps pattern ids to definitions.
// Registration happens once at startup; after Seal the registry is read-only.
type Registry struct {
	defs   map[string]Definition
	order  []string
	mu     sync.RWMutex
	sealed bool
}

// NewRegistry creates a new, empty pattern registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]Definition),
	}
}

// Register adds a pattern definition. Ids must be unique.
func (r *Registry) Register(def Definition) error {
	if def.ID == "" {
		return fmt.Errorf("pattern id is required")
	}
	if def.Generator == nil {
		return fmt.Errorf("pattern %s: generator is required", def.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("register %s: %w", def.ID, ErrRegistrySealed)
	}
	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("pattern %s is already registered", def.ID)
	}

	def.RequiredFields = append([]string(nil), def.RequiredFields...)
	keywords := make([]string, 0, len(def.SemanticKeywords))
	for _, k := range def.SemanticKeywords {
		keywords = append(keywords, strings.ToLower(k))
	}
	def.SemanticKeywords = keywords

	r.defs[def.ID] = def
	r.order = append(r.order, def.ID)
	return nil
}

// Seal freezes the registry.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Get retrieves the definition for a pattern id.
func (r *Registry) Get(id string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	return def, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// IDs returns pattern ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		defs = append(defs, r.defs[id])
	}
	return defs
}

// SemanticMatch returns the first pattern, in registration order, with a keyword present in tokens.
func (r *Registry) SemanticMatch(tokens TokenSet) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		for _, kw := range r.defs[id].SemanticKeywords {
			if tokens.Contains(kw) {
				return id, true
			}
		}
	}
	return "", false
}
