package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

// Rename maps a legacy identifier to its canonical form.
type Rename struct {
	Alias     string
	Canonical string
}

// DefaultRenames is the ordered rename table applied to every artifact.
var DefaultRenames = []Rename{
	{Alias: "appName", Canonical: "appTitle"},
	{Alias: "primary-btn", Canonical: "btn btn-primary"},
}

// AliasConflictError reports a script that declares both an alias and its canonical name.
type AliasConflictError struct {
	Alias     string
	Canonical string
}

func (e *AliasConflictError) Error() string {
	return fmt.Sprintf("script declares both %s and %s", e.Alias, e.Canonical)
}

type compiledRename struct {
	Rename
	word *regexp.Regexp
	decl *regexp.Regexp
	// canonicalDecl matches a declaration of the canonical name.
	canonicalDecl *regexp.Regexp
	// selector matches the alias as a class selector when Canonical is a class list.
	selector *regexp.Regexp
	compound string
}

var runtimeMarker = regexp.MustCompile(`\bvue@[0-9][0-9A-Za-z.\-]*`)

// ConsistencyEnforcer normalizes naming and the runtime version marker across an artifact.
// Normalize is idempotent.
type ConsistencyEnforcer struct {
	runtime values.RuntimeTarget
	renames []compiledRename
}

// NewConsistencyEnforcer creates an enforcer with the default rename table.
// A zero runtime target normalizes to vue@3.
func NewConsistencyEnforcer(runtime values.RuntimeTarget) *ConsistencyEnforcer {
	return NewConsistencyEnforcerWithRenames(runtime, DefaultRenames)
}

// NewConsistencyEnforcerWithRenames creates an enforcer with a custom rename table.
func NewConsistencyEnforcerWithRenames(runtime values.RuntimeTarget, renames []Rename) *ConsistencyEnforcer {
	if runtime.IsZero() {
		runtime = values.DefaultRuntimeTarget()
	}
	e := &ConsistencyEnforcer{runtime: runtime}
	for _, r := range renames {
		alias := regexp.QuoteMeta(r.Alias)
		cr := compiledRename{
			Rename:        r,
			word:          regexp.MustCompile(`(^|[^\w-])` + alias + `($|[^\w-])`),
			decl:          regexp.MustCompile(`(^|[^\w-])` + alias + `\s*:`),
			canonicalDecl: regexp.MustCompile(`(^|[^\w-])` + regexp.QuoteMeta(r.Canonical) + `\s*:`),
		}
		if classes := strings.Fields(r.Canonical); len(classes) > 1 {
			cr.selector = regexp.MustCompile(`\.` + alias + `($|[^\w-])`)
			cr.compound = "." + strings.Join(classes, ".")
		}
		e.renames = append(e.renames, cr)
	}
	return e
}

// Normalize applies the rename table and runtime marker to markup, script and style.
// On an alias conflict it returns the artifact untouched with an *AliasConflictError.
func (e *ConsistencyEnforcer) Normalize(a *entities.CompilationArtifact) (*entities.CompilationArtifact, error) {
	if a == nil {
		return nil, nil
	}
	for _, r := range e.renames {
		if r.decl.MatchString(a.Script) && r.canonicalDecl.MatchString(a.Script) {
			return a, &AliasConflictError{Alias: r.Alias, Canonical: r.Canonical}
		}
	}

	out := a.Clone()
	out.Markup = e.apply(out.Markup)
	out.Script = e.apply(out.Script)
	out.Style = e.applyStyle(out.Style)
	out.Runtime = e.runtime.Marker()
	return out, nil
}

func (e *ConsistencyEnforcer) apply(s string) string {
	for _, r := range e.renames {
		s = replaceWord(r.word, s, r.Alias, r.Canonical)
	}
	return runtimeMarker.ReplaceAllString(s, e.runtime.Marker())
}

// applyStyle renames class lists as compound selectors: .primary-btn becomes
// .btn.btn-primary, which matches the same elements as the renamed markup.
func (e *ConsistencyEnforcer) applyStyle(s string) string {
	for _, r := range e.renames {
		if r.selector == nil {
			s = replaceWord(r.word, s, r.Alias, r.Canonical)
			continue
		}
		s = replaceSelector(r.selector, s, r.Alias, r.compound)
	}
	return runtimeMarker.ReplaceAllString(s, e.runtime.Marker())
}

// replaceSelector rewrites every class selector for alias, including chained ones.
func replaceSelector(re *regexp.Regexp, s, alias, compound string) string {
	if strings.Contains(compound, "."+alias) {
		return re.ReplaceAllString(s, compound+"${1}")
	}
	for {
		next := re.ReplaceAllString(s, compound+"${1}")
		if next == s {
			return s
		}
		s = next
	}
}

// replaceWord replaces every bounded occurrence, including adjacent ones that
// share a boundary character.
func replaceWord(re *regexp.Regexp, s, alias, canonical string) string {
	if strings.Contains(canonical, alias) {
		return re.ReplaceAllString(s, "${1}"+canonical+"${2}")
	}
	for {
		next := re.ReplaceAllString(s, "${1}"+canonical+"${2}")
		if next == s {
			return s
		}
		s = next
	}
}
