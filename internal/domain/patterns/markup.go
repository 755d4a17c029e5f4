package patterns

import (
	"html"
	"strings"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

// fragmentBuilder accumulates markup lines plus the data bindings and
// handler methods they reference.
type fragmentBuilder struct {
	sb       strings.Builder
	seen     map[string]bool
	bindings []entities.Binding
	methods  []string
}

func newBuilder() *fragmentBuilder {
	return &fragmentBuilder{seen: make(map[string]bool)}
}

// line writes one markup line at the given nesting depth.
func (b *fragmentBuilder) line(depth int, s string) {
	b.sb.WriteString(strings.Repeat("  ", depth))
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

// bind records a data binding when expr is a plain identifier path.
// For "user.name" the root "user" is bound as an object.
func (b *fragmentBuilder) bind(expr string, kind entities.BindingKind) {
	root, ok := identifierRoot(expr)
	if !ok {
		return
	}
	if root != strings.TrimSpace(expr) {
		kind = entities.BindObject
	}
	key := "b:" + root
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.bindings = append(b.bindings, entities.Binding{Name: root, Kind: kind})
}

// method records a handler when expr is a call or bare identifier.
// Assignments such as "tab = 'x'" are ignored.
func (b *fragmentBuilder) method(expr string) {
	name := handlerName(expr)
	if name == "" {
		return
	}
	key := "m:" + name
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.methods = append(b.methods, name)
}

// textOrBinding renders a lowercase identifier path as an interpolation and
// anything else as escaped text, so "modal_title" binds and "Confirm" does not.
func (b *fragmentBuilder) textOrBinding(value string) string {
	if _, ok := identifierRoot(value); ok && value[0] >= 'a' && value[0] <= 'z' {
		b.bind(value, entities.BindText)
		return "{{ " + value + " }}"
	}
	return esc(value)
}

func (b *fragmentBuilder) build() entities.Fragment {
	return entities.Fragment{
		Markup:   strings.TrimRight(b.sb.String(), "\n"),
		Bindings: b.bindings,
		Methods:  b.methods,
	}
}

// esc escapes text and attribute values.
func esc(s string) string {
	return html.EscapeString(s)
}

// identifierRoot returns the first segment of a dotted identifier path.
func identifierRoot(expr string) (string, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", false
	}
	parts := strings.Split(expr, ".")
	for _, p := range parts {
		if !entities.IsIdentifier(p) {
			return "", false
		}
	}
	if isLiteralKeyword(parts[0]) {
		return "", false
	}
	return parts[0], true
}

func handlerName(expr string) string {
	expr = strings.TrimSpace(expr)
	if i := strings.IndexByte(expr, '('); i >= 0 {
		expr = strings.TrimSpace(expr[:i])
	}
	if !entities.IsIdentifier(expr) || isLiteralKeyword(expr) {
		return ""
	}
	return expr
}

func isLiteralKeyword(s string) bool {
	switch s {
	case "true", "false", "null", "undefined", "this":
		return true
	}
	return false
}

// maps filters a list down to its map items.
func maps(items []entities.Value) []entities.Value {
	out := make([]entities.Value, 0, len(items))
	for _, item := range items {
		if item.Kind() == entities.KindMap {
			out = append(out, item)
		}
	}
	return out
}

// fieldOr returns the text of key on a map value, or fallback.
func fieldOr(v entities.Value, key, fallback string) string {
	if s := v.FieldText(key); s != "" {
		return s
	}
	return fallback
}

// slug lowercases and joins words with underscores.
func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}
