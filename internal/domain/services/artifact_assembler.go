package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/patterns"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

const (
	// DefaultTitle is used when the document names no application.
	DefaultTitle = "Generated App"
	// DataModelSection holds the blocks that seed the script's data().
	DataModelSection = "data_model"
	// AppConfigurationSection may carry the application name.
	AppConfigurationSection = "app_configuration"
	// GenerativePatternID tags fragments that came from the generative fallback.
	GenerativePatternID = "generative"
)

// ArtifactAssembler turns generated fragments into a runnable markup, script and style triple.
type ArtifactAssembler struct {
	registry *patterns.Registry
	runtime  values.RuntimeTarget
}

// NewArtifactAssembler creates an assembler. A zero runtime falls back to vue@3.
func NewArtifactAssembler(registry *patterns.Registry, runtime values.RuntimeTarget) *ArtifactAssembler {
	if runtime.IsZero() {
		runtime = values.DefaultRuntimeTarget()
	}
	return &ArtifactAssembler{registry: registry, runtime: runtime}
}

// Assemble builds the artifact for doc from fragments, in fragment order.
func (a *ArtifactAssembler) Assemble(doc *entities.Document, fragments []entities.ComponentFragment, strategy values.Strategy) *entities.CompilationArtifact {
	title := DocumentTitle(doc)

	var unresolved []string
	for _, f := range fragments {
		if f.Pending {
			unresolved = append(unresolved, f.Ref.String())
		}
	}

	return &entities.CompilationArtifact{
		Title:        title,
		Markup:       a.markup(fragments),
		Script:       a.script(doc, title, fragments),
		Style:        a.style(fragments),
		Runtime:      a.runtime.Marker(),
		StrategyUsed: strategy,
		Unresolved:   unresolved,
	}
}

// DocumentTitle reads the application name from metadata or the app configuration section.
func DocumentTitle(doc *entities.Document) string {
	if doc == nil {
		return DefaultTitle
	}
	for _, key := range []string{"name", "title", "app_name"} {
		if v, ok := doc.Metadata.Get(key); ok && v != "" {
			return v
		}
	}
	if s, ok := doc.Sections.Get(AppConfigurationSection); ok {
		for _, key := range []string{"name", "title", "app_name"} {
			if v, ok := s.Attributes.Get(key); ok && v.Text() != "" {
				return v.Text()
			}
		}
		for _, c := range s.Components.All() {
			if t := c.Text("name", c.Text("title", "")); t != "" {
				return t
			}
		}
	}
	return DefaultTitle
}

func (a *ArtifactAssembler) markup(fragments []entities.ComponentFragment) string {
	var sb strings.Builder
	sb.WriteString("<div id=\"app\">\n")
	sb.WriteString("  <div class=\"app-container\">\n")
	sb.WriteString("    <h1>{{ appTitle }}</h1>\n")
	for _, f := range fragments {
		for _, line := range strings.Split(f.Fragment.Markup, "\n") {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("  </div>\n")
	sb.WriteString("</div>")
	return sb.String()
}

type dataEntry struct {
	name    string
	literal string
}

func (a *ArtifactAssembler) script(doc *entities.Document, title string, fragments []entities.ComponentFragment) string {
	entries := []dataEntry{{name: "appTitle", literal: strconv.Quote(title)}}
	defined := map[string]bool{"appTitle": true}
	add := func(name, literal string) {
		if defined[name] {
			return
		}
		defined[name] = true
		entries = append(entries, dataEntry{name: name, literal: literal})
	}

	if doc != nil {
		if s, ok := doc.Sections.Get(DataModelSection); ok {
			for k, v := range s.Attributes.All() {
				add(k, v.JSLiteral())
			}
			for _, c := range s.Components.All() {
				for k, v := range c.Properties.All() {
					add(k, v.JSLiteral())
				}
			}
		}
	}

	var methods []string
	seenMethod := make(map[string]bool)
	definitions := make(map[string]string)
	for _, f := range fragments {
		for _, b := range f.Fragment.Bindings {
			add(b.Name, b.DefaultLiteral())
		}
		for _, m := range f.Fragment.Methods {
			if !seenMethod[m] {
				seenMethod[m] = true
				methods = append(methods, m)
			}
		}
		for name, src := range f.Fragment.Definitions {
			if _, ok := definitions[name]; !ok {
				definitions[name] = src
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("const { createApp } = Vue;\n\n")
	sb.WriteString("createApp({\n")
	sb.WriteString("  data() {\n")
	sb.WriteString("    return {\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "      %s: %s,\n", entities.JSKey(e.name), e.literal)
	}
	sb.WriteString("    };\n")
	sb.WriteString("  },\n")
	sb.WriteString("  methods: {\n")
	for _, m := range methods {
		if src, ok := definitions[m]; ok {
			sb.WriteString(reindent(src, "    "))
			sb.WriteString(",\n")
			continue
		}
		fmt.Fprintf(&sb, "    %s(...args) {\n", m)
		fmt.Fprintf(&sb, "      console.log(%s, ...args);\n", strconv.Quote(m))
		sb.WriteString("    },\n")
	}
	sb.WriteString("  },\n")
	sb.WriteString("}).mount('#app');")
	return sb.String()
}

func (a *ArtifactAssembler) style(fragments []entities.ComponentFragment) string {
	parts := []string{patterns.BaseStyle}
	seen := map[string]bool{patterns.BaseStyle: true}
	for _, f := range fragments {
		if f.Pending || a.registry == nil {
			continue
		}
		def, ok := a.registry.Get(f.PatternID)
		if !ok || def.Style == "" || seen[def.Style] {
			continue
		}
		seen[def.Style] = true
		parts = append(parts, def.Style)
	}
	return strings.Join(parts, "\n\n")
}

// MergeFallback places a generative fragment into the fragment list. It replaces the
// first pending placeholder and drops the rest; with no placeholder it is appended.
// Rule-based fragments are kept in place. The fragment's bindings and methods are
// declared in the assembled script next to the rule-based ones.
func MergeFallback(fragments []entities.ComponentFragment, frag entities.Fragment) []entities.ComponentFragment {
	frag.Markup = "<div class=\"component generative\">\n" + indent(frag.Markup) + "\n</div>"
	generated := entities.ComponentFragment{
		PatternID: GenerativePatternID,
		Fragment:  frag,
	}

	out := make([]entities.ComponentFragment, 0, len(fragments)+1)
	placed := false
	for _, f := range fragments {
		if !f.Pending {
			out = append(out, f)
			continue
		}
		if !placed {
			generated.Ref = f.Ref
			out = append(out, generated)
			placed = true
		}
	}
	if !placed {
		out = append(out, generated)
	}
	return out
}

func indent(markup string) string {
	lines := strings.Split(strings.TrimSpace(markup), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

// reindent moves a multi-line source block to prefix, keeping its relative indentation.
func reindent(src, prefix string) string {
	lines := strings.Split(strings.TrimSpace(src), "\n")
	strip := -1
	for _, l := range lines[1:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if n := len(l) - len(strings.TrimLeft(l, " \t")); strip < 0 || n < strip {
			strip = n
		}
	}
	for i, l := range lines {
		if i > 0 && strip > 0 && len(l) >= strip {
			l = l[strip:]
		}
		lines[i] = prefix + strings.TrimRight(l, " \t")
	}
	return strings.Join(lines, "\n")
}

// Replace swaps base's markup for a full generative rendering. The base theme
// is kept ahead of any generated style; the generated script wins when present.
func (a *ArtifactAssembler) Replace(base *entities.CompilationArtifact, markup, script, style string) *entities.CompilationArtifact {
	out := base.Clone()
	out.Markup = strings.TrimSpace(markup)
	if s := strings.TrimSpace(script); s != "" {
		out.Script = s
	}
	out.Style = patterns.BaseStyle
	if s := strings.TrimSpace(style); s != "" {
		out.Style += "\n\n" + s
	}
	out.Unresolved = nil
	return out
}
