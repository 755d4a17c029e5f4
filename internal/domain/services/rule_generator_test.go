package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/patterns"
	"github.com/reglet-dev/apmlc/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, registry *patterns.Registry, text string) (*entities.Document, *entities.AnalysisResult, *GenerationResult) {
	t.Helper()
	doc, err := NewDocumentParser().Parse(text)
	require.NoError(t, err)
	analysis, err := NewPatternAnalyzer(registry).Classify(doc)
	require.NoError(t, err)
	return doc, analysis, NewRuleBasedGenerator(registry).Generate(doc, analysis)
}

func TestRuleBasedGenerator_LoginForm(t *testing.T) {
	_, _, result := generate(t, patterns.NewDefaultRegistry(), loginDocument)

	require.Len(t, result.Fragments, 1)
	frag := result.Fragments[0]
	assert.False(t, frag.Pending)
	assert.Equal(t, "form_input", frag.PatternID)
	assert.True(t, strings.HasPrefix(frag.Fragment.Markup, `<div class="component login_form" v-if="true">`))
	assert.Contains(t, frag.Fragment.Markup, `<form @submit.prevent="submitLogin">`)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"form_input"}, result.PatternsUsed)
}

func TestRuleBasedGenerator_PreservesDeclarationOrder(t *testing.T) {
	_, _, result := generate(t, patterns.NewDefaultRegistry(), `## UI Components
a: { type: "form_input", action: "first" }
b: { type: "progress_bar", current_step: step, total_steps: 3 }
c: { type: "form_input", action: "third" }
`)

	var names []string
	for _, f := range result.Fragments {
		names = append(names, f.Ref.Component)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestRuleBasedGenerator_MissingFieldsAreComponentScoped(t *testing.T) {
	_, _, result := generate(t, patterns.NewDefaultRegistry(), `## UI Components
dialog: { type: "modal_dialog", title: "Hi" }
login: { type: "form_input" }
`)

	require.Len(t, result.Errors, 1)
	var missing *entities.MissingFieldsError
	require.True(t, errors.As(result.Errors[0], &missing))
	assert.Equal(t, []string{"visible_when"}, missing.Fields)
	assert.Equal(t, "modal_dialog", missing.Pattern)

	require.Len(t, result.Fragments, 2)
	assert.True(t, result.Fragments[0].Pending)
	assert.False(t, result.Fragments[1].Pending)
	assert.Equal(t, []string{"ui_components.dialog"}, result.Unresolved)
}

func TestRuleBasedGenerator_RecoversGeneratorPanics(t *testing.T) {
	registry := patterns.NewRegistry()
	require.NoError(t, registry.Register(patterns.Definition{
		ID: "explosive",
		Generator: patterns.GeneratorFunc(func(*entities.ComponentConfig) entities.Fragment {
			panic("boom")
		}),
	}))
	registry.Seal()

	_, _, result := generate(t, registry, "## UI Components\nx: { type: \"explosive\" }\n")

	require.Len(t, result.Errors, 1)
	var perr *entities.GeneratorPanicError
	require.True(t, errors.As(result.Errors[0], &perr))
	assert.Equal(t, "boom", perr.Value)
	assert.True(t, result.Fragments[0].Pending)
}

func TestRuleBasedGenerator_PendingPlaceholder(t *testing.T) {
	_, _, result := generate(t, patterns.NewDefaultRegistry(), "## UI Components\nteleporter: { type: \"quantum_teleport_widget\" }\n")

	require.Len(t, result.Fragments, 1)
	assert.True(t, result.HasPending())
	assert.Contains(t, result.Fragments[0].Fragment.Markup, PendingMarkerPrefix+"teleporter -->")
	assert.Contains(t, result.Fragments[0].Fragment.Markup, "Component type 'quantum_teleport_widget' not yet implemented")
}

func TestRuleBasedGenerator_VisibleWhenWrapper(t *testing.T) {
	_, _, result := generate(t, patterns.NewDefaultRegistry(),
		"## UI Components\nform: { type: \"form_input\", visible_when: show_form }\n")

	frag := result.Fragments[0].Fragment
	assert.True(t, strings.HasPrefix(frag.Markup, `<div class="component form" v-if="show_form">`))
	assert.Equal(t, entities.Binding{Name: "show_form", Kind: entities.BindFlag}, frag.Bindings[0])
}

func TestArtifactAssembler_Assemble(t *testing.T) {
	registry := patterns.NewDefaultRegistry()
	doc, analysis, result := generate(t, registry, loginDocument+`
## Data Model
app_state: { user_name: "Ada", items: [1, 2] }
`)

	artifact := NewArtifactAssembler(registry, values.RuntimeTarget{}).Assemble(doc, result.Fragments, analysis.Strategy)

	assert.Equal(t, "Login Demo", artifact.Title)
	assert.Equal(t, "vue@3", artifact.Runtime)
	assert.Equal(t, values.StrategyAutomatic, artifact.StrategyUsed)
	assert.Contains(t, artifact.Markup, `<h1>{{ appTitle }}</h1>`)
	assert.Contains(t, artifact.Markup, `<form @submit.prevent="submitLogin">`)
	assert.Contains(t, artifact.Script, `appTitle: "Login Demo",`)
	assert.Contains(t, artifact.Script, `user_name: "Ada",`)
	assert.Contains(t, artifact.Script, `items: [1, 2],`)
	assert.Equal(t, 1, strings.Count(artifact.Script, "user_name:"))
	assert.Contains(t, artifact.Script, `submitLogin(...args) {`)
	assert.Contains(t, artifact.Script, "}).mount('#app');")
	assert.True(t, strings.HasPrefix(artifact.Style, patterns.BaseStyle))
	assert.Contains(t, artifact.Style, "textarea, input {")
	assert.Empty(t, artifact.Unresolved)
}

func TestArtifactAssembler_Idempotent(t *testing.T) {
	registry := patterns.NewDefaultRegistry()
	assembler := NewArtifactAssembler(registry, values.DefaultRuntimeTarget())

	doc1, a1, r1 := generate(t, registry, loginDocument)
	doc2, a2, r2 := generate(t, registry, loginDocument)

	assert.Equal(t, assembler.Assemble(doc1, r1.Fragments, a1.Strategy), assembler.Assemble(doc2, r2.Fragments, a2.Strategy))
}

func TestDocumentTitle(t *testing.T) {
	doc, err := NewDocumentParser().Parse("## App Configuration\nname: \"Quiz\"\n")
	require.NoError(t, err)
	assert.Equal(t, "Quiz", DocumentTitle(doc))

	assert.Equal(t, DefaultTitle, DocumentTitle(entities.NewDocument()))
	assert.Equal(t, DefaultTitle, DocumentTitle(nil))
}

func TestMergeFallback(t *testing.T) {
	rule := entities.ComponentFragment{Ref: entities.ComponentRef{Section: "ui", Component: "a"}, Fragment: entities.Fragment{Markup: "<p>a</p>"}}
	pending1 := entities.ComponentFragment{Ref: entities.ComponentRef{Section: "ui", Component: "b"}, Pending: true}
	pending2 := entities.ComponentFragment{Ref: entities.ComponentRef{Section: "ui", Component: "c"}, Pending: true}

	merged := MergeFallback([]entities.ComponentFragment{pending1, rule, pending2}, entities.Fragment{Markup: "<p>generated</p>"})

	require.Len(t, merged, 2)
	assert.Equal(t, GenerativePatternID, merged[0].PatternID)
	assert.Equal(t, "b", merged[0].Ref.Component)
	assert.Contains(t, merged[0].Fragment.Markup, "<p>generated</p>")
	assert.Equal(t, rule, merged[1])

	appended := MergeFallback([]entities.ComponentFragment{rule}, entities.Fragment{Markup: "<p>x</p>"})
	require.Len(t, appended, 2)
	assert.Equal(t, rule, appended[0])
	assert.Equal(t, GenerativePatternID, appended[1].PatternID)
}

func TestArtifactAssembler_DeclaresGenerativeMembers(t *testing.T) {
	doc, err := NewDocumentParser().Parse("name: Feed\n")
	require.NoError(t, err)
	rule := entities.ComponentFragment{Fragment: entities.Fragment{
		Markup:   "<button @click=\"refreshTicker\">Go</button>",
		Bindings: []entities.Binding{{Name: "tickerItems", Kind: entities.BindList}},
		Methods:  []string{"refreshTicker"},
	}}
	generated := entities.Fragment{
		Markup: "<ul><li v-for=\"t in tickerItems\">{{ t }}</li></ul>",
		Bindings: []entities.Binding{
			{Name: "tickerItems", Kind: entities.BindList, Literal: `["a"]`},
			{Name: "tickerLimit", Kind: entities.BindNumber, Literal: "5"},
		},
		Methods: []string{"refreshTicker"},
		Definitions: map[string]string{
			"refreshTicker": "refreshTicker() {\n        this.tickerItems = [];\n      }",
		},
	}

	fragments := MergeFallback([]entities.ComponentFragment{rule}, generated)
	artifact := NewArtifactAssembler(nil, values.RuntimeTarget{}).Assemble(doc, fragments, values.StrategyHybrid)

	assert.Contains(t, artifact.Script, "      tickerItems: [],\n")
	assert.Contains(t, artifact.Script, "      tickerLimit: 5,\n")
	assert.Contains(t, artifact.Script, "    refreshTicker() {\n      this.tickerItems = [];\n    },\n")
	assert.NotContains(t, artifact.Script, `console.log("refreshTicker"`)
	assert.Equal(t, 1, strings.Count(artifact.Script, "refreshTicker("))
}

func TestArtifactAssembler_Replace(t *testing.T) {
	base := &entities.CompilationArtifact{Markup: "<p>rule</p>", Script: "rule()", Style: "x {}", Unresolved: []string{"ui.a"}}

	out := NewArtifactAssembler(nil, values.RuntimeTarget{}).Replace(base, " <div>gen</div> ", "", ".gen {}")

	assert.Equal(t, "<div>gen</div>", out.Markup)
	assert.Equal(t, "rule()", out.Script)
	assert.Equal(t, patterns.BaseStyle+"\n\n.gen {}", out.Style)
	assert.Empty(t, out.Unresolved)
	assert.Equal(t, "<p>rule</p>", base.Markup)
}
