package patterns

import (
	"sync"
	"testing"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubGenerator(markup string) Generator {
	return GeneratorFunc(func(*entities.ComponentConfig) entities.Fragment {
		return entities.Fragment{Markup: markup}
	})
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(Definition{ID: "one", Generator: stubGenerator("1"), SemanticKeywords: []string{"Form"}}))

	err := r.Register(Definition{ID: "one", Generator: stubGenerator("dup")})
	assert.ErrorContains(t, err, "already registered")

	assert.Error(t, r.Register(Definition{Generator: stubGenerator("x")}))
	assert.Error(t, r.Register(Definition{ID: "nogen"}))

	def, ok := r.Get("one")
	require.True(t, ok)
	assert.Equal(t, []string{"form"}, def.SemanticKeywords)
	assert.False(t, r.Has("missing"))
}

func TestRegistry_SealRejectsRegistration(t *testing.T) {
	r := NewRegistry()
	r.Seal()

	err := r.Register(Definition{ID: "late", Generator: stubGenerator("")})
	assert.ErrorIs(t, err, ErrRegistrySealed)
	assert.True(t, r.Sealed())
}

func TestRegistry_SemanticMatchUsesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Definition{ID: "first", Generator: stubGenerator(""), SemanticKeywords: []string{"data"}}))
	require.NoError(t, r.Register(Definition{ID: "second", Generator: stubGenerator(""), SemanticKeywords: []string{"table", "data"}}))

	id, ok := r.SemanticMatch(Tokenize("a data table"))
	require.True(t, ok)
	assert.Equal(t, "first", id)

	_, ok = r.SemanticMatch(Tokenize("nothing relevant"))
	assert.False(t, ok)
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r := NewDefaultRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range r.IDs() {
				_, ok := r.Get(id)
				assert.True(t, ok)
			}
			r.SemanticMatch(Tokenize("login form"))
		}()
	}
	wg.Wait()
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.True(t, r.Sealed())
	assert.Equal(t, []string{
		"form_input", "text_area", "action_list", "conditional_content", "modal_dialog",
		"data_table", "wizard_component", "welcome_card", "scenario_card", "followup_card",
		"breakthrough_card", "results_card", "email_form", "thrive_card", "progress_bar",
		"card_container", "scrollable_panel", "tabbed_panel",
	}, r.IDs())

	def, _ := r.Get("modal_dialog")
	assert.Equal(t, []string{"visible_when", "title"}, def.RequiredFields)
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize(`wizard: { type: "Multi-Step", note: "custom_api" }`)

	for _, want := range []string{"wizard", "type", "multi-step", "multi", "step", "custom", "api"} {
		assert.True(t, tokens.Contains(want), want)
	}
	assert.False(t, tokens.Contains("multi_step"))
	assert.Equal(t, []string{"custom", "api"}, tokens.Matches([]string{"custom", "advanced", "api"}))
}

func TestTokenize_WholeWordsOnly(t *testing.T) {
	tokens := Tokenize("formation of tableau")

	assert.False(t, tokens.Contains("form"))
	assert.False(t, tokens.Contains("table"))
}
