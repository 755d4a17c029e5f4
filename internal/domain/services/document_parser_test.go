package services

import (
	"errors"
	"testing"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginDocument = `# Login App
name: Login Demo
version: 1.0

## UI Components

login_form: {
  type: "form_input",
  action: "submitLogin",
  bind: user_name
  placeholder: "Your name"
}
`

func TestDocumentParser_LoginForm(t *testing.T) {
	doc, err := NewDocumentParser().Parse(loginDocument)
	require.NoError(t, err)

	name, _ := doc.Metadata.Get("name")
	assert.Equal(t, "Login Demo", name)

	section, ok := doc.Sections.Get(entities.UIComponentsSection)
	require.True(t, ok)
	c, ok := section.Components.Get("login_form")
	require.True(t, ok)

	assert.Equal(t, "form_input", c.PatternName)
	assert.Equal(t, 7, c.Line)
	assert.Equal(t, entities.UIComponentsSection, c.Section)
	assert.Equal(t, []string{"type", "action", "bind", "placeholder"}, c.Properties.Keys())
	assert.Equal(t, "submitLogin", c.Text("action", ""))
	assert.Equal(t, "user_name", c.Text("bind", ""))
	assert.Contains(t, c.RawText, "login_form: {")
	assert.Contains(t, c.RawText, "}")
}

func TestDocumentParser_ValueCoercion(t *testing.T) {
	doc, err := NewDocumentParser().Parse(`## Widgets
w: { count: 3, ratio: -0.5, on: true, off: false, label: 'it\'s', raw: items.length > 0, list: [a, "b c", 2, { k: v }], nested: { inner: { x: 1 } } }
`)
	require.NoError(t, err)

	section, _ := doc.Sections.Get("widgets")
	c, _ := section.Components.Get("w")

	count, _ := c.Property("count")
	assert.True(t, count.Equal(entities.NumberValue(3)))
	ratio, _ := c.Property("ratio")
	assert.True(t, ratio.Equal(entities.NumberValue(-0.5)))
	on, _ := c.Property("on")
	assert.True(t, on.Equal(entities.BoolValue(true)))
	off, _ := c.Property("off")
	assert.True(t, off.Equal(entities.BoolValue(false)))
	assert.Equal(t, "it's", c.Text("label", ""))
	assert.Equal(t, "items.length > 0", c.Text("raw", ""))

	list := c.List("list")
	require.Len(t, list, 4)
	assert.Equal(t, "a", list[0].Text())
	assert.Equal(t, "b c", list[1].Text())
	assert.Equal(t, entities.KindNumber, list[2].Kind())
	assert.Equal(t, "v", list[3].FieldText("k"))

	inner, ok := c.Map("nested").Field("inner")
	require.True(t, ok)
	assert.Equal(t, "1", inner.FieldText("x"))
}

func TestDocumentParser_QuotedBracesAreOpaque(t *testing.T) {
	doc, err := NewDocumentParser().Parse(`## UI Components
banner: {
  type: "welcome_card",
  title: "Use { and } freely",
  subtitle: 'closing } only'
}
`)
	require.NoError(t, err)

	section, _ := doc.Sections.Get(entities.UIComponentsSection)
	c, ok := section.Components.Get("banner")
	require.True(t, ok)
	assert.Equal(t, "Use { and } freely", c.Text("title", ""))
	assert.Equal(t, "closing } only", c.Text("subtitle", ""))
}

func TestDocumentParser_SectionsAndOrder(t *testing.T) {
	doc, err := NewDocumentParser().Parse(`early: { type: "progress_bar" }
## UI Components
b: { type: "x" }
a: { type: "y" }
## Data Model
theme: dark
app_state: { user_name: "", count: 0 }
## UI  Components
c: { type: "z" }
`)
	require.NoError(t, err)

	assert.Equal(t, []string{entities.ImplicitSectionName, "ui_components", "data_model"}, doc.Sections.Keys())

	var names []string
	for _, c := range doc.Components() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"early", "b", "a", "c", "app_state"}, names)

	dm, _ := doc.Sections.Get("data_model")
	theme, ok := dm.Attributes.Get("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", theme.Text())
	assert.Equal(t, 0, doc.Metadata.Len())
}

func TestDocumentParser_IgnoresProseAndSeparators(t *testing.T) {
	doc, err := NewDocumentParser().Parse(`# Title
This line is prose and has no key
---
## UI Components
Some more explanation (with parentheses).
form: { type: "form_input" }
`)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.ComponentCount())
}

func TestDocumentParser_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason entities.ParseFailure
		line   int
	}{
		{
			name:   "unterminated block reports opening line",
			input:  "## UI Components\n\nform: {\n  type: \"form_input\"\n",
			reason: entities.ParseUnterminatedBlock,
			line:   3,
		},
		{
			name:   "stray closing brace",
			input:  "## UI Components\n}\n",
			reason: entities.ParseUnbalancedBrace,
			line:   2,
		},
		{
			name:   "extra closing brace inside block",
			input:  "## UI Components\nform: {\n  type: x\n}}\n",
			reason: entities.ParseUnbalancedBrace,
			line:   4,
		},
		{
			name:   "stray closing brace after section attribute",
			input:  "## App Configuration\ntitle: hi }\n",
			reason: entities.ParseUnbalancedBrace,
			line:   2,
		},
		{
			name:   "stray closing brace after metadata",
			input:  "name: Demo }\n## UI Components\n",
			reason: entities.ParseUnbalancedBrace,
			line:   1,
		},
		{
			name:   "stray closing brace after quoted attribute",
			input:  "## App Configuration\ntitle: \"hi\" }\n",
			reason: entities.ParseUnbalancedBrace,
			line:   2,
		},
		{
			name:   "entry without key",
			input:  "## UI Components\nform: {\n  type: x\n  just words\n}\n",
			reason: entities.ParseInvalidEntry,
			line:   4,
		},
		{
			name:   "unterminated list",
			input:  "## UI Components\nform: {\n  fields: [a, b\n}\n",
			reason: entities.ParseUnterminatedList,
			line:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDocumentParser().Parse(tt.input)
			var perr *entities.ParseError
			require.True(t, errors.As(err, &perr), "expected ParseError, got %v", err)
			assert.Equal(t, tt.reason, perr.Reason)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestDocumentParser_BracesInsideQuotedScalars(t *testing.T) {
	doc, err := NewDocumentParser().Parse("## App Configuration\ntitle: \"a } b\"\n")
	require.NoError(t, err)

	section, ok := doc.Sections.Get(AppConfigurationSection)
	require.True(t, ok)
	title, ok := section.Attributes.Get("title")
	require.True(t, ok)
	assert.Equal(t, "a } b", title.Text())
}

func TestDocumentParser_BareKeyOpensSection(t *testing.T) {
	doc, err := NewDocumentParser().Parse("ui_components:\n  menu: { type: \"action_list\" }\n")
	require.NoError(t, err)

	section, ok := doc.Sections.Get(entities.UIComponentsSection)
	require.True(t, ok)
	assert.True(t, section.Components.Has("menu"))
}
