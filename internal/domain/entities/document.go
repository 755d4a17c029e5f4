package entities

import "fmt"

// ImplicitSectionName holds component blocks declared before any section header.
const ImplicitSectionName = "document"

// UIComponentsSection is the normalized name of the "## UI Components" section.
const UIComponentsSection = "ui_components"

// Document is the parsed form of one APML text.
// Section and component order follow declaration order and drive output order.
type Document struct {
	Metadata *OrderedMap[string]
	Sections *OrderedMap[*Section]
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		Metadata: NewOrderedMap[string](),
		Sections: NewOrderedMap[*Section](),
	}
}

// Section returns the named section, creating it if needed.
func (d *Document) Section(name string) *Section {
	if s, ok := d.Sections.Get(name); ok {
		return s
	}
	s := NewSection(name)
	d.Sections.Set(name, s)
	return s
}

// Components returns every component in section order, then declaration order.
func (d *Document) Components() []*ComponentConfig {
	var out []*ComponentConfig
	for _, s := range d.Sections.All() {
		for _, c := range s.Components.All() {
			out = append(out, c)
		}
	}
	return out
}

// ComponentCount returns the number of components across all sections.
func (d *Document) ComponentCount() int {
	n := 0
	for _, s := range d.Sections.All() {
		n += s.Components.Len()
	}
	return n
}

// Section groups components under a "## Header".
type Section struct {
	Attributes *OrderedMap[Value]
	Components *OrderedMap[*ComponentConfig]
	Name       string
}

// NewSection creates an empty section.
func NewSection(name string) *Section {
	return &Section{
		Name:       name,
		Attributes: NewOrderedMap[Value](),
		Components: NewOrderedMap[*ComponentConfig](),
	}
}

// ComponentRef addresses a component within a document.
type ComponentRef struct {
	Section   string `json:"section" yaml:"section"`
	Component string `json:"component" yaml:"component"`
}

// String renders "section.component".
func (r ComponentRef) String() string {
	return fmt.Sprintf("%s.%s", r.Section, r.Component)
}

// ComponentConfig is one "name: { ... }" block.
type ComponentConfig struct {
	Properties  *OrderedMap[Value]
	Name        string
	Section     string
	PatternName string // empty until resolved from a "type" property
	RawText     string
	Line        int
}

// Ref returns the component's address.
func (c *ComponentConfig) Ref() ComponentRef {
	return ComponentRef{Section: c.Section, Component: c.Name}
}

// Property returns a property value.
func (c *ComponentConfig) Property(key string) (Value, bool) {
	return c.Properties.Get(key)
}

// Text returns a property as text, or fallback when absent or empty.
func (c *ComponentConfig) Text(key, fallback string) string {
	v, ok := c.Properties.Get(key)
	if !ok {
		return fallback
	}
	if s := v.Text(); s != "" {
		return s
	}
	return fallback
}

// List returns a list property, or nil.
func (c *ComponentConfig) List(key string) []Value {
	v, ok := c.Properties.Get(key)
	if !ok {
		return nil
	}
	items, _ := v.AsList()
	return items
}

// Map returns a map property as a Value, or an empty map.
func (c *ComponentConfig) Map(key string) Value {
	v, ok := c.Properties.Get(key)
	if !ok || v.Kind() != KindMap {
		return MapValue(nil)
	}
	return v
}

// MissingFields returns the required keys that are absent or empty, in the given order.
func (c *ComponentConfig) MissingFields(required []string) []string {
	var missing []string
	for _, key := range required {
		v, ok := c.Properties.Get(key)
		if !ok || !v.Truthy() {
			missing = append(missing, key)
		}
	}
	return missing
}

// IsRenderable reports whether the component is a UI component subject to pattern analysis.
// Blocks outside the UI components section without a type are data blocks.
func (c *ComponentConfig) IsRenderable() bool {
	return c.PatternName != "" || c.Section == UIComponentsSection
}
