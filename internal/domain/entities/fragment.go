package entities

// BindingKind determines the default value of a data binding in the generated script.
type BindingKind string

const (
	BindText   BindingKind = "text"
	BindList   BindingKind = "list"
	BindFlag   BindingKind = "flag"
	BindNumber BindingKind = "number"
	BindObject BindingKind = "object"
)

// DefaultLiteral returns the JS literal used when no data model default exists.
func (k BindingKind) DefaultLiteral() string {
	switch k {
	case BindList:
		return "[]"
	case BindFlag:
		return "false"
	case BindNumber:
		return "0"
	case BindObject:
		return "{}"
	default:
		return `""`
	}
}

// Binding is a data property referenced by generated markup.
type Binding struct {
	Name    string
	Kind    BindingKind
	Literal string // JS default; empty uses the kind's default
}

// DefaultLiteral returns the binding's own literal, or its kind's default.
func (b Binding) DefaultLiteral() string {
	if b.Literal != "" {
		return b.Literal
	}
	return b.Kind.DefaultLiteral()
}

// Fragment is the markup produced by one pattern generator.
type Fragment struct {
	Definitions map[string]string // method source by name; other methods get a stub
	Markup      string
	Bindings    []Binding
	Methods     []string
}

// ComponentFragment is a generated fragment tied to its component.
type ComponentFragment struct {
	Ref       ComponentRef
	PatternID string
	Fragment  Fragment
	Pending   bool // placeholder for a component left to the generative fallback
}
