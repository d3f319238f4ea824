// Package recipe defines the declarative construction specs a locator builds
// objects from, and the providers that supply them.
package recipe

import "fmt"

// ── Recipe ────────────────────────────────────────────────────────────────────

// Recipe is the declarative construction spec for one identifier.
//
//	r := &recipe.Recipe{
//	    Name:      "mail.SMTPClient",
//	    Params:    []any{"config", "!smtp.example.com", 587},
//	    Singleton: true,
//	    Methods: []recipe.Method{
//	        {Name: "SetLogger", Params: []any{"logger"}},
//	    },
//	}
//
// A Recipe is never mutated once it has been handed to a locator.
type Recipe struct {
	// Name is the catalog type to construct.
	Name string `yaml:"name" json:"name"`

	// Params are the raw constructor arguments. nil means "absent".
	Params []any `yaml:"params,omitempty" json:"params,omitempty"`

	// Singleton promotes the built instance into the registry.
	Singleton bool `yaml:"singleton,omitempty" json:"singleton,omitempty"`

	// Methods are invoked on the new instance, in order, after construction.
	Methods []Method `yaml:"methods,omitempty" json:"methods,omitempty"`
}

// Method is a post-construction method call.
type Method struct {
	Name   string `yaml:"name" json:"name"`
	Params []any  `yaml:"params,omitempty" json:"params,omitempty"`

	// ReplacesInstance makes the method's return value the new instance.
	ReplacesInstance bool `yaml:"return_replaces_instance,omitempty" json:"return_replaces_instance,omitempty"`
}

// Valid reports whether r has the minimal shape a locator accepts.
func (r *Recipe) Valid() bool {
	if r == nil || r.Name == "" {
		return false
	}
	for _, m := range r.Methods {
		if m.Name == "" {
			return false
		}
	}
	return true
}

// Clone copies r and its parameter and method lists. Parameter values
// themselves are shared.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	out := *r
	out.Params = cloneParams(r.Params)
	if r.Methods != nil {
		out.Methods = make([]Method, len(r.Methods))
		for i, m := range r.Methods {
			m.Params = cloneParams(m.Params)
			out.Methods[i] = m
		}
	}
	return &out
}

func cloneParams(params []any) []any {
	if params == nil {
		return nil
	}
	return append(make([]any, 0, len(params)), params...)
}

func (r *Recipe) String() string {
	if r == nil {
		return "<nil recipe>"
	}
	return fmt.Sprintf("recipe(%s, %d params, singleton=%t, %d methods)",
		r.Name, len(r.Params), r.Singleton, len(r.Methods))
}

// ── ParamSpec ─────────────────────────────────────────────────────────────────

// ParamKind says how a raw parameter value is turned into an argument.
type ParamKind int

const (
	// Literal values are passed through as-is.
	Literal ParamKind = iota

	// ForcedLiteral values carried the literal marker, which has been stripped.
	ForcedLiteral

	// Reference values name another identifier to resolve.
	Reference
)

func (k ParamKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case ForcedLiteral:
		return "forced-literal"
	case Reference:
		return "reference"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// ParamSpec is a classified parameter. For references Value holds the identifier.
type ParamSpec struct {
	Kind  ParamKind
	Value any
}

// ── Builders ──────────────────────────────────────────────────────────────────

// Marker is the prefix that forces a string parameter to be read literally.
const Marker = "!"

// Ref returns a raw parameter that references id.
func Ref(id string) any { return id }

// Text returns a raw parameter that is always passed as the string s,
// whatever the target parameter's declared type.
func Text(s string) any { return Marker + s }
