// Package introspect describes constructible types and their methods to a
// locator: how many parameters a constructor requires, which of them are
// declared as string, and how to invoke it.
//
// Metadata is either written out explicitly with Register, or derived once
// from a constructor function with Provide. Lookups never reflect over a
// constructor's signature again.
package introspect

import (
	"errors"
	"reflect"
)

var (
	ErrUnknownType   = errors.New("introspect: unknown type")
	ErrAbstract      = errors.New("introspect: type is not instantiable")
	ErrUnknownMethod = errors.New("introspect: unknown method")
	ErrArgument      = errors.New("introspect: argument not assignable")
	ErrNotFunc       = errors.New("introspect: constructor is not a function")
)

// Introspector is what a locator needs to know about types.
type Introspector interface {
	// Constructor returns the spec of an instantiable type.
	// It fails with ErrUnknownType or ErrAbstract.
	Constructor(typeName string) (*TypeSpec, error)

	// Method returns the named method of instance.
	// It fails with ErrUnknownMethod.
	Method(instance any, name string) (*Method, error)
}

// StringType is the declared type that makes a parameter take string values
// literally.
const StringType = "string"

// Param is one declared parameter of a constructor or method.
type Param struct {
	Name     string
	Type     string
	Optional bool

	// Variadic params also describe every argument past their position.
	Variadic bool
}

// IsString reports whether the declared type is exactly the string type.
func (p Param) IsString() bool { return p.Type == StringType }

// TypeSpec describes one constructible type.
//
//	catalog.Register(&introspect.TypeSpec{
//	    Name:   "mail.Mailer",
//	    Params: []introspect.Param{{Name: "cfg", Type: "*config.Config"}, {Name: "from", Type: "string"}},
//	    New: func(args []any) (any, error) {
//	        return mail.New(args[0].(*config.Config), args[1].(string)), nil
//	    },
//	})
type TypeSpec struct {
	Name string

	// Abstract types are known but can never be built.
	Abstract bool

	// Params is empty for types constructed without arguments.
	Params []Param

	// New builds an instance from resolved arguments.
	New func(args []any) (any, error)

	// Methods available for post-construction calls, by name.
	Methods map[string]*Method

	// Type is the dynamic type of built instances. Optional; it lets Method
	// find explicit metadata for an instance.
	Type reflect.Type
}

// Required is the number of non-optional parameters.
func (s *TypeSpec) Required() int { return required(s.Params) }

// Method describes one callable method.
type Method struct {
	Name   string
	Params []Param

	// Call invokes the method on instance. The result is nil for methods
	// without a return value.
	Call func(instance any, args []any) (any, error)
}

// Required is the number of non-optional parameters.
func (m *Method) Required() int { return required(m.Params) }

func required(params []Param) int {
	n := 0
	for _, p := range params {
		if !p.Optional {
			n++
		}
	}
	return n
}
