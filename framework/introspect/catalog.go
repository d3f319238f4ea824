package introspect

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Catalog is an Introspector backed by registered type specs.
//
//	types := introspect.NewCatalog()
//	types.MustProvide("time.Clock", clock.New)
//	types.MustProvide("mail.Mailer", mail.New, introspect.OptionalFrom(2))
//	types.Abstract("mail.Transport")
type Catalog struct {
	mu      sync.RWMutex
	types   map[string]*TypeSpec
	byType  map[reflect.Type]*TypeSpec
	methods map[methodKey]*Method
}

// methodKey identifies a method derived from an instance's dynamic type.
type methodKey struct {
	Type reflect.Type
	Name string
}

var _ Introspector = (*Catalog)(nil)

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		types:   make(map[string]*TypeSpec),
		byType:  make(map[reflect.Type]*TypeSpec),
		methods: make(map[methodKey]*Method),
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds spec, replacing any spec with the same name.
func (c *Catalog) Register(spec *TypeSpec) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf("introspect: type spec needs a name")
	}
	if !spec.Abstract && spec.New == nil {
		return fmt.Errorf("introspect: type %s has no constructor", spec.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.types[spec.Name]; ok && old.Type != nil && c.byType[old.Type] == old {
		delete(c.byType, old.Type)
	}
	c.types[spec.Name] = spec
	if spec.Type != nil {
		c.byType[spec.Type] = spec
	}
	return nil
}

// Provide registers a type built by the constructor function fn.
func (c *Catalog) Provide(name string, fn any, opts ...Option) error {
	spec, err := FromFunc(name, fn, opts...)
	if err != nil {
		return err
	}
	return c.Register(spec)
}

// MustProvide is like Provide but panics on error. Meant for start-up code.
func (c *Catalog) MustProvide(name string, fn any, opts ...Option) {
	if err := c.Provide(name, fn, opts...); err != nil {
		panic(err)
	}
}

// Abstract registers a type name that is known but never instantiable.
func (c *Catalog) Abstract(name string) error {
	return c.Register(&TypeSpec{Name: name, Abstract: true})
}

// ── Introspector ──────────────────────────────────────────────────────────────

// Constructor returns the spec registered under typeName.
func (c *Catalog) Constructor(typeName string) (*TypeSpec, error) {
	c.mu.RLock()
	spec, ok := c.types[typeName]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	if spec.Abstract {
		return nil, fmt.Errorf("%w: %s", ErrAbstract, typeName)
	}
	return spec, nil
}

// Method returns explicit metadata when instance's type was registered with
// it, and otherwise metadata derived from the exported method set.
func (c *Catalog) Method(instance any, name string) (*Method, error) {
	if instance == nil {
		return nil, fmt.Errorf("%w: %s on nil instance", ErrUnknownMethod, name)
	}

	key := methodKey{Type: reflect.TypeOf(instance), Name: name}

	c.mu.RLock()
	if spec, ok := c.byType[key.Type]; ok {
		if m, ok := spec.Methods[name]; ok {
			c.mu.RUnlock()
			return m, nil
		}
	}
	m, ok := c.methods[key]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := boundMethod(instance, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.methods[key] = m
	c.mu.Unlock()
	return m, nil
}

// Names returns the registered type names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
