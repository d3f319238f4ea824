package recipe

// ── Provider interface ────────────────────────────────────────────────────────

// Provider supplies the Recipe for an identifier.
//
// Lookup must be idempotent and free of side effects for the same id: a
// locator may ask again after a candidate has been discarded. A (nil, false)
// result means "not present".
//
//	type tableProvider struct{ table map[string]*recipe.Recipe }
//
//	func (p tableProvider) Lookup(id string) (*recipe.Recipe, bool) {
//	    r, ok := p.table[id]
//	    return r, ok
//	}
type Provider interface {
	Lookup(id string) (*Recipe, bool)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(id string) (*Recipe, bool)

// Lookup calls f(id).
func (f ProviderFunc) Lookup(id string) (*Recipe, bool) { return f(id) }

// ── Static table ──────────────────────────────────────────────────────────────

// Map is a static, in-memory recipe table.
//
//	recipes := recipe.Map{
//	    "clock":  {Name: "time.Clock", Singleton: true},
//	    "mailer": {Name: "mail.Mailer", Params: []any{"config", "clock"}},
//	}
type Map map[string]*Recipe

// Lookup returns the table entry for id.
func (m Map) Lookup(id string) (*Recipe, bool) {
	r, ok := m[id]
	if !ok || r == nil {
		return nil, false
	}
	return r, true
}

// Raw is a static table of loosely typed recipes, decoded on lookup.
// Entries that fail Decode are reported as not present.
type Raw map[string]map[string]any

// Lookup decodes the table entry for id.
func (m Raw) Lookup(id string) (*Recipe, bool) {
	raw, ok := m[id]
	if !ok {
		return nil, false
	}
	return Decode(raw)
}

// ── Chain ─────────────────────────────────────────────────────────────────────

// Chain queries providers in order and returns the first recipe found.
//
//	p := recipe.Chain(overrides, recipe.NewFSProvider(os.DirFS("./locator")))
func Chain(providers ...Provider) Provider {
	list := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			list = append(list, p)
		}
	}
	return chain(list)
}

type chain []Provider

func (c chain) Lookup(id string) (*Recipe, bool) {
	for _, p := range c {
		if r, ok := p.Lookup(id); ok {
			return r, true
		}
	}
	return nil, false
}

// Empty is a Provider that never finds anything.
var Empty Provider = ProviderFunc(func(string) (*Recipe, bool) { return nil, false })
