package recipe_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-locator/framework/recipe"
)

// ── Map / Raw / Func ──────────────────────────────────────────────────────────

func TestMap_Lookup(t *testing.T) {
	m := recipe.Map{
		"clock": {Name: "time.Clock"},
		"nil":   nil,
	}

	r, ok := m.Lookup("clock")
	require.True(t, ok)
	assert.Equal(t, "time.Clock", r.Name)

	_, ok = m.Lookup("nil")
	assert.False(t, ok, "nil entries are not present")

	_, ok = m.Lookup("missing")
	assert.False(t, ok)
}

func TestRaw_LookupDecodes(t *testing.T) {
	m := recipe.Raw{
		"good": {"name": "a.B", "params": []any{"config"}},
		"bad":  {"name": "a.B", "params": "config"},
	}

	r, ok := m.Lookup("good")
	require.True(t, ok)
	assert.Equal(t, []any{"config"}, r.Params)

	_, ok = m.Lookup("bad")
	assert.False(t, ok)
}

func TestProviderFunc(t *testing.T) {
	calls := 0
	p := recipe.ProviderFunc(func(id string) (*recipe.Recipe, bool) {
		calls++
		return &recipe.Recipe{Name: id}, true
	})

	r, ok := p.Lookup("x.Y")
	require.True(t, ok)
	assert.Equal(t, "x.Y", r.Name)
	assert.Equal(t, 1, calls)
}

func TestEmpty_NeverFinds(t *testing.T) {
	_, ok := recipe.Empty.Lookup("anything")
	assert.False(t, ok)
}

// ── Chain ─────────────────────────────────────────────────────────────────────

func TestChain_FirstFoundWins(t *testing.T) {
	first := recipe.Map{"a": {Name: "first.A"}}
	second := recipe.Map{"a": {Name: "second.A"}, "b": {Name: "second.B"}}

	p := recipe.Chain(first, nil, second)

	r, ok := p.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "first.A", r.Name)

	r, ok = p.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "second.B", r.Name)

	_, ok = p.Lookup("c")
	assert.False(t, ok)
}

func TestChain_Empty(t *testing.T) {
	_, ok := recipe.Chain().Lookup("a")
	assert.False(t, ok)
}

// ── FSProvider ────────────────────────────────────────────────────────────────

func recipeFS() fstest.MapFS {
	return fstest.MapFS{
		"locate.mailer.yaml": {Data: []byte(`
mailer:
  name: mail.Mailer
  params: [config, "!noreply@example.com", 25]
  singleton: true
  methods:
    - name: SetTransport
      params: [smtp]
    - name: Wrap
      return_replaces_instance: true
`)},
		"locate.clock.yaml":    {Data: []byte("clock:\n  name: time.Clock\n")},
		"locate.wrongkey.yaml": {Data: []byte("other:\n  name: a.B\n")},
		"locate.badparams.yaml": {Data: []byte(`
badparams:
  name: a.B
  params: config
`)},
		"locate.broken.yaml":        {Data: []byte("broken: [unclosed\n")},
		"recipes/locate.nested.yml": {Data: []byte("nested:\n  name: n.N\n")},
	}
}

func TestFSProvider_LoadsRecipe(t *testing.T) {
	p := recipe.NewFSProvider(recipeFS())

	r, ok := p.Lookup("mailer")
	require.True(t, ok)

	assert.Equal(t, "mail.Mailer", r.Name)
	assert.Equal(t, []any{"config", "!noreply@example.com", 25}, r.Params)
	assert.True(t, r.Singleton)
	require.Len(t, r.Methods, 2)
	assert.Equal(t, []any{"smtp"}, r.Methods[0].Params)
	assert.True(t, r.Methods[1].ReplacesInstance)
}

func TestFSProvider_NoParams(t *testing.T) {
	r, ok := recipe.NewFSProvider(recipeFS()).Lookup("clock")
	require.True(t, ok)
	assert.Nil(t, r.Params)
}

func TestFSProvider_NotPresent(t *testing.T) {
	p := recipe.NewFSProvider(recipeFS())

	for _, id := range []string{"missing", "wrongkey", "badparams", "broken", "", "../clock", "a/b", `a\b`} {
		t.Run(id, func(t *testing.T) {
			r, ok := p.Lookup(id)
			assert.False(t, ok)
			assert.Nil(t, r)
		})
	}
}

func TestFSProvider_CustomPattern(t *testing.T) {
	p := recipe.NewFSProvider(recipeFS(), recipe.WithPattern("recipes/locate.%s.yml"), recipe.WithLogger(nil))

	r, ok := p.Lookup("nested")
	require.True(t, ok)
	assert.Equal(t, "n.N", r.Name)

	_, ok = p.Lookup("clock")
	assert.False(t, ok)
}

func TestFSProvider_InvalidPatternFallsBack(t *testing.T) {
	for _, pattern := range []string{"recipes.yaml", "%s/%s.yaml", "locate.%d.yaml", "%s.%v.yaml"} {
		t.Run(pattern, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			p := recipe.NewFSProvider(recipeFS(), recipe.WithPattern(pattern), recipe.WithLogger(zap.New(core)))

			r, ok := p.Lookup("clock")
			require.True(t, ok, "default pattern still resolves")
			assert.Equal(t, "time.Clock", r.Name)

			entries := logs.FilterMessage("invalid recipe pattern, using default").All()
			require.Len(t, entries, 1)
			assert.Equal(t, pattern, entries[0].ContextMap()["pattern"])
		})
	}
}

func TestValidPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{recipe.DefaultPattern, true},
		{"recipes/locate.%s.yml", true},
		{"100%%/%s.yaml", true},
		{"recipes.yaml", false},
		{"%s-%s.yaml", false},
		{"locate.%d.yaml", false},
		{"50%/%s.yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, recipe.ValidPattern(tt.pattern))
		})
	}
}

func TestFSProvider_IsIdempotent(t *testing.T) {
	p := recipe.NewFSProvider(recipeFS())

	a, ok := p.Lookup("mailer")
	require.True(t, ok)
	b, ok := p.Lookup("mailer")
	require.True(t, ok)

	assert.Equal(t, a, b)
}
