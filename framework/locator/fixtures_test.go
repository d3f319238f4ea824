package locator_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-locator/framework/introspect"
	"github.com/km-arc/go-locator/framework/locator"
	"github.com/km-arc/go-locator/framework/recipe"
)

// ── fixture types ─────────────────────────────────────────────────────────────

type Settings struct {
	Name string
}

type Clock struct {
	Zone string
}

func NewClock() *Clock { return &Clock{Zone: "UTC"} }

type Mailer struct {
	Clock     *Clock
	From      string
	Retries   int
	Transport string
	Peer      *Mailer
	Calls     []string
}

func NewMailer(clock *Clock, from string, retries ...int) *Mailer {
	m := &Mailer{Clock: clock, From: from}
	if len(retries) > 0 {
		m.Retries = retries[0]
	}
	return m
}

func (m *Mailer) SetTransport(name string) {
	m.Transport = name
	m.Calls = append(m.Calls, "SetTransport")
}

func (m *Mailer) SetPeer(peer *Mailer) {
	m.Peer = peer
	m.Calls = append(m.Calls, "SetPeer")
}

// WithFrom returns a copy with a different sender.
func (m *Mailer) WithFrom(from string) *Mailer {
	cp := *m
	cp.From = from
	cp.Calls = append(append([]string(nil), m.Calls...), "WithFrom")
	return &cp
}

// Detach returns no mailer.
func (m *Mailer) Detach() *Mailer { return nil }

func (m *Mailer) Verify() error {
	return errVerify
}

var errVerify = errors.New("smtp unreachable")

// Holder takes anything, so string parameters default to references.
type Holder struct {
	Value any
}

func NewHolder(v any) *Holder { return &Holder{Value: v} }

// Node references another node, for cycle tests.
type Node struct {
	Next *Node
}

func NewNode(next *Node) *Node { return &Node{Next: next} }

func NewBroken() (*Clock, error) { return nil, errBroken }

var errBroken = errors.New("disk full")

// ── helpers ───────────────────────────────────────────────────────────────────

func newCatalog(t *testing.T) *introspect.Catalog {
	t.Helper()
	types := introspect.NewCatalog()
	types.MustProvide("time.Clock", NewClock)
	types.MustProvide("mail.Mailer", NewMailer, introspect.Names("clock", "from", "retries"))
	types.MustProvide("box.Holder", NewHolder)
	types.MustProvide("graph.Node", NewNode)
	types.MustProvide("disk.Broken", NewBroken)
	require.NoError(t, types.Abstract("mail.Transport"))
	return types
}

// countingProvider counts lookups per identifier.
type countingProvider struct {
	recipes recipe.Map
	calls   map[string]*atomic.Int64
}

func newCountingProvider(recipes recipe.Map) *countingProvider {
	calls := make(map[string]*atomic.Int64, len(recipes))
	for id := range recipes {
		calls[id] = new(atomic.Int64)
	}
	return &countingProvider{recipes: recipes, calls: calls}
}

func (p *countingProvider) Lookup(id string) (*recipe.Recipe, bool) {
	if c, ok := p.calls[id]; ok {
		c.Add(1)
	}
	return p.recipes.Lookup(id)
}

func (p *countingProvider) count(id string) int64 {
	if c, ok := p.calls[id]; ok {
		return c.Load()
	}
	return 0
}

func newLocator(t *testing.T, recipes recipe.Map, opts ...locator.Option) *locator.Locator {
	t.Helper()
	opts = append([]locator.Option{
		locator.WithProvider(recipes),
		locator.WithIntrospector(newCatalog(t)),
	}, opts...)
	return locator.New(&Settings{Name: "test"}, opts...)
}
