package locator

import (
	"sort"
	"sync"
)

// registry holds live objects by identifier: pre-registered entries,
// overrides and promoted singletons. Entries are never evicted.
type registry struct {
	mu      sync.RWMutex
	entries map[string]any
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]any)}
}

// get returns the object stored under id. nil entries count as absent.
func (r *registry) get(id string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obj, ok := r.entries[id]
	if !ok || obj == nil {
		return nil, false
	}
	return obj, true
}

// set stores obj under id. The last write wins.
func (r *registry) set(id string, obj any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = obj
}

func (r *registry) ids() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for id, obj := range r.entries {
		if obj != nil {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]any)
}
