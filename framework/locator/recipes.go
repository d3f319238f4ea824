package locator

import (
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/km-arc/go-locator/framework/recipe"
)

// recipeCache memoizes one recipe per identifier for the locator's lifetime.
// The first insert wins; entries never expire.
type recipeCache struct {
	items *gocache.Cache
}

func newRecipeCache() *recipeCache {
	return &recipeCache{items: gocache.New(gocache.NoExpiration, 0)}
}

func (c *recipeCache) get(id string) (*recipe.Recipe, bool) {
	v, ok := c.items.Get(id)
	if !ok {
		return nil, false
	}
	r, ok := v.(*recipe.Recipe)
	return r, ok
}

// add stores r unless id already has a recipe. It reports whether r was stored.
func (c *recipeCache) add(id string, r *recipe.Recipe) bool {
	return c.items.Add(id, r, gocache.NoExpiration) == nil
}

func (c *recipeCache) flush() { c.items.Flush() }

// loadRecipe asks the provider for id's recipe and caches it when it has the
// minimal shape. Missing or malformed candidates are dropped silently, so a
// later call may try again.
func (l *Locator) loadRecipe(id string) {
	if _, ok := l.recipes.get(id); ok {
		return
	}
	if id == LocatorID || id == ConfigID {
		return
	}

	r, ok := l.provider.Lookup(id)
	if !ok {
		l.logger.Debug("no recipe", zap.String("id", id))
		return
	}
	if !r.Valid() {
		l.logger.Debug("recipe discarded", zap.String("id", id), zap.Stringer("recipe", r))
		return
	}

	if l.recipes.add(id, r.Clone()) {
		l.logger.Debug("recipe loaded", zap.String("id", id), zap.String("type", r.Name))
	}
}
