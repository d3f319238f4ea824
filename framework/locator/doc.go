// Package locator provides a service locator: a registry that resolves string
// identifiers to objects, building them on demand from recipes.
//
// # Overview
//
// A Locator holds two things for its whole lifetime:
//
//   - the registry of live objects (pre-registered entries, overrides and
//     singletons), which always wins
//   - the recipe cache, filled lazily from a recipe.Provider, at most once per
//     identifier
//
// Two identifiers are bound at creation: "locator" (the locator itself) and
// "config" (the configuration object passed to New).
//
// # Resolving
//
//	l := locator.New(cfg,
//	    locator.WithProvider(recipes),
//	    locator.WithIntrospector(types),
//	)
//
//	obj, err := l.Get("mailer")
//	mailer, err := locator.Resolve[*mail.Mailer](l, "mailer")
//	ok := l.Has("mailer")
//
// # Recipes
//
//	recipes := recipe.Map{
//	    "mailer": {
//	        Name:      "mail.Mailer",
//	        Params:    []any{"config", "!noreply@example.com"},
//	        Singleton: true,
//	        Methods: []recipe.Method{
//	            {Name: "SetTransport", Params: []any{"smtp"}},
//	        },
//	    },
//	}
//
// String parameters reference other identifiers unless they start with "!"
// or the constructor declares that position as string. Everything else is
// passed through as a literal.
//
// # Overrides
//
//	l.Override("mailer", fakeMailer) // Get("mailer") now returns fakeMailer
//
// # Errors
//
//   - NotFoundError: nothing registered and no usable recipe
//   - ConstructionError: the recipe's type cannot be built, gets too few
//     parameters, or a constructor or post-construction method fails
//   - CircularReferenceError: a recipe's parameters lead back to an
//     identifier still being built
//
// A malformed recipe is treated as missing and surfaces as NotFoundError.
//
// # Concurrency
//
// All methods are safe for concurrent use. Concurrent first lookups of the
// same identifier may each build an instance: the registry keeps the last
// singleton written and the recipe cache keeps the first recipe stored.
package locator
