package locator

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/km-arc/go-locator/framework/introspect"
	"github.com/km-arc/go-locator/framework/recipe"
)

// Reserved identifiers, bound when the locator is created.
const (
	LocatorID = "locator"
	ConfigID  = "config"
)

// LiteralMarker forces a string recipe parameter to be taken literally.
const LiteralMarker = recipe.Marker

// ── Locator ───────────────────────────────────────────────────────────────────

// Locator resolves string identifiers to objects. It returns registered
// objects directly and builds everything else from recipes.
type Locator struct {
	id       string
	registry *registry
	recipes  *recipeCache
	provider recipe.Provider
	types    introspect.Introspector
	logger   *zap.Logger
	tracer   trace.Tracer
}

// ── Options ───────────────────────────────────────────────────────────────────

// Option configures a Locator.
type Option func(*Locator)

// WithProvider sets where recipes come from. The default finds nothing.
func WithProvider(p recipe.Provider) Option {
	return func(l *Locator) {
		if p != nil {
			l.provider = p
		}
	}
}

// WithIntrospector sets the type metadata source. The default is an empty
// catalog.
func WithIntrospector(i introspect.Introspector) Option {
	return func(l *Locator) {
		if i != nil {
			l.types = i
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Locator) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTracer sets the tracer used for resolution spans. The default is a
// no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(l *Locator) {
		if tracer != nil {
			l.tracer = tracer
		}
	}
}

// New creates a locator. The locator itself is registered under LocatorID
// and config under ConfigID.
//
//	l := locator.New(cfg,
//	    locator.WithProvider(recipe.NewFSProvider(os.DirFS("./locator"))),
//	    locator.WithIntrospector(types),
//	)
func New(config any, opts ...Option) *Locator {
	l := &Locator{
		id:       uuid.NewString(),
		registry: newRegistry(),
		recipes:  newRecipeCache(),
		provider: recipe.Empty,
		types:    introspect.NewCatalog(),
		logger:   zap.NewNop(),
		tracer:   noop.NewTracerProvider().Tracer("locator"),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.registry.set(ConfigID, config)
	l.registry.set(LocatorID, l)
	return l
}

// ID returns the unique identifier of this locator instance.
func (l *Locator) ID() string { return l.id }

// ── Public surface ────────────────────────────────────────────────────────────

// Override registers obj under id, replacing whatever was there. Later Get
// calls return obj without consulting recipes.
func (l *Locator) Override(id string, obj any) {
	l.registry.set(id, obj)
	l.logger.Debug("override", zap.String("id", id))
}

// Has reports whether Get can find id: a registered object, a cached recipe,
// or a recipe the provider can supply now. It may cache that recipe.
func (l *Locator) Has(id string) bool {
	if _, ok := l.registry.get(id); ok {
		return true
	}
	if _, ok := l.recipes.get(id); ok {
		return true
	}
	l.loadRecipe(id)
	_, ok := l.recipes.get(id)
	return ok
}

// Get returns the object for id, building it from its recipe when it is not
// registered. It fails with NotFoundError, ConstructionError or
// CircularReferenceError.
func (l *Locator) Get(id string) (any, error) {
	return l.GetContext(context.Background(), id)
}

// GetContext is Get with a parent context for tracing.
func (l *Locator) GetContext(ctx context.Context, id string) (any, error) {
	return l.resolve(&resolution{ctx: ctx}, id)
}

// Call treats name as an identifier and resolves it. args are ignored; they
// exist so Call can sit behind dynamic dispatch tables.
//
//	mailer, err := l.Call("mailer")
func (l *Locator) Call(name string, args ...any) (any, error) {
	return l.Get(name)
}

// Recipe returns the recipe for id, loading it if needed.
func (l *Locator) Recipe(id string) (*recipe.Recipe, bool) {
	l.loadRecipe(id)
	r, ok := l.recipes.get(id)
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Registered returns the identifiers currently held as objects, sorted.
func (l *Locator) Registered() []string {
	return l.registry.ids()
}

// Close drops every registered object and cached recipe, including the
// reserved entries.
func (l *Locator) Close() {
	l.registry.clear()
	l.recipes.flush()
}

// ── Resolution ────────────────────────────────────────────────────────────────

// resolution tracks one top-level Get through nested references.
type resolution struct {
	ctx  context.Context
	path []string
}

// enter returns the resolution for building id, or a CircularReferenceError
// when id is already being built further up.
func (r *resolution) enter(ctx context.Context, id string) (*resolution, error) {
	path := append(slices.Clone(r.path), id)
	if slices.Contains(r.path, id) {
		return nil, CircularReferenceError{ID: id, Path: path}
	}
	return &resolution{ctx: ctx, path: path}, nil
}

func (l *Locator) resolve(res *resolution, id string) (any, error) {
	ctx, span := l.tracer.Start(res.ctx, "locator.get", trace.WithAttributes(
		attribute.String("locator.id", id),
		attribute.Int("locator.depth", len(res.path)),
	))
	defer span.End()

	obj, err := l.lookup(ctx, res, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if len(res.path) == 0 {
			l.logger.Debug("resolution failed", zap.String("id", id), zap.Error(err))
		}
	}
	return obj, err
}

func (l *Locator) lookup(ctx context.Context, res *resolution, id string) (any, error) {
	if obj, ok := l.registry.get(id); ok {
		return obj, nil
	}

	r, ok := l.recipes.get(id)
	if !ok {
		l.loadRecipe(id)
		r, ok = l.recipes.get(id)
	}
	if !ok {
		return nil, NotFoundError{ID: id}
	}

	child, err := res.enter(ctx, id)
	if err != nil {
		return nil, err
	}

	instance, err := l.build(child, r)
	if err != nil {
		return nil, err
	}
	return l.finalize(child, id, r, instance)
}

// String describes the locator for logs.
func (l *Locator) String() string { return "locator(" + l.id + ")" }
