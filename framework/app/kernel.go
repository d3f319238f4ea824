package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-locator/framework/config"
	gohttp "github.com/km-arc/go-locator/framework/http"
	"github.com/km-arc/go-locator/framework/introspect"
	"github.com/km-arc/go-locator/framework/locator"
	"github.com/km-arc/go-locator/framework/logging"
	"github.com/km-arc/go-locator/framework/recipe"
	"github.com/km-arc/go-locator/framework/routing"
	"github.com/km-arc/go-locator/framework/tracing"
)

// Identifiers the kernel registers on top of "locator" and "config".
const (
	LoggerID = "logger"
	RouterID = "router"
)

// Application wires configuration, logging, tracing and the locator, and
// serves the inspection endpoints.
type Application struct {
	Config  *config.Config
	Logger  *zap.Logger
	Tracing *tracing.Provider
	Types   *introspect.Catalog
	Locator *locator.Locator
	Router  *routing.Router
}

// ── Options ───────────────────────────────────────────────────────────────────

type options struct {
	envFiles  []string
	recipeFS  fs.FS
	providers []recipe.Provider
	types     []func(*introspect.Catalog)
	logger    *zap.Logger
}

// Option configures New.
type Option func(*options)

// WithEnvFiles sets the .env files to load. The default is ".env".
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, files...) }
}

// WithRecipeFS reads recipe files from fsys instead of LOCATOR_RECIPE_DIR.
func WithRecipeFS(fsys fs.FS) Option {
	return func(o *options) { o.recipeFS = fsys }
}

// WithRecipes adds providers consulted before the recipe files, in order.
func WithRecipes(providers ...recipe.Provider) Option {
	return func(o *options) { o.providers = append(o.providers, providers...) }
}

// WithTypes registers application types in the catalog.
//
//	app.New(app.WithTypes(func(c *introspect.Catalog) {
//	    c.MustProvide("mail.Mailer", mail.New)
//	}))
func WithTypes(register func(*introspect.Catalog)) Option {
	return func(o *options) { o.types = append(o.types, register) }
}

// WithLogger uses logger instead of building one from LOG_LEVEL and LOG_FORMAT.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// ── Bootstrap ─────────────────────────────────────────────────────────────────

// New bootstraps the application.
//
//	application, err := app.New(app.WithEnvFiles(".env"))
//	mailer, err := application.Locator.Get("mailer")
func New(opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := config.Load(o.envFiles...)

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return nil, err
		}
	}

	tp, err := tracing.NewProvider(cfg.Trace)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	types := introspect.NewCatalog()
	registerFrameworkTypes(types)
	for _, register := range o.types {
		register(types)
	}

	recipeFS := o.recipeFS
	if recipeFS == nil {
		recipeFS = os.DirFS(cfg.Locator.RecipeDir)
	}
	files := recipe.NewFSProvider(recipeFS,
		recipe.WithPattern(cfg.Locator.RecipePattern),
		recipe.WithLogger(logger),
	)

	l := locator.New(cfg,
		locator.WithProvider(recipe.Chain(append(o.providers, files)...)),
		locator.WithIntrospector(types),
		locator.WithLogger(logger.Named("locator")),
		locator.WithTracer(tp.Tracer()),
	)

	router := routing.New(logger.Named("http"))
	gohttp.NewLocatorHandler(l, logger).Routes(router)

	l.Override(LoggerID, logger)
	l.Override(RouterID, router)

	logger.Debug("application booted",
		zap.String("locator", l.ID()),
		zap.String("env", cfg.App.Env),
		zap.String("recipe_dir", cfg.Locator.RecipeDir),
	)

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Tracing: tp,
		Types:   types,
		Locator: l,
		Router:  router,
	}, nil
}

// registerFrameworkTypes makes the framework's own components buildable from
// recipes.
func registerFrameworkTypes(types *introspect.Catalog) {
	types.MustProvide("routing.Router", routing.New, introspect.Names("logger"))
	types.MustProvide("http.LocatorHandler", gohttp.NewLocatorHandler, introspect.Names("locator", "logger"))
}

// ── Serve ─────────────────────────────────────────────────────────────────────

// Run serves the inspection router on APP_PORT until ctx is done, then shuts
// the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.App.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("listening",
			zap.String("app", a.Config.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", a.Config.App.Env),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Shutdown flushes traces, drops the locator's objects and syncs the logger.
func (a *Application) Shutdown(ctx context.Context) error {
	err := a.Tracing.Shutdown(ctx)
	a.Locator.Close()
	_ = a.Logger.Sync()
	return err
}

// ── Environment ───────────────────────────────────────────────────────────────

func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
