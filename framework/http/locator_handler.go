package http

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"github.com/km-arc/go-locator/framework/locator"
	"github.com/km-arc/go-locator/framework/routing"
)

// LocatorHandler exposes a locator over read-only JSON endpoints.
type LocatorHandler struct {
	locator *locator.Locator
	logger  *zap.Logger
}

// NewLocatorHandler creates a handler for l. A nil logger discards output.
func NewLocatorHandler(l *locator.Locator, logger *zap.Logger) *LocatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocatorHandler{locator: l, logger: logger}
}

// Routes registers the handler's endpoints on r.
func (h *LocatorHandler) Routes(r *routing.Router) {
	r.Get("/healthz", h.Health)
	r.Prefix("/locator", func(lr *routing.Router) {
		lr.Get("/", h.Index)
		lr.Get("/{id}", h.Show)
		lr.Get("/{id}/recipe", h.Recipe)
		lr.Get("/{id}/instance", h.Instance)
	})
}

// Health reports liveness and the locator's identity.
func (h *LocatorHandler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponse(w).Success(map[string]any{
		"status":  "ok",
		"locator": h.locator.ID(),
	})
}

// Index lists the identifiers currently held as objects.
func (h *LocatorHandler) Index(w http.ResponseWriter, r *http.Request) {
	NewResponse(w).Success(h.locator.Registered())
}

// Show reports whether an identifier can be resolved, without building it.
func (h *LocatorHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := routing.Param(r, "id")
	res := NewResponse(w)

	if !h.locator.Has(id) {
		res.NotFound(locator.NotFoundError{ID: id}.Error())
		return
	}
	res.Success(map[string]any{
		"id":         id,
		"registered": slices.Contains(h.locator.Registered(), id),
		"has":        true,
	})
}

// Recipe returns the recipe an identifier is built from.
func (h *LocatorHandler) Recipe(w http.ResponseWriter, r *http.Request) {
	id := routing.Param(r, "id")
	res := NewResponse(w)

	rec, ok := h.locator.Recipe(id)
	if !ok {
		res.NotFound(fmt.Sprintf("no recipe for identifier '%s'", id))
		return
	}
	res.Success(rec)
}

// Instance resolves an identifier and reports the Go type it resolved to.
func (h *LocatorHandler) Instance(w http.ResponseWriter, r *http.Request) {
	id := routing.Param(r, "id")
	res := NewResponse(w)

	obj, err := h.locator.GetContext(r.Context(), id)
	if err != nil {
		status := statusFor(id, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("resolve failed", zap.String("id", id), zap.Error(err))
		}
		res.Error(status, err.Error())
		return
	}

	res.Success(map[string]any{
		"id":   id,
		"type": fmt.Sprintf("%T", obj),
	})
}

// statusFor maps a resolution error to an HTTP status. Only a missing id
// itself is a 404; a missing dependency is a server-side failure.
func statusFor(id string, err error) int {
	var nf locator.NotFoundError
	if errors.As(err, &nf) && nf.ID == id {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
