package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-locator/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── Routes ────────────────────────────────────────────────────────────────────

func TestRouter_Get(t *testing.T) {
	r := routing.New(nil)
	r.Get("/hello", okHandler)

	rr := do(t, r, http.MethodGet, "/hello")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestRouter_ReadOnly(t *testing.T) {
	r := routing.New(nil)
	r.Get("/hello", okHandler)

	rr := do(t, r, http.MethodPost, "/hello")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(nil)
	rr := do(t, r, http.MethodGet, "/not-registered")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_Param(t *testing.T) {
	r := routing.New(nil)
	r.Get("/locator/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(routing.Param(req, "id")))
	})

	rr := do(t, r, http.MethodGet, "/locator/mail.transport")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "mail.transport", rr.Body.String())
}

// ── Prefix / Group ───────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(nil)
	r.Prefix("/locator", func(sub *routing.Router) {
		sub.Get("/", okHandler)
		sub.Get("/{id}", okHandler)
	})

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/locator/").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/locator/clock").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/clock").Code)
}

func TestRouter_Group_Middleware(t *testing.T) {
	called := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New(nil)
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/protected", okHandler)
	})
	r.Get("/open", okHandler)

	do(t, r, http.MethodGet, "/open")
	assert.False(t, called, "group middleware must not leak")

	do(t, r, http.MethodGet, "/protected")
	assert.True(t, called)
}

// ── Middleware ───────────────────────────────────────────────────────────────

func TestRouter_AccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := routing.New(zap.New(core))
	r.Get("/hello", okHandler)

	do(t, r, http.MethodGet, "/hello")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/hello", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(nil)
	r.Get("/boom", func(w http.ResponseWriter, req *http.Request) { panic("boom") })

	rr := do(t, r, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New(nil)
	r.Get("/ping", okHandler)
	var _ http.Handler = r.Handler()
}
