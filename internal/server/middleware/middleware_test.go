package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs/zerolog"

	"github.com/equinor/fmu-settings-api/internal/server/middleware"
	"github.com/equinor/fmu-settings-api/internal/session"
	"github.com/equinor/fmu-settings-api/pkg/logging"
)

func quietLogger() *zerolog.Logger {
	logger := logging.New(io.Discard)
	return &logger
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestChainOrder(t *testing.T) {
	var calls []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := middleware.Chain(tag("outer"), tag("inner"))(okHandler())
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestRecovery(t *testing.T) {
	logger := quietLogger()
	handler := middleware.Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestLoggerPassesThrough(t *testing.T) {
	logger := quietLogger()
	handler := middleware.Logger(logger)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func authHandler(t *testing.T, sessions *session.Manager, config middleware.AuthConfig) http.Handler {
	t.Helper()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := middleware.SessionFromContext(r.Context()); ok {
			_, _ = w.Write([]byte(sess.ProjectRoot))
			return
		}
		_, _ = w.Write([]byte("anonymous"))
	})
	return middleware.Auth(config, sessions, quietLogger())(inner)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	handler := authHandler(t, sessions, middleware.DefaultAuthConfig())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resources/config/revisions", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuthAcceptsValidToken(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	created := sessions.Create("/projects/drogon")
	config := middleware.DefaultAuthConfig()
	handler := authHandler(t, sessions, config)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources/config/revisions", nil)
	req.Header.Set(config.HeaderName, created.ID)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/projects/drogon", rec.Body.String())
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sessions := session.NewManager(time.Hour, session.WithClock(func() time.Time {
		return clock
	}))
	created := sessions.Create("/projects/drogon")
	clock = clock.Add(2 * time.Hour)

	config := middleware.DefaultAuthConfig()
	handler := authHandler(t, sessions, config)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources/config/revisions", nil)
	req.Header.Set(config.HeaderName, created.ID)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthPublicPaths(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	handler := authHandler(t, sessions, middleware.DefaultAuthConfig())

	// Bare entries are public for every method.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Method-qualified entries are public only for that method: session
	// creation needs no token, but session destruction does.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/session", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthDisabled(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	config := middleware.DefaultAuthConfig()
	config.Enabled = false
	handler := authHandler(t, sessions, config)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resources/config/revisions", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}
