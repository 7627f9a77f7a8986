package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/equinor/fmu-settings-api/internal/session"
	"github.com/equinor/fmu-settings-api/pkg/errors"
	"github.com/equinor/fmu-settings-api/pkg/logging"
)

// AuthConfig holds session authentication configuration.
type AuthConfig struct {
	Enabled     bool
	HeaderName  string
	PublicPaths []string
}

// DefaultAuthConfig returns default authentication configuration.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		Enabled:     true,
		HeaderName:  "X-Fmu-Session-Token",
		PublicPaths: []string{"/health", "/api/v1/health", "POST /api/v1/session"},
	}
}

// sessionKey is the context key for the resolved session.
type sessionKey struct{}

// SessionFromContext returns the session resolved by the Auth
// middleware, if any.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(session.Session)
	return s, ok
}

// Auth middleware resolves the session token header against the session
// manager and attaches the session to the request context.
func Auth(config AuthConfig, sessions *session.Manager, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled || isPublicPath(r.Method, r.URL.Path, config.PublicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			token := r.Header.Get(config.HeaderName)
			sess, err := sessions.Get(token)
			if err != nil {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("token_provided", token != "").
					Bool("expired", errors.IsSessionExpired(err)).
					Msg("Authentication failed")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"data":null,"error":{"code":"UNAUTHORIZED","message":"Invalid or missing session token","details":"Provide a valid session token in the ` + config.HeaderName + ` header"}}`))
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			ctx = logging.WithSession(ctx, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath checks if a request skips authentication. An entry is
// either a bare path, public for every method, or "METHOD path".
func isPublicPath(method, path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if m, rest, ok := strings.Cut(p, " "); ok && rest != "" {
			if m == method && rest == path {
				return true
			}
			continue
		}
		if p == path {
			return true
		}
	}
	return false
}
