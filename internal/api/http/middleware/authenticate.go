package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dtroode/authkeeper/internal/api/http/authctx"
	"github.com/dtroode/authkeeper/internal/api/http/handler"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// TokenAuthenticator resolves a principal from a bearer access token.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.Principal, error)
}

// Authenticate is the per-request gate: it extracts the bearer token,
// checks revocation, verifies it and attaches the principal to the
// request context. It holds no mutable state and is shared across
// concurrent requests.
type Authenticate struct {
	tokens TokenAuthenticator
	bypass map[string]struct{}
	logger *logger.Logger
}

// NewAuthenticate creates the gate. bypassPaths is the explicit
// allow-list of exact paths that skip authentication entirely (the auth
// endpoints themselves and health checks).
func NewAuthenticate(tokens TokenAuthenticator, bypassPaths []string, logger *logger.Logger) *Authenticate {
	bypass := make(map[string]struct{}, len(bypassPaths))
	for _, p := range bypassPaths {
		bypass[p] = struct{}{}
	}
	return &Authenticate{tokens: tokens, bypass: bypass, logger: logger}
}

// Handler authenticates the request. A missing Authorization header is
// not an error: the request continues unauthenticated and downstream
// authorization rules decide. Any failure while checking a presented
// token, revocation-store unavailability included, fails closed and is
// collapsed into a generic 401; the exact kind is only logged.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.bypass[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, ok := extractBearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := m.tokens.Authenticate(r.Context(), tokenString)
		if err != nil {
			m.logger.Info("request authentication failed",
				"path", r.URL.Path,
				"kind", err.Error())
			handler.WriteUnauthorized(w)
			return
		}

		ctx := authctx.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(value, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(value, prefix))
	if token == "" {
		return "", false
	}
	return token, true
}
