package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/authkeeper/internal/api/http/handler"
	"github.com/dtroode/authkeeper/internal/api/http/middleware"
	"github.com/dtroode/authkeeper/internal/logger"
)

// bypassPaths is the explicit allow-list of paths that skip the
// authentication gate: the auth endpoints themselves and health checks.
// Logout is listed deliberately: its tokens are validated by the logout
// flow itself, and a client with an already-expired access token must
// still be able to end its session.
var bypassPaths = []string{
	"/auth/login",
	"/auth/refresh",
	"/auth/logout",
	"/auth/external/callback",
	"/healthz",
}

// Router assembles the HTTP routes and middleware chain.
type Router struct {
	authHandler   *handler.Auth
	healthHandler *handler.Health
	tokens        middleware.TokenAuthenticator
	logger        *logger.Logger
}

// New creates a new Router instance.
func New(
	authHandler *handler.Auth,
	tokens middleware.TokenAuthenticator,
	logger *logger.Logger,
) *Router {
	return &Router{
		authHandler:   authHandler,
		healthHandler: handler.NewHealth(),
		tokens:        tokens,
		logger:        logger,
	}
}

// Register builds the chi handler with logging and the authentication
// gate applied to everything outside the allow-list.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, bypassPaths, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handler)
	mux.Use(authenticate.Handler)

	mux.Get("/healthz", r.healthHandler.Get)
	mux.Route("/auth", func(mux chi.Router) {
		mux.Post("/login", r.authHandler.Login)
		mux.Post("/refresh", r.authHandler.Refresh)
		mux.Post("/logout", r.authHandler.Logout)
		mux.Post("/revoke-all-sessions", r.authHandler.RevokeAllSessions)
		mux.Post("/external/callback", r.authHandler.ExternalCallback)
	})

	return mux
}
