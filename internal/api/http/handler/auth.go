package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net"
	"net/http"

	"github.com/dtroode/authkeeper/internal/api/http/authctx"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// AuthService defines the login entry points.
type AuthService interface {
	Login(ctx context.Context, email, password, clientIP, userAgent string) (model.TokenPair, error)
	OnExternalLoginSuccess(ctx context.Context, subject, clientIP, userAgent string) (model.TokenPair, error)
}

// TokenService defines rotation and revocation operations.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken, clientIP string) (model.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	RevokeAllForUser(ctx context.Context, userSubject string) (int64, error)
}

// Auth handles the HTTP endpoints for authentication and session
// lifecycle.
type Auth struct {
	authService    AuthService
	tokenService   TokenService
	callbackSecret string
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler. callbackSecret guards the external
// identity-provider callback; an empty secret disables the endpoint.
func NewAuth(authService AuthService, tokenService TokenService, callbackSecret string, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		tokenService:   tokenService,
		callbackSecret: callbackSecret,
		logger:         logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type logoutRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type externalCallbackRequest struct {
	Subject string `json:"subject"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// Login exchanges credentials for a token pair.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	pair, err := h.authService.Login(r.Context(), req.Email, req.Password, clientIP(r), r.UserAgent())
	if err != nil {
		h.logger.Error("login failed", "error", err)
		WriteUnauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, toTokenPairResponse(pair))
}

// Refresh rotates a refresh token for a new pair. Every failure kind is
// collapsed into the same 401; the detail stays in the logs.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	pair, err := h.tokenService.Refresh(r.Context(), req.RefreshToken, clientIP(r))
	if err != nil {
		h.logger.Error("token refresh failed", "error", err)
		WriteUnauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, toTokenPairResponse(pair))
}

// Logout blacklists the access token and deletes the matching session.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccessToken == "" || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "access and refresh tokens are required")
		return
	}

	if err := h.tokenService.Logout(r.Context(), req.AccessToken, req.RefreshToken); err != nil {
		h.logger.Error("logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RevokeAllSessions deletes every session of the authenticated user.
func (h *Auth) RevokeAllSessions(w http.ResponseWriter, r *http.Request) {
	principal, ok := authctx.PrincipalFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w)
		return
	}

	count, err := h.tokenService.RevokeAllForUser(r.Context(), principal.Subject)
	if err != nil {
		h.logger.Error("revoke all sessions failed", "user_subject", principal.Subject, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("revoked all sessions", "user_subject", principal.Subject, "count", count)
	w.WriteHeader(http.StatusNoContent)
}

// ExternalCallback is the success hook of the external identity
// provider: it trades a provider-verified subject for a token pair. The
// collaborator authenticates with a shared secret header.
func (h *Auth) ExternalCallback(w http.ResponseWriter, r *http.Request) {
	if h.callbackSecret == "" ||
		subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Callback-Secret")), []byte(h.callbackSecret)) != 1 {
		WriteUnauthorized(w)
		return
	}

	var req externalCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Subject == "" {
		writeError(w, http.StatusBadRequest, "subject is required")
		return
	}

	pair, err := h.authService.OnExternalLoginSuccess(r.Context(), req.Subject, clientIP(r), r.UserAgent())
	if err != nil {
		h.logger.Error("external login failed", "subject", req.Subject, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toTokenPairResponse(pair))
}

func toTokenPairResponse(pair model.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
