package service

import (
	"context"
	"fmt"

	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// defaultExternalAuthorities are granted to principals arriving through
// the external identity-provider callback; the provider vouches for the
// subject only, not for roles.
var defaultExternalAuthorities = []string{"user"}

// TokenIssuer mints a pair and creates the backing session.
type TokenIssuer interface {
	Issue(ctx context.Context, principal model.Principal, clientIP, userAgent string) (model.TokenPair, error)
}

// Auth orchestrates the login entry points; both the password path and
// the external-provider callback funnel into the same issuance.
type Auth struct {
	verifier model.PasswordVerifier
	tokens   TokenIssuer
	logger   *logger.Logger
}

func NewAuth(verifier model.PasswordVerifier, tokens TokenIssuer, logger *logger.Logger) *Auth {
	return &Auth{verifier: verifier, tokens: tokens, logger: logger}
}

// Login verifies credentials and issues a token pair with a new session.
func (a *Auth) Login(ctx context.Context, email, password, clientIP, userAgent string) (model.TokenPair, error) {
	principal, err := a.verifier.VerifyPassword(ctx, email, password)
	if err != nil {
		return model.TokenPair{}, err
	}

	pair, err := a.tokens.Issue(ctx, principal, clientIP, userAgent)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("login succeeded", "user_subject", principal.Subject)
	return pair, nil
}

// OnExternalLoginSuccess issues a token pair for a subject already
// verified by the external identity provider, creating a session exactly
// as the password path does.
func (a *Auth) OnExternalLoginSuccess(ctx context.Context, subject, clientIP, userAgent string) (model.TokenPair, error) {
	principal := model.Principal{Subject: subject, Authorities: defaultExternalAuthorities}

	pair, err := a.tokens.Issue(ctx, principal, clientIP, userAgent)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue tokens for external login: %w", err)
	}

	a.logger.Info("external login succeeded", "user_subject", subject)
	return pair, nil
}
