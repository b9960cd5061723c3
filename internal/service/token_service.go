package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// TokenService provides high-level operations for issuing, rotating and
// revoking token pairs. It composes the TokenCodec, SessionStore and
// RevocationStore.
type TokenService struct {
	codec       model.TokenCodec
	sessions    model.SessionStore
	revocations model.RevocationStore
	accessTTL   time.Duration
	refreshTTL  time.Duration
	now         func() time.Time
	logger      *logger.Logger
}

func NewTokenService(
	codec model.TokenCodec,
	sessions model.SessionStore,
	revocations model.RevocationStore,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *TokenService {
	return &TokenService{
		codec:       codec,
		sessions:    sessions,
		revocations: revocations,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		now:         time.Now,
		logger:      logger,
	}
}

// Issue mints a fresh access/refresh pair and creates the session row
// holding the refresh token's hash.
func (s *TokenService) Issue(ctx context.Context, principal model.Principal, clientIP, userAgent string) (model.TokenPair, error) {
	access, err := s.codec.Mint(principal.Subject, principal.Authorities, model.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := s.codec.Mint(principal.Subject, principal.Authorities, model.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	now := s.now()
	session := model.Session{
		ID:          uuid.New(),
		UserSubject: principal.Subject,
		TokenHash:   hashToken(refresh),
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.refreshTTL),
		ClientIP:    clientIP,
		UserAgent:   userAgent,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a refresh token for a new pair, rotating the session
// row atomically. A refresh token that parses but matches no live session
// is treated as reuse of an already-rotated token: every session of that
// subject is revoked before the error is returned.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh, clientIP string) (model.TokenPair, error) {
	claims, err := s.codec.Verify(presentedRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}
	if claims.Type != model.TokenTypeRefresh {
		return model.TokenPair{}, model.ErrTokenTypeMismatch
	}

	providedHash := hashToken(presentedRefresh)
	session, err := s.sessions.GetByTokenHash(ctx, providedHash)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			s.handleReuse(ctx, claims.Subject, clientIP)
			return model.TokenPair{}, model.ErrSessionNotFound
		}
		return model.TokenPair{}, fmt.Errorf("failed to load session: %w", err)
	}

	if session.ExpiresAt.Before(s.now()) {
		if err := s.sessions.Revoke(ctx, session.ID); err != nil {
			s.logger.Error("failed to revoke expired session", "session_id", session.ID, "error", err)
		}
		return model.TokenPair{}, model.ErrSessionExpired
	}

	access, err := s.codec.Mint(claims.Subject, claims.Authorities, model.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to mint access token: %w", err)
	}
	refresh, err := s.codec.Mint(claims.Subject, claims.Authorities, model.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to mint refresh token: %w", err)
	}

	newExpiry := s.now().Add(s.refreshTTL)
	if err := s.sessions.Rotate(ctx, session.ID, providedHash, hashToken(refresh), newExpiry); err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			// Lost the rotation race; the winner holds the only valid
			// refresh token now.
			return model.TokenPair{}, model.ErrSessionNotFound
		}
		return model.TokenPair{}, fmt.Errorf("failed to rotate session: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout blacklists the access token until its own expiry and deletes the
// session matching the refresh token. Both halves are idempotent.
func (s *TokenService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.codec.Verify(accessToken); err == nil {
		if err := s.revocations.Revoke(ctx, s.codec.Identifier(accessToken), claims.ExpiresAt); err != nil {
			return fmt.Errorf("failed to blacklist access token: %w", err)
		}
	} else if !errors.Is(err, model.ErrTokenExpired) {
		s.logger.Warn("logout with unverifiable access token", "error", err)
	}

	session, err := s.sessions.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load session for logout: %w", err)
	}
	if err := s.sessions.Revoke(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// RevokeAllForUser deletes every session of the subject.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userSubject string) (int64, error) {
	count, err := s.sessions.RevokeAllForUser(ctx, userSubject)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke sessions for user: %w", err)
	}
	return count, nil
}

// Authenticate resolves the principal behind a bearer access token:
// blacklist lookup first, then cryptographic verification, then the
// access-type requirement. A revocation-store failure surfaces as
// ErrStoreUnavailable so the caller can fail closed.
func (s *TokenService) Authenticate(ctx context.Context, accessToken string) (model.Principal, error) {
	revoked, err := s.revocations.IsRevoked(ctx, s.codec.Identifier(accessToken))
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}
	if revoked {
		return model.Principal{}, model.ErrTokenRevoked
	}

	claims, err := s.codec.Verify(accessToken)
	if err != nil {
		return model.Principal{}, err
	}
	if claims.Type != model.TokenTypeAccess {
		return model.Principal{}, model.ErrTokenTypeMismatch
	}

	return model.Principal{Subject: claims.Subject, Authorities: claims.Authorities}, nil
}

func (s *TokenService) handleReuse(ctx context.Context, userSubject, clientIP string) {
	count, err := s.sessions.RevokeAllForUser(ctx, userSubject)
	if err != nil {
		s.logger.Error("failed to revoke sessions after refresh reuse",
			"user_subject", userSubject,
			"error", err)
		return
	}
	s.logger.Warn("refresh token reuse detected, revoked all sessions for user",
		"user_subject", userSubject,
		"client_ip", clientIP,
		"revoked_sessions", count)
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}
