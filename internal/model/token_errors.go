package model

import "errors"

var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenTypeUnsupported  = errors.New("token type unsupported")
	ErrTokenTypeMismatch     = errors.New("token type mismatch")
	ErrTokenRevoked          = errors.New("token revoked")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionExpired        = errors.New("session expired")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrStoreUnavailable      = errors.New("store unavailable")
)
