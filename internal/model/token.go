package model

import "time"

// TokenType discriminates access tokens from refresh tokens. The type is
// embedded as a signed claim, so a refresh token can never pass where an
// access token is required.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenClaims is the verified content of a compact token.
type TokenClaims struct {
	Subject     string
	Authorities []string
	Type        TokenType
	JTI         string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenCodec mints, verifies and fingerprints compact tokens.
type TokenCodec interface {
	Mint(subject string, authorities []string, tokenType TokenType, ttl time.Duration) (string, error)
	Verify(token string) (TokenClaims, error)
	// Identifier returns a stable fingerprint of the token usable as a
	// revocation key. It does not verify the signature.
	Identifier(token string) string
}

// TokenPair is an access/refresh pair issued on login or rotation.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
