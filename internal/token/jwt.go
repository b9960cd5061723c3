package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/model"
)

// Claims represents JWT claims with token type and granted authorities.
type Claims struct {
	jwt.RegisteredClaims
	Authorities []string `json:"authorities,omitempty"`
	TokenType   string   `json:"typ"`
}

// JWT implements model.TokenCodec backed by symmetric HMAC. The signing
// key is fixed at construction; swapping keys means constructing a new
// codec.
type JWT struct {
	secretKey []byte
}

// NewJWT creates a new JWT codec with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: []byte(secretKey)}
}

// Mint builds and signs a token of the given type. A zero ttl produces a
// token that is already expired; negative ttl is rejected.
func (j *JWT) Mint(subject string, authorities []string, tokenType model.TokenType, ttl time.Duration) (string, error) {
	if tokenType != model.TokenTypeAccess && tokenType != model.TokenTypeRefresh {
		return "", model.ErrTokenTypeUnsupported
	}
	if ttl < 0 {
		return "", fmt.Errorf("negative ttl %s", ttl)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Authorities: authorities,
		TokenType:   string(tokenType),
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// Verify parses and validates a token: structural parse, then signature,
// then expiry. Failures map onto the model sentinel errors so callers can
// log the exact kind without leaking it to clients.
func (j *JWT) Verify(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.TokenClaims{}, classifyParseError(err)
	}
	if !token.Valid {
		return model.TokenClaims{}, model.ErrTokenMalformed
	}

	tokenType := model.TokenType(claims.TokenType)
	if tokenType != model.TokenTypeAccess && tokenType != model.TokenTypeRefresh {
		return model.TokenClaims{}, model.ErrTokenTypeUnsupported
	}

	out := model.TokenClaims{
		Subject:     claims.Subject,
		Authorities: claims.Authorities,
		Type:        tokenType,
		JTI:         claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}

// Identifier returns the hex SHA-256 of the compact token string. It is
// cheap, constant-size, and keeps raw bearer credentials out of the
// revocation store.
func (j *JWT) Identifier(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:])
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return model.ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return model.ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %w", model.ErrTokenMalformed, err)
	}
}
