package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authkeeper/internal/model"
)

func TestJWT_MintVerify_RoundTrip(t *testing.T) {
	codec := NewJWT("test-secret")

	minted, err := codec.Mint("user@example.com", []string{"user", "admin"}, model.TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, minted)

	claims, err := codec.Verify(minted)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.Equal(t, []string{"user", "admin"}, claims.Authorities)
	assert.Equal(t, model.TokenTypeAccess, claims.Type)
	assert.NotEmpty(t, claims.JTI)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestJWT_Verify_TypePreserved(t *testing.T) {
	codec := NewJWT("test-secret")

	minted, err := codec.Mint("user@example.com", nil, model.TokenTypeRefresh, time.Hour)
	require.NoError(t, err)

	claims, err := codec.Verify(minted)
	require.NoError(t, err)
	assert.Equal(t, model.TokenTypeRefresh, claims.Type)
}

func TestJWT_Verify_Expired(t *testing.T) {
	codec := NewJWT("test-secret")

	minted, err := codec.Mint("user@example.com", nil, model.TokenTypeAccess, 0)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = codec.Verify(minted)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_Verify_WrongKey(t *testing.T) {
	minted, err := NewJWT("test-secret").Mint("user@example.com", nil, model.TokenTypeAccess, time.Hour)
	require.NoError(t, err)

	_, err = NewJWT("other-secret").Verify(minted)
	require.ErrorIs(t, err, model.ErrTokenInvalidSignature)
}

func TestJWT_Verify_Malformed(t *testing.T) {
	codec := NewJWT("test-secret")

	for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := codec.Verify(tokenString)
		require.ErrorIs(t, err, model.ErrTokenMalformed, "token %q", tokenString)
	}
}

func TestJWT_Mint_UnsupportedType(t *testing.T) {
	codec := NewJWT("test-secret")

	_, err := codec.Mint("user@example.com", nil, model.TokenType("session"), time.Hour)
	require.ErrorIs(t, err, model.ErrTokenTypeUnsupported)
}

func TestJWT_Mint_NegativeTTL(t *testing.T) {
	codec := NewJWT("test-secret")

	_, err := codec.Mint("user@example.com", nil, model.TokenTypeAccess, -time.Minute)
	require.Error(t, err)
}

func TestJWT_Identifier(t *testing.T) {
	codec := NewJWT("test-secret")

	a, err := codec.Mint("user@example.com", nil, model.TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	b, err := codec.Mint("user@example.com", nil, model.TokenTypeAccess, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, codec.Identifier(a), codec.Identifier(a))
	assert.NotEqual(t, codec.Identifier(a), codec.Identifier(b))
	assert.Len(t, codec.Identifier(a), 64)
}
