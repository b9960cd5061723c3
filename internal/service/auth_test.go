package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authkeeper/internal/mocks"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/testutil"
)

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		verifier := new(mocks.PasswordVerifier)
		tokens := new(mocks.TokenIssuer)
		a := NewAuth(verifier, tokens, testutil.MakeNoopLogger())

		principal := model.Principal{Subject: "user@example.com", Authorities: []string{"user"}}
		pair := model.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

		verifier.On("VerifyPassword", ctx, "user@example.com", "secret").Return(principal, nil).Once()
		tokens.On("Issue", ctx, principal, "10.0.0.1", "cli/1.0").Return(pair, nil).Once()

		got, err := a.Login(ctx, "user@example.com", "secret", "10.0.0.1", "cli/1.0")
		require.NoError(t, err)
		assert.Equal(t, pair, got)
		verifier.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		verifier := new(mocks.PasswordVerifier)
		tokens := new(mocks.TokenIssuer)
		a := NewAuth(verifier, tokens, testutil.MakeNoopLogger())

		verifier.On("VerifyPassword", ctx, "user@example.com", "wrong").
			Return(model.Principal{}, model.ErrInvalidCredentials).Once()

		_, err := a.Login(ctx, "user@example.com", "wrong", "", "")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "Issue")
	})
}

func TestAuth_OnExternalLoginSuccess(t *testing.T) {
	ctx := context.Background()

	tokens := new(mocks.TokenIssuer)
	a := NewAuth(new(mocks.PasswordVerifier), tokens, testutil.MakeNoopLogger())

	pair := model.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
	expected := model.Principal{Subject: "ext-user-42", Authorities: []string{"user"}}

	tokens.On("Issue", ctx, expected, "10.0.0.1", "browser/2.0").Return(pair, nil).Once()

	got, err := a.OnExternalLoginSuccess(ctx, "ext-user-42", "10.0.0.1", "browser/2.0")
	require.NoError(t, err)
	assert.Equal(t, pair, got)
	tokens.AssertExpectations(t)
}
