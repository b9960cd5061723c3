package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authkeeper/internal/api/http/authctx"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/testutil"
)

type tokenAuthenticatorMock struct {
	mock.Mock
}

func (m *tokenAuthenticatorMock) Authenticate(ctx context.Context, accessToken string) (model.Principal, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(model.Principal), args.Error(1)
}

func TestAuthenticate_Handler(t *testing.T) {
	t.Run("bypass path skips authentication", func(t *testing.T) {
		tokens := new(tokenAuthenticatorMock)
		m := NewAuthenticate(tokens, []string{"/auth/login"}, testutil.MakeNoopLogger())

		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.Header.Set("Authorization", "Bearer anything")
		w := httptest.NewRecorder()
		m.Handler(next).ServeHTTP(w, r)

		assert.True(t, called)
		tokens.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("missing header passes through anonymously", func(t *testing.T) {
		tokens := new(tokenAuthenticatorMock)
		m := NewAuthenticate(tokens, nil, testutil.MakeNoopLogger())

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := authctx.PrincipalFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		m.Handler(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		tokens.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("non-bearer header passes through anonymously", func(t *testing.T) {
		tokens := new(tokenAuthenticatorMock)
		m := NewAuthenticate(tokens, nil, testutil.MakeNoopLogger())

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		m.Handler(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		tokens.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("valid token attaches principal", func(t *testing.T) {
		tokens := new(tokenAuthenticatorMock)
		m := NewAuthenticate(tokens, nil, testutil.MakeNoopLogger())

		principal := model.Principal{Subject: "user@example.com", Authorities: []string{"user"}}
		tokens.On("Authenticate", mock.Anything, "valid-token").Return(principal, nil).Once()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := authctx.PrincipalFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, principal, got)
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()
		m.Handler(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		tokens.AssertExpectations(t)
	})

	t.Run("invalid token gets generic 401", func(t *testing.T) {
		for _, authErr := range []error{
			model.ErrTokenExpired,
			model.ErrTokenInvalidSignature,
			model.ErrTokenRevoked,
			model.ErrTokenTypeMismatch,
			errors.New("revocation store unavailable"),
		} {
			tokens := new(tokenAuthenticatorMock)
			m := NewAuthenticate(tokens, nil, testutil.MakeNoopLogger())
			tokens.On("Authenticate", mock.Anything, "bad-token").
				Return(model.Principal{}, authErr).Once()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler must not run")
			})

			r := httptest.NewRequest(http.MethodGet, "/protected", nil)
			r.Header.Set("Authorization", "Bearer bad-token")
			w := httptest.NewRecorder()
			m.Handler(next).ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "error %v", authErr)
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String(), "error %v", authErr)
		}
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name  string
		value string
		token string
		ok    bool
	}{
		{name: "empty", value: "", ok: false},
		{name: "bearer token", value: "Bearer abc.def.ghi", token: "abc.def.ghi", ok: true},
		{name: "bearer only", value: "Bearer ", ok: false},
		{name: "basic scheme", value: "Basic dXNlcg==", ok: false},
		{name: "padded token", value: "Bearer  abc ", token: "abc", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := extractBearerToken(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}
