package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/authkeeper/internal/model"
)

type TokenCodec struct {
	mock.Mock
}

func (m *TokenCodec) Mint(subject string, authorities []string, tokenType model.TokenType, ttl time.Duration) (string, error) {
	args := m.Called(subject, authorities, tokenType, ttl)
	return args.String(0), args.Error(1)
}

func (m *TokenCodec) Verify(token string) (model.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenClaims), args.Error(1)
}

func (m *TokenCodec) Identifier(token string) string {
	args := m.Called(token)
	return args.String(0)
}
