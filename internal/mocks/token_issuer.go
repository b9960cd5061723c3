package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/authkeeper/internal/model"
)

type TokenIssuer struct {
	mock.Mock
}

func (m *TokenIssuer) Issue(ctx context.Context, principal model.Principal, clientIP, userAgent string) (model.TokenPair, error) {
	args := m.Called(ctx, principal, clientIP, userAgent)
	return args.Get(0).(model.TokenPair), args.Error(1)
}
