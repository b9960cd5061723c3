package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/authkeeper/internal/model"
)

type PasswordVerifier struct {
	mock.Mock
}

func (m *PasswordVerifier) VerifyPassword(ctx context.Context, email, password string) (model.Principal, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.Principal), args.Error(1)
}
