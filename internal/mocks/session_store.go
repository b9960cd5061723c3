package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/authkeeper/internal/model"
)

type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Create(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionStore) GetByTokenHash(ctx context.Context, tokenHash []byte) (model.Session, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *SessionStore) Rotate(ctx context.Context, id uuid.UUID, oldHash, newHash []byte, newExpiresAt time.Time) error {
	args := m.Called(ctx, id, oldHash, newHash, newExpiresAt)
	return args.Error(0)
}

func (m *SessionStore) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionStore) RevokeAllForUser(ctx context.Context, userSubject string) (int64, error) {
	args := m.Called(ctx, userSubject)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
