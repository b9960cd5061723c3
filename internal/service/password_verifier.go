package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.PasswordVerifier = (*PasswordAuth)(nil)

// PasswordAuth is the shipped PasswordVerifier: a users-table lookup with
// a bcrypt compare. Hashing policy lives here, outside the token engine.
type PasswordAuth struct {
	users model.UserStore
}

func NewPasswordAuth(users model.UserStore) *PasswordAuth {
	return &PasswordAuth{users: users}
}

func (v *PasswordAuth) VerifyPassword(ctx context.Context, email, password string) (model.Principal, error) {
	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			return model.Principal{}, model.ErrInvalidCredentials
		}
		return model.Principal{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.Principal{}, model.ErrInvalidCredentials
	}

	return model.Principal{Subject: user.Email, Authorities: user.Authorities}, nil
}
