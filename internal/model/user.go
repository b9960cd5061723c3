package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines the user lookup the password verifier needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
}

// User is a stored account with its credential hash and granted
// authorities.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	Authorities  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
