package model

import "context"

// Principal is the authenticated identity attached to a request context.
type Principal struct {
	Subject     string
	Authorities []string
}

// PasswordVerifier checks login credentials and resolves the principal.
// Password storage and hashing policy belong to the implementation, not
// to the token engine.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) (Principal, error)
}
