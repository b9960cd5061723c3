package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	const query = `
        INSERT INTO sessions (
            id, user_subject, token_hash, issued_at, expires_at, client_ip, user_agent, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
    `

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		session.ID, session.UserSubject, session.TokenHash, session.IssuedAt, session.ExpiresAt,
		nullable(session.ClientIP), nullable(session.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash []byte) (model.Session, error) {
	const query = `
        SELECT id, user_subject, token_hash, issued_at, expires_at, client_ip, user_agent, created_at, updated_at
        FROM sessions WHERE token_hash = $1
    `
	var (
		s         model.Session
		clientIP  *string
		userAgent *string
	)
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&s.ID, &s.UserSubject, &s.TokenHash, &s.IssuedAt, &s.ExpiresAt,
		&clientIP, &userAgent, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrSessionNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by token hash: %w", err)
	}
	if clientIP != nil {
		s.ClientIP = *clientIP
	}
	if userAgent != nil {
		s.UserAgent = *userAgent
	}
	return s, nil
}

// Rotate is the linearization point of refresh rotation: the UPDATE is
// conditional on the old hash still being current, so two concurrent
// rotations of the same stale token cannot both succeed.
func (r *SessionRepository) Rotate(ctx context.Context, id uuid.UUID, oldHash, newHash []byte, newExpiresAt time.Time) error {
	const query = `
        UPDATE sessions SET token_hash = $3, issued_at = NOW(), expires_at = $4, updated_at = NOW()
        WHERE id = $1 AND token_hash = $2
    `
	tag, err := r.db.Exec(ctx, query, id, oldHash, newHash, newExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to rotate session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (r *SessionRepository) RevokeAllForUser(ctx context.Context, userSubject string) (int64, error) {
	const query = `DELETE FROM sessions WHERE user_subject = $1`
	tag, err := r.db.Exec(ctx, query, userSubject)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke sessions for user: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at < $1`
	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
