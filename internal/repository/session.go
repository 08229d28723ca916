package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

// SessionRepository keeps server-side sessions in Postgres.
type SessionRepository struct {
	db db.DB
}

func NewSessionRepository(db db.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) SaveSession(ctx context.Context, s model.Session) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES (@id, @user_id, @created_at, @expires_at)
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id, expires_at = EXCLUDED.expires_at
	`, pgx.NamedArgs{
		"id":         s.ID,
		"user_id":    s.UserID,
		"created_at": s.CreatedAt,
		"expires_at": s.ExpiresAt,
	}); err != nil {
		return translateErr("save session", err)
	}

	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, id string) (model.Session, error) {
	var s model.Session
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2
	`, id, time.Now()).Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return model.Session{}, translateErr("get session", err)
	}

	return s, nil
}

// DeleteExpiredSessions removes sessions past their expiry. Called opportunistically on save.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, time.Now())
	if err != nil {
		return 0, translateErr("delete expired sessions", err)
	}
	return tag.RowsAffected(), nil
}
