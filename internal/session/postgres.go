package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps sessions in the sessions table.
type PostgresStore struct {
	repo *repository.SessionRepository
}

func NewPostgresStore(repo *repository.SessionRepository) *PostgresStore {
	return &PostgresStore{repo: repo}
}

func (s *PostgresStore) Save(ctx context.Context, sess model.Session) error {
	if _, err := s.repo.DeleteExpiredSessions(ctx); err != nil {
		return fmt.Errorf("session repository delete expired sessions: %w", err)
	}
	if err := s.repo.SaveSession(ctx, sess); err != nil {
		return fmt.Errorf("session repository save session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (model.Session, error) {
	sess, err := s.repo.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Session{}, ErrNotFound
		}
		return model.Session{}, fmt.Errorf("session repository get session: %w", err)
	}
	return sess, nil
}
