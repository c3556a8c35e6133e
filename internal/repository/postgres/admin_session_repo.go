package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"invitationgallery/internal/domain"
)

type adminSessionRepository struct {
	DB *sql.DB
}

// NewAdminSessionRepository returns a domain.SessionStore backed by the admin_sessions table.
func NewAdminSessionRepository(db *sql.DB) domain.SessionStore {
	return &adminSessionRepository{DB: db}
}

func (r *adminSessionRepository) Create(ctx context.Context, s *domain.AdminSession) error {
	query := `
		INSERT INTO admin_sessions (id, admin_id, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.AdminID, s.ExpiresAt)
	return err
}

func (r *adminSessionRepository) Get(ctx context.Context, id string) (*domain.AdminSession, error) {
	query := `
		SELECT id, admin_id, expires_at
		FROM admin_sessions
		WHERE id = $1 AND expires_at > NOW()
	`
	s := &domain.AdminSession{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.AdminID, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *adminSessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = $1`, id)
	return err
}

func (r *adminSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
