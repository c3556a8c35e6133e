package postgres

import (
	"context"
	"database/sql"
	"errors"

	"invitationgallery/internal/domain"
)

type settingRepository struct {
	DB *sql.DB
}

// NewSettingRepository returns a domain.SettingRepository implemented with Postgres.
func NewSettingRepository(db *sql.DB) domain.SettingRepository {
	return &settingRepository{DB: db}
}

func (r *settingRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []*domain.Setting{}
	for rows.Next() {
		s := &domain.Setting{}
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	s := &domain.Setting{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, key, value, updated_at FROM settings WHERE key = $1`, key).
		Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// Upsert is a single statement so concurrent writers to one key cannot create duplicates.
func (r *settingRepository) Upsert(ctx context.Context, key, value string) (*domain.Setting, error) {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING id, key, value, updated_at
	`
	s := &domain.Setting{}
	if err := r.DB.QueryRowContext(ctx, query, key, value).Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}
