package postgres

import (
	"context"
	"database/sql"
	"errors"

	"invitationgallery/internal/domain"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

type adminUserRepository struct {
	DB *sql.DB
}

// NewAdminUserRepository returns a domain.AdminUserRepository implemented with Postgres.
func NewAdminUserRepository(db *sql.DB) domain.AdminUserRepository {
	return &adminUserRepository{DB: db}
}

func (r *adminUserRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return r.getOne(ctx, `SELECT id, username, password FROM admin_users WHERE id = $1`, id)
}

func (r *adminUserRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	return r.getOne(ctx, `SELECT id, username, password FROM admin_users WHERE username = $1`, username)
}

func (r *adminUserRepository) getOne(ctx context.Context, query string, arg string) (*domain.AdminUser, error) {
	u := &domain.AdminUser{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// Create inserts the user. A concurrent registration of the same username surfaces as ErrUsernameTaken.
func (r *adminUserRepository) Create(ctx context.Context, u *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (username, password)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Username, u.PasswordHash).Scan(&u.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == uniqueViolation {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}
