package postgres

import (
	"context"
	"database/sql"
	"errors"

	"invitationgallery/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

// NewInvitationRepository returns a domain.InvitationRepository implemented with Postgres.
func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

func (r *invitationRepository) List(ctx context.Context) ([]*domain.Invitation, error) {
	query := `
		SELECT id, title, description, price, image_url, created_at
		FROM invitations
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := []*domain.Invitation{}
	for rows.Next() {
		inv := &domain.Invitation{}
		if err := rows.Scan(&inv.ID, &inv.Title, &inv.Description, &inv.Price, &inv.ImageURL, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invs, nil
}

func (r *invitationRepository) Get(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `
		SELECT id, title, description, price, image_url, created_at
		FROM invitations
		WHERE id = $1
	`
	inv := &domain.Invitation{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.Title, &inv.Description, &inv.Price, &inv.ImageURL, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (title, description, price, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query, inv.Title, inv.Description, inv.Price, inv.ImageURL).
		Scan(&inv.ID, &inv.CreatedAt)
}

func (r *invitationRepository) Update(ctx context.Context, id string, patch domain.InvitationPatch) (*domain.Invitation, error) {
	query := `
		UPDATE invitations
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			image_url = COALESCE($5, image_url)
		WHERE id = $1
		RETURNING id, title, description, price, image_url, created_at
	`
	inv := &domain.Invitation{}
	err := r.DB.QueryRowContext(ctx, query, id, patch.Title, patch.Description, patch.Price, patch.ImageURL).
		Scan(&inv.ID, &inv.Title, &inv.Description, &inv.Price, &inv.ImageURL, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	return err
}
