package domain

import (
	"context"
	"time"
)

// Invitation is a purchasable invitation card shown in the public gallery.
// swagger:model Invitation
type Invitation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewInvitation returns a new Invitation with the given fields. ID and CreatedAt are set by the repository on create.
func NewInvitation(title, description string, price int, imageURL string) *Invitation {
	return &Invitation{
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
}

// InvitationPatch carries a partial update. Nil fields are left unchanged.
type InvitationPatch struct {
	Title       *string
	Description *string
	Price       *int
	ImageURL    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p InvitationPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil && p.ImageURL == nil
}

// InvitationRepository defines the interface for invitation storage.
// Get and Update return nil, nil when no row has the given id.
type InvitationRepository interface {
	List(ctx context.Context) ([]*Invitation, error)
	Get(ctx context.Context, id string) (*Invitation, error)
	Create(ctx context.Context, inv *Invitation) error
	Update(ctx context.Context, id string, patch InvitationPatch) (*Invitation, error)
	Delete(ctx context.Context, id string) error
}

// InvitationService defines the business logic for the invitation catalog.
// Create and Update take an optional image; a nil image keeps the current one.
type InvitationService interface {
	List(ctx context.Context) ([]*Invitation, error)
	Get(ctx context.Context, id string) (*Invitation, error)
	Create(ctx context.Context, inv *Invitation, image ImageUpload) (*Invitation, error)
	Update(ctx context.Context, id string, patch InvitationPatch, image ImageUpload) (*Invitation, error)
	Delete(ctx context.Context, id string) error
}
