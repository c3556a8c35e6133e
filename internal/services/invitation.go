package services

import (
	"context"
	"fmt"
	"log/slog"

	"invitationgallery/internal/domain"
)

type invitationService struct {
	repo   domain.InvitationRepository
	images domain.ImageStore
	logger *slog.Logger
}

// NewInvitationService creates an InvitationService over the given repository and image store.
func NewInvitationService(repo domain.InvitationRepository, images domain.ImageStore, logger *slog.Logger) domain.InvitationService {
	return &invitationService{repo: repo, images: images, logger: logger}
}

func (s *invitationService) List(ctx context.Context) ([]*domain.Invitation, error) {
	invs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invs, nil
}

func (s *invitationService) Get(ctx context.Context, id string) (*domain.Invitation, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// Create stores the image, then inserts the row. If the insert fails the file
// stays on disk; the two steps are not atomic.
func (s *invitationService) Create(ctx context.Context, inv *domain.Invitation, image domain.ImageUpload) (*domain.Invitation, error) {
	if image == nil {
		return nil, domain.ErrImageRequired
	}
	url, err := s.images.Save(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	inv.ImageURL = url
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	return inv, nil
}

// Update applies patch and, when image is set, swaps in the new file and removes
// the previous managed one after the row points at the new URL.
func (s *invitationService) Update(ctx context.Context, id string, patch domain.InvitationPatch, image domain.ImageUpload) (*domain.Invitation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	if image != nil {
		url, err := s.images.Save(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		patch.ImageURL = &url
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}
	if updated == nil {
		// Deleted between the lookup and the update; the new file has no owner.
		if patch.ImageURL != nil {
			s.removeImage(ctx, *patch.ImageURL)
		}
		return nil, domain.ErrNotFound
	}

	if patch.ImageURL != nil && existing.ImageURL != *patch.ImageURL {
		s.removeImage(ctx, existing.ImageURL)
	}
	return updated, nil
}

// Delete removes the row first and the managed image second, so a crash in
// between can leak a file but never leaves a row pointing at a missing image.
func (s *invitationService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get invitation: %w", err)
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	s.removeImage(ctx, existing.ImageURL)
	return nil
}

// removeImage is best-effort cleanup; failures are logged, never returned.
func (s *invitationService) removeImage(ctx context.Context, url string) {
	if !s.images.Owns(url) {
		return
	}
	if err := s.images.Remove(ctx, url); err != nil {
		s.logger.WarnContext(ctx, "failed to remove image", "url", url, "err", err)
	}
}
