package services

import (
	"context"
	"fmt"

	"invitationgallery/internal/domain"
)

type settingService struct {
	repo domain.SettingRepository
}

// NewSettingService creates a SettingService over the given repository.
func NewSettingService(repo domain.SettingRepository) domain.SettingService {
	return &settingService{repo: repo}
}

func (s *settingService) List(ctx context.Context) ([]*domain.Setting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

func (s *settingService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	if setting == nil {
		return nil, domain.ErrNotFound
	}
	return setting, nil
}

func (s *settingService) Upsert(ctx context.Context, key, value string) (*domain.Setting, error) {
	setting, err := s.repo.Upsert(ctx, key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert setting %q: %w", key, err)
	}
	return setting, nil
}
