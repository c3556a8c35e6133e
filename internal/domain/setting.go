package domain

import (
	"context"
	"time"
)

// Known setting keys.
const (
	SettingKeyTelegramLink = "telegram_link"
)

// Setting is a single named site-wide value.
// swagger:model Setting
type Setting struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SettingRepository defines the interface for settings storage.
// Get returns nil, nil for an unknown key. Upsert keeps the id of an existing key and refreshes UpdatedAt.
type SettingRepository interface {
	List(ctx context.Context) ([]*Setting, error)
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, key, value string) (*Setting, error)
}

// SettingService defines the business logic for site settings.
type SettingService interface {
	List(ctx context.Context) ([]*Setting, error)
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, key, value string) (*Setting, error)
}
