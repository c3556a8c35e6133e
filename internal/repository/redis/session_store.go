package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"invitationgallery/internal/domain"

	goredis "github.com/go-redis/redis/v8"
)

const keyPrefix = "admin_session:"

type sessionRecord struct {
	AdminID   string    `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionStore struct {
	client goredis.UniversalClient
}

// NewSessionStore returns a domain.SessionStore that keeps each session under its own key with a TTL.
func NewSessionStore(client goredis.UniversalClient) domain.SessionStore {
	return &sessionStore{client: client}
}

// NewClient parses a redis:// URL and returns a connected client.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func (s *sessionStore) Create(ctx context.Context, session *domain.AdminSession) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	raw, err := json.Marshal(sessionRecord{AdminID: session.AdminID, ExpiresAt: session.ExpiresAt})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.ID), raw, ttl).Err()
}

func (s *sessionStore) Get(ctx context.Context, id string) (*domain.AdminSession, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	session := &domain.AdminSession{ID: id, AdminID: rec.AdminID, ExpiresAt: rec.ExpiresAt}
	if session.Expired(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// DeleteExpired is a no-op: redis evicts keys when their TTL elapses.
func (s *sessionStore) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
