package domain

import (
	"context"
	"time"
)

// AdminUser is a back-office account. PasswordHash never leaves the server.
type AdminUser struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// AdminSession binds an opaque session id to the admin it authenticates.
type AdminSession struct {
	ID        string
	AdminID   string
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *AdminSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// PasswordHasher hashes and verifies admin passwords. Implementations embed their own salt in the hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// SessionTokenSigner turns a session id into the cookie value and back.
type SessionTokenSigner interface {
	Sign(sessionID string, expiresAt time.Time) (string, error)
	Parse(token string) (sessionID string, err error)
}

// AdminUserRepository defines the interface for admin user storage.
// Getters return nil, nil when no row matches. Create stores PasswordHash verbatim.
type AdminUserRepository interface {
	GetByID(ctx context.Context, id string) (*AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*AdminUser, error)
	Create(ctx context.Context, user *AdminUser) error
}

// SessionStore is a key-value store of admin sessions with expiry.
// Get returns ErrSessionNotFound for unknown or expired ids. Delete is idempotent.
type SessionStore interface {
	Create(ctx context.Context, session *AdminSession) error
	Get(ctx context.Context, id string) (*AdminSession, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionAuthenticator resolves a cookie token to the authenticated admin id.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (adminID string, err error)
}

// AdminAuthService defines registration and session lifecycle for admins.
type AdminAuthService interface {
	SessionAuthenticator
	Register(ctx context.Context, username, password string) (*AdminUser, error)
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
	Logout(ctx context.Context, token string) error
}
