package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"invitationgallery/internal/domain"
)

// DefaultSessionTTL is how long an admin session and its cookie stay valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// AdminAuthConfig holds the collaborators of the admin auth service.
type AdminAuthConfig struct {
	Users      domain.AdminUserRepository
	Sessions   domain.SessionStore
	Hasher     domain.PasswordHasher
	Signer     domain.SessionTokenSigner
	SessionTTL time.Duration
	// Email and NotifyTo are optional; when both are set, registrations are announced.
	Email    domain.EmailService
	NotifyTo string
	Logger   *slog.Logger
}

type adminAuthService struct {
	users    domain.AdminUserRepository
	sessions domain.SessionStore
	hasher   domain.PasswordHasher
	signer   domain.SessionTokenSigner
	ttl      time.Duration
	email    domain.EmailService
	notifyTo string
	logger   *slog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAdminAuthService creates the AdminAuthService.
func NewAdminAuthService(cfg AdminAuthConfig) domain.AdminAuthService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &adminAuthService{
		users:    cfg.Users,
		sessions: cfg.Sessions,
		hasher:   cfg.Hasher,
		signer:   cfg.Signer,
		ttl:      ttl,
		email:    cfg.Email,
		notifyTo: cfg.NotifyTo,
		logger:   cfg.Logger,
		now:      time.Now,
	}
}

// Register creates an admin. It does not log the new admin in.
func (s *adminAuthService) Register(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &domain.AdminUser{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	s.notifyRegistered(ctx, user)
	return user, nil
}

func (s *adminAuthService) notifyRegistered(ctx context.Context, user *domain.AdminUser) {
	if s.email == nil || s.notifyTo == "" {
		return
	}
	data := &domain.AdminRegisteredEmailData{To: s.notifyTo, Username: user.Username, AdminID: user.ID}
	if err := s.email.SendAdminRegistered(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "failed to send admin registration notice", "admin_id", user.ID, "err", err)
	}
}

// Login returns ErrInvalidCredentials for both an unknown username and a wrong password.
func (s *adminAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to look up admin: %w", err)
	}
	if user == nil {
		// Spend the same bcrypt work as a real comparison.
		_ = s.hasher.Compare(s.unknownUserHash(), password)
		return "", time.Time{}, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	session := &domain.AdminSession{
		ID:        uuid.NewString(),
		AdminID:   user.ID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create session: %w", err)
	}
	token, err := s.signer.Sign(session.ID, session.ExpiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, session.ExpiresAt, nil
}

func (s *adminAuthService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

// Logout destroys the server-side session behind token. Unknown or invalid tokens are ignored.
func (s *adminAuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	id, err := s.signer.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *adminAuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	id, err := s.signer.Parse(token)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if session.AdminID == "" || session.Expired(s.now()) {
		return "", domain.ErrUnauthorized
	}
	return session.AdminID, nil
}
