package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"invitationgallery/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeInvitationRepo implements domain.InvitationRepository in memory.
type fakeInvitationRepo struct {
	mu      sync.Mutex
	rows    map[string]*domain.Invitation
	nextID  int
	err     error
	creates int
	deletes []string
	// vanishOnUpdate simulates a row deleted between Get and Update.
	vanishOnUpdate bool
}

func newFakeInvitationRepo(invs ...*domain.Invitation) *fakeInvitationRepo {
	f := &fakeInvitationRepo{rows: make(map[string]*domain.Invitation)}
	for _, inv := range invs {
		f.rows[inv.ID] = inv
	}
	return f
}

func (f *fakeInvitationRepo) List(ctx context.Context) ([]*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Invitation, 0, len(f.rows))
	for _, inv := range f.rows {
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeInvitationRepo) Get(ctx context.Context, id string) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	inv, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	f.creates++
	inv.ID = "inv-" + strconv.Itoa(f.nextID)
	inv.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.nextID, 0, time.UTC)
	cp := *inv
	f.rows[inv.ID] = &cp
	return nil
}

func (f *fakeInvitationRepo) Update(ctx context.Context, id string, patch domain.InvitationPatch) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.vanishOnUpdate {
		delete(f.rows, id)
	}
	inv, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		inv.Title = *patch.Title
	}
	if patch.Description != nil {
		inv.Description = *patch.Description
	}
	if patch.Price != nil {
		inv.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		inv.ImageURL = *patch.ImageURL
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvitationRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, id)
	delete(f.rows, id)
	return nil
}

// fakeImageStore implements domain.ImageStore and records saved and removed URLs.
type fakeImageStore struct {
	saveErr   error
	removeErr error
	saved     []string
	removed   []string
}

func (f *fakeImageStore) Save(ctx context.Context, image domain.ImageUpload) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	url := domain.UploadURLPrefix + strconv.Itoa(len(f.saved)+1) + "-" + image.Filename()
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeImageStore) Remove(ctx context.Context, url string) error {
	f.removed = append(f.removed, url)
	return f.removeErr
}

func (f *fakeImageStore) Owns(url string) bool {
	return strings.HasPrefix(url, domain.UploadURLPrefix)
}

// stubImage implements domain.ImageUpload.
type stubImage struct {
	name string
}

func (s stubImage) Filename() string    { return s.name }
func (s stubImage) ContentType() string { return "image/png" }
func (s stubImage) Size() int64         { return 4 }
func (s stubImage) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("data")), nil
}

// fakeAdminUserRepo implements domain.AdminUserRepository in memory.
type fakeAdminUserRepo struct {
	byName    map[string]*domain.AdminUser
	getErr    error
	createErr error
}

func newFakeAdminUserRepo() *fakeAdminUserRepo {
	return &fakeAdminUserRepo{byName: make(map[string]*domain.AdminUser)}
}

func (f *fakeAdminUserRepo) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminUserRepo) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byName[username], nil
}

func (f *fakeAdminUserRepo) Create(ctx context.Context, user *domain.AdminUser) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byName[user.Username]; ok {
		return domain.ErrUsernameTaken
	}
	user.ID = "admin-" + strconv.Itoa(len(f.byName)+1)
	f.byName[user.Username] = user
	return nil
}

// fakeSessionStore implements domain.SessionStore in memory.
type fakeSessionStore struct {
	sessions map[string]*domain.AdminSession
	getErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*domain.AdminSession)}
}

func (f *fakeSessionStore) Create(ctx context.Context, s *domain.AdminSession) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionStore) Get(ctx context.Context, id string) (*domain.AdminSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

// stubHasher implements domain.PasswordHasher with a reversible "hash".
type stubHasher struct {
	compares int
}

func (h *stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (h *stubHasher) Compare(hash, password string) error {
	h.compares++
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// stubSigner implements domain.SessionTokenSigner by prefixing the id.
type stubSigner struct{}

func (stubSigner) Sign(sessionID string, expiresAt time.Time) (string, error) {
	return "signed." + sessionID, nil
}

func (stubSigner) Parse(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "signed.")
	if !ok || id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}

// fakeSettingRepo implements domain.SettingRepository in memory.
type fakeSettingRepo struct {
	byKey map[string]*domain.Setting
	err   error
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{byKey: make(map[string]*domain.Setting)}
}

func (f *fakeSettingRepo) List(ctx context.Context) ([]*domain.Setting, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Setting, 0, len(f.byKey))
	for _, s := range f.byKey {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (f *fakeSettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byKey[key], nil
}

func (f *fakeSettingRepo) Upsert(ctx context.Context, key, value string) (*domain.Setting, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byKey[key]
	if !ok {
		s = &domain.Setting{ID: "setting-" + key, Key: key}
		f.byKey[key] = s
	}
	s.Value = value
	s.UpdatedAt = time.Now()
	return s, nil
}

// fakeEmailService records admin registration notices.
type fakeEmailService struct {
	sent []*domain.AdminRegisteredEmailData
	err  error
}

func (f *fakeEmailService) SendAdminRegistered(ctx context.Context, data *domain.AdminRegisteredEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}
