package controllers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"invitationgallery/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testInvitationID = "5f0c7a1e-8a39-4e0e-9b0c-2f8a7d1c3e44"

// fakeInvitationService implements domain.InvitationService and records the last call.
type fakeInvitationService struct {
	list      []*domain.Invitation
	inv       *domain.Invitation
	err       error
	gotInv    *domain.Invitation
	gotPatch  domain.InvitationPatch
	gotImage  domain.ImageUpload
	gotID     string
	deleteErr error
}

func (f *fakeInvitationService) List(ctx context.Context) ([]*domain.Invitation, error) {
	return f.list, f.err
}

func (f *fakeInvitationService) Get(ctx context.Context, id string) (*domain.Invitation, error) {
	f.gotID = id
	return f.inv, f.err
}

func (f *fakeInvitationService) Create(ctx context.Context, inv *domain.Invitation, image domain.ImageUpload) (*domain.Invitation, error) {
	f.gotInv, f.gotImage = inv, image
	if f.err != nil {
		return nil, f.err
	}
	inv.ID = testInvitationID
	inv.ImageURL = "/uploads/123-456.png"
	return inv, nil
}

func (f *fakeInvitationService) Update(ctx context.Context, id string, patch domain.InvitationPatch, image domain.ImageUpload) (*domain.Invitation, error) {
	f.gotID, f.gotPatch, f.gotImage = id, patch, image
	if f.err != nil {
		return nil, f.err
	}
	return f.inv, nil
}

func (f *fakeInvitationService) Delete(ctx context.Context, id string) error {
	f.gotID = id
	return f.deleteErr
}

// fakeAdminAuthService implements domain.AdminAuthService.
type fakeAdminAuthService struct {
	loginToken   string
	loginExpires time.Time
	loginErr     error
	registerErr  error
	logoutErr    error
	authID       string
	authErr      error

	gotUsername  string
	gotPassword  string
	loggedOut    string
	authedTokens []string
}

func (f *fakeAdminAuthService) Register(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	f.gotUsername, f.gotPassword = username, password
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.AdminUser{ID: "admin-1", Username: username}, nil
}

func (f *fakeAdminAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	f.gotUsername, f.gotPassword = username, password
	return f.loginToken, f.loginExpires, f.loginErr
}

func (f *fakeAdminAuthService) Logout(ctx context.Context, token string) error {
	f.loggedOut = token
	return f.logoutErr
}

func (f *fakeAdminAuthService) Authenticate(ctx context.Context, token string) (string, error) {
	f.authedTokens = append(f.authedTokens, token)
	return f.authID, f.authErr
}

// fakeSettingService implements domain.SettingService.
type fakeSettingService struct {
	list     []*domain.Setting
	err      error
	gotKey   string
	gotValue string
}

func (f *fakeSettingService) List(ctx context.Context) ([]*domain.Setting, error) {
	return f.list, f.err
}

func (f *fakeSettingService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeSettingService) Upsert(ctx context.Context, key, value string) (*domain.Setting, error) {
	f.gotKey, f.gotValue = key, value
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Setting{ID: "s-1", Key: key, Value: value}, nil
}

type testFile struct {
	field       string
	name        string
	contentType string
	data        []byte
}

// multipartBody builds a multipart/form-data body and returns it with its Content-Type.
func multipartBody(t *testing.T, fields map[string]string, files ...testFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}
