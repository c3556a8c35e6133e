package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"invitationgallery/internal/delivery/http/helpers"
	"invitationgallery/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp helpers.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp), "error response must be valid JSON")
	return resp.Error
}

func pngFile() testFile {
	return testFile{field: "image", name: "card.png", contentType: "image/png", data: []byte("\x89PNG\r\n\x1a\n")}
}

func TestInvitationController_ListInvitations(t *testing.T) {
	t.Run("empty list is a JSON array", func(t *testing.T) {
		ctrl := NewInvitationController(testLogger, &fakeInvitationService{list: []*domain.Invitation{}}, 1<<20)
		rr := httptest.NewRecorder()
		ctrl.ListInvitations(rr, httptest.NewRequest(http.MethodGet, "/api/invitations", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})
	t.Run("records use camelCase fields", func(t *testing.T) {
		list := []*domain.Invitation{{ID: testInvitationID, Title: "A", Description: "B", Price: 10, ImageURL: "/uploads/x.png"}}
		ctrl := NewInvitationController(testLogger, &fakeInvitationService{list: list}, 1<<20)
		rr := httptest.NewRecorder()
		ctrl.ListInvitations(rr, httptest.NewRequest(http.MethodGet, "/api/invitations", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"imageUrl":"/uploads/x.png"`)
		assert.Contains(t, rr.Body.String(), `"createdAt"`)
	})
	t.Run("service error hides cause", func(t *testing.T) {
		ctrl := NewInvitationController(testLogger, &fakeInvitationService{err: errors.New("pq: connection refused")}, 1<<20)
		rr := httptest.NewRecorder()
		ctrl.ListInvitations(rr, httptest.NewRequest(http.MethodGet, "/api/invitations", nil))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		msg := decodeError(t, rr.Body)
		assert.Equal(t, "Failed to fetch invitations", msg)
		assert.NotContains(t, msg, "pq")
	})
}

func TestInvitationController_GetInvitation(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		svc        *fakeInvitationService
		wantStatus int
		wantError  string
	}{
		{name: "found", id: testInvitationID, svc: &fakeInvitationService{inv: &domain.Invitation{ID: testInvitationID}}, wantStatus: http.StatusOK},
		{name: "not found", id: testInvitationID, svc: &fakeInvitationService{err: domain.ErrNotFound}, wantStatus: http.StatusNotFound, wantError: helpers.MsgInvitationNotFound},
		{name: "malformed id", id: "not-a-uuid", svc: &fakeInvitationService{}, wantStatus: http.StatusNotFound, wantError: helpers.MsgInvitationNotFound},
		{name: "storage error", id: testInvitationID, svc: &fakeInvitationService{err: errors.New("boom")}, wantStatus: http.StatusInternalServerError, wantError: "Failed to fetch invitation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewInvitationController(testLogger, tt.svc, 1<<20)
			req := httptest.NewRequest(http.MethodGet, "/api/invitations/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()
			ctrl.GetInvitation(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr.Body))
			}
		})
	}
}

func TestInvitationController_CreateInvitation(t *testing.T) {
	validFields := map[string]string{"title": " Wedding ", "description": "Gold foil", "price": "45"}

	tests := []struct {
		name       string
		fields     map[string]string
		files      []testFile
		svcErr     error
		wantStatus int
		wantError  string
	}{
		{name: "success", fields: validFields, files: []testFile{pngFile()}, wantStatus: http.StatusCreated},
		{name: "missing image", fields: validFields, wantStatus: http.StatusBadRequest, wantError: helpers.MsgImageRequired},
		{name: "missing title", fields: map[string]string{"description": "d", "price": "1"}, files: []testFile{pngFile()}, wantStatus: http.StatusBadRequest, wantError: "title is required"},
		{name: "missing price", fields: map[string]string{"title": "t", "description": "d"}, files: []testFile{pngFile()}, wantStatus: http.StatusBadRequest, wantError: "price is required"},
		{name: "non-numeric price", fields: map[string]string{"title": "t", "description": "d", "price": "ten"}, files: []testFile{pngFile()}, wantStatus: http.StatusBadRequest, wantError: "price must be an integer"},
		{name: "negative price", fields: map[string]string{"title": "t", "description": "d", "price": "-1"}, files: []testFile{pngFile()}, wantStatus: http.StatusBadRequest, wantError: "price must be greater than or equal to 0"},
		{name: "blank title", fields: map[string]string{"title": "   ", "description": "d", "price": "1"}, files: []testFile{pngFile()}, wantStatus: http.StatusBadRequest, wantError: "title is required"},
		{name: "blank description", fields: map[string]string{"title": "t", "description": "\t ", "price": "1"}, files: []testFile{pngFile()}, wantStatus: http.StatusBadRequest, wantError: "description is required"},
		{name: "price above column range", fields: map[string]string{"title": "t", "description": "d", "price": "3000000000"}, files: []testFile{pngFile()}, wantStatus: http.StatusBadRequest, wantError: "price must be less than or equal to 2147483647"},
		{name: "two images", fields: validFields, files: []testFile{pngFile(), pngFile()}, wantStatus: http.StatusBadRequest, wantError: helpers.MsgOneImageOnly},
		{name: "unsupported image", fields: validFields, files: []testFile{pngFile()}, svcErr: domain.ErrUnsupportedImage, wantStatus: http.StatusBadRequest, wantError: helpers.MsgOnlyImagesAllowed},
		{name: "image too large", fields: validFields, files: []testFile{pngFile()}, svcErr: domain.ErrImageTooLarge, wantStatus: http.StatusBadRequest, wantError: helpers.MsgImageTooLarge},
		{name: "storage error", fields: validFields, files: []testFile{pngFile()}, svcErr: errors.New("disk full"), wantStatus: http.StatusInternalServerError, wantError: "Failed to create invitation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{err: tt.svcErr}
			ctrl := NewInvitationController(testLogger, svc, 1<<20)
			body, contentType := multipartBody(t, tt.fields, tt.files...)
			req := httptest.NewRequest(http.MethodPost, "/api/invitations", body)
			req.Header.Set("Content-Type", contentType)
			rr := httptest.NewRecorder()

			ctrl.CreateInvitation(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr.Body))
				if tt.svcErr == nil {
					assert.Nil(t, svc.gotInv, "rejected before the service")
				}
				return
			}
			var inv domain.Invitation
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&inv))
			assert.Equal(t, testInvitationID, inv.ID)
			assert.Equal(t, "Wedding", inv.Title)
			assert.Equal(t, 45, inv.Price)
			assert.True(t, strings.HasPrefix(inv.ImageURL, domain.UploadURLPrefix))
			require.NotNil(t, svc.gotImage)
			assert.Equal(t, "card.png", svc.gotImage.Filename())
			assert.Equal(t, "image/png", svc.gotImage.ContentType())
		})
	}

	t.Run("oversized body", func(t *testing.T) {
		svc := &fakeInvitationService{}
		ctrl := NewInvitationController(testLogger, svc, 16)
		big := pngFile()
		big.data = bytes.Repeat([]byte("x"), 2<<20)
		body, contentType := multipartBody(t, validFields, big)
		req := httptest.NewRequest(http.MethodPost, "/api/invitations", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.CreateInvitation(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, helpers.MsgImageTooLarge, decodeError(t, rr.Body))
		assert.Nil(t, svc.gotInv)
	})
}

func TestInvitationController_UpdateInvitation(t *testing.T) {
	updated := &domain.Invitation{ID: testInvitationID, Title: "New", Price: 99}

	t.Run("partial fields", func(t *testing.T) {
		svc := &fakeInvitationService{inv: updated}
		ctrl := NewInvitationController(testLogger, svc, 1<<20)
		body, contentType := multipartBody(t, map[string]string{"price": "99"})
		req := httptest.NewRequest(http.MethodPatch, "/api/invitations/"+testInvitationID, body)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("id", testInvitationID)
		rr := httptest.NewRecorder()

		ctrl.UpdateInvitation(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, testInvitationID, svc.gotID)
		require.NotNil(t, svc.gotPatch.Price)
		assert.Equal(t, 99, *svc.gotPatch.Price)
		assert.Nil(t, svc.gotPatch.Title)
		assert.Nil(t, svc.gotPatch.Description)
		assert.Nil(t, svc.gotImage)
	})
	t.Run("new image is passed through", func(t *testing.T) {
		svc := &fakeInvitationService{inv: updated}
		ctrl := NewInvitationController(testLogger, svc, 1<<20)
		body, contentType := multipartBody(t, nil, pngFile())
		req := httptest.NewRequest(http.MethodPatch, "/api/invitations/"+testInvitationID, body)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("id", testInvitationID)
		rr := httptest.NewRecorder()

		ctrl.UpdateInvitation(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, svc.gotImage)
		assert.Equal(t, "card.png", svc.gotImage.Filename())
	})
	t.Run("urlencoded body", func(t *testing.T) {
		svc := &fakeInvitationService{inv: updated}
		ctrl := NewInvitationController(testLogger, svc, 1<<20)
		req := httptest.NewRequest(http.MethodPatch, "/api/invitations/"+testInvitationID, strings.NewReader("title=New"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetPathValue("id", testInvitationID)
		rr := httptest.NewRecorder()

		ctrl.UpdateInvitation(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, svc.gotPatch.Title)
		assert.Equal(t, "New", *svc.gotPatch.Title)
	})
	t.Run("empty title rejected", func(t *testing.T) {
		svc := &fakeInvitationService{inv: updated}
		ctrl := NewInvitationController(testLogger, svc, 1<<20)
		body, contentType := multipartBody(t, map[string]string{"title": ""})
		req := httptest.NewRequest(http.MethodPatch, "/api/invitations/"+testInvitationID, body)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("id", testInvitationID)
		rr := httptest.NewRecorder()

		ctrl.UpdateInvitation(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "title must not be empty", decodeError(t, rr.Body))
	})
	t.Run("blank title rejected", func(t *testing.T) {
		svc := &fakeInvitationService{inv: updated}
		ctrl := NewInvitationController(testLogger, svc, 1<<20)
		body, contentType := multipartBody(t, map[string]string{"title": "   "})
		req := httptest.NewRequest(http.MethodPatch, "/api/invitations/"+testInvitationID, body)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("id", testInvitationID)
		rr := httptest.NewRecorder()

		ctrl.UpdateInvitation(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "title must not be empty", decodeError(t, rr.Body))
		assert.Empty(t, svc.gotID)
	})
	t.Run("price bounds", func(t *testing.T) {
		tests := []struct {
			price      string
			wantStatus int
		}{
			{strconv.Itoa(maxPrice), http.StatusOK},
			{strconv.Itoa(maxPrice + 1), http.StatusBadRequest},
		}
		for _, tt := range tests {
			svc := &fakeInvitationService{inv: updated}
			ctrl := NewInvitationController(testLogger, svc, 1<<20)
			body, contentType := multipartBody(t, map[string]string{"price": tt.price})
			req := httptest.NewRequest(http.MethodPatch, "/api/invitations/"+testInvitationID, body)
			req.Header.Set("Content-Type", contentType)
			req.SetPathValue("id", testInvitationID)
			rr := httptest.NewRecorder()

			ctrl.UpdateInvitation(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, tt.price)
		}
	})
	t.Run("title is trimmed", func(t *testing.T) {
		svc := &fakeInvitationService{inv: updated}
		ctrl := NewInvitationController(testLogger, svc, 1<<20)
		body, contentType := multipartBody(t, map[string]string{"title": "  New  "})
		req := httptest.NewRequest(http.MethodPatch, "/api/invitations/"+testInvitationID, body)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("id", testInvitationID)
		rr := httptest.NewRecorder()

		ctrl.UpdateInvitation(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, svc.gotPatch.Title)
		assert.Equal(t, "New", *svc.gotPatch.Title)
	})
	t.Run("unknown id", func(t *testing.T) {
		svc := &fakeInvitationService{err: domain.ErrNotFound}
		ctrl := NewInvitationController(testLogger, svc, 1<<20)
		body, contentType := multipartBody(t, map[string]string{"title": "x"})
		req := httptest.NewRequest(http.MethodPatch, "/api/invitations/"+testInvitationID, body)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("id", testInvitationID)
		rr := httptest.NewRecorder()

		ctrl.UpdateInvitation(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, helpers.MsgInvitationNotFound, decodeError(t, rr.Body))
	})
}

func TestInvitationController_DeleteInvitation(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "deleted", id: testInvitationID, wantStatus: http.StatusNoContent},
		{name: "not found", id: testInvitationID, err: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "malformed id", id: "42", wantStatus: http.StatusNotFound},
		{name: "storage error", id: testInvitationID, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{deleteErr: tt.err}
			ctrl := NewInvitationController(testLogger, svc, 1<<20)
			req := httptest.NewRequest(http.MethodDelete, "/api/invitations/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()

			ctrl.DeleteInvitation(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}
