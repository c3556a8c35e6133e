package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"invitationgallery/internal/delivery/http/helpers"
	"invitationgallery/internal/delivery/http/middleware"
	"invitationgallery/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetController_SampleImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.SampleImages["wedding"]), []byte("\x89PNG\r\n\x1a\npayload"), 0o644))
	ctrl := NewAssetController(testLogger, dir, t.TempDir())

	tests := []struct {
		name       string
		kind       string
		wantStatus int
		wantError  string
	}{
		{name: "bundled file", kind: "wedding", wantStatus: http.StatusOK},
		{name: "unknown type", kind: "funeral", wantStatus: http.StatusNotFound, wantError: helpers.MsgSampleImageNotFound},
		{name: "mapped but missing", kind: "gala", wantStatus: http.StatusNotFound, wantError: helpers.MsgImageFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/sample-images/"+tt.kind, nil)
			req.SetPathValue("type", tt.kind)
			rr := httptest.NewRecorder()

			ctrl.SampleImage(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr.Body))
				return
			}
			assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		})
	}
}

func TestAssetController_Uploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1700000000000-42.png"), []byte("\x89PNG\r\n\x1a\npayload"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	handler := NewAssetController(testLogger, t.TempDir(), dir).Uploads()

	t.Run("file served with immutable caching", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/1700000000000-42.png", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, middleware.ImmutableCacheControl, rr.Header().Get("Cache-Control"))
	})
	t.Run("missing file", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/nope.png", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Header().Get("Cache-Control"))
	})
	t.Run("no directory listing", func(t *testing.T) {
		for _, path := range []string{"/uploads/", "/uploads/nested/"} {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, rr.Code, path)
			assert.NotContains(t, rr.Body.String(), "1700000000000-42.png")
		}
	})
}
