package controllers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"invitationgallery/internal/delivery/http/helpers"
	"invitationgallery/internal/delivery/http/middleware"
	"invitationgallery/internal/domain"
)

// AssetController serves the bundled sample images and the managed upload directory.
type AssetController struct {
	Logger    *slog.Logger
	SampleDir string
	UploadDir string
}

func NewAssetController(logger *slog.Logger, sampleDir, uploadDir string) *AssetController {
	return &AssetController{
		Logger:    logger,
		SampleDir: sampleDir,
		UploadDir: uploadDir,
	}
}

// SampleImage godoc
// @Summary Get a bundled sample image
// @Tags assets
// @Produce png
// @Param type path string true "Sample type" Enums(wedding, birthday, corporate, rustic, baby-shower, gala)
// @Success 200 {file} binary
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /sample-images/{type} [get]
func (c *AssetController) SampleImage(w http.ResponseWriter, r *http.Request) {
	name, ok := domain.SampleImages[r.PathValue("type")]
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.MsgSampleImageNotFound)
		return
	}
	path := filepath.Join(c.SampleDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to serve sample image")
			return
		}
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.MsgImageFileNotFound)
		return
	}
	http.ServeFile(w, r, path)
}

// Uploads serves files from the upload directory under /uploads/ with long-lived cache headers.
// Directories are reported as not found.
func (c *AssetController) Uploads() http.Handler {
	files := http.FileServer(noDirFS{http.Dir(c.UploadDir)})
	return http.StripPrefix(domain.UploadURLPrefix, middleware.ImmutableCache(files))
}

// noDirFS hides directories so http.FileServer never renders a listing.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
