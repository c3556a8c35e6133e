package domain

import (
	"context"
	"io"
)

// UploadURLPrefix is the public path under which managed uploads are served.
const UploadURLPrefix = "/uploads/"

// ImageUpload is a single client-submitted image file.
type ImageUpload interface {
	Filename() string
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// ImageStore persists uploaded images in the managed upload directory.
// Save validates type and size and returns the public URL of the stored file.
// Remove deletes the file behind url only when Owns(url); a missing file is not an error.
type ImageStore interface {
	Save(ctx context.Context, image ImageUpload) (url string, err error)
	Remove(ctx context.Context, url string) error
	Owns(url string) bool
}
