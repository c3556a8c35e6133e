// Package upload stores admin-submitted invitation images on the local filesystem.
package upload

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"invitationgallery/internal/domain"
	"invitationgallery/internal/metrics"
)

// DefaultMaxBytes is the largest accepted image (5 MiB).
const DefaultMaxBytes int64 = 5 * 1024 * 1024

const (
	sniffLen       = 512
	createAttempts = 3
)

// allowedTypes matches the declared MIME type.
var allowedTypes = regexp.MustCompile(`jpeg|jpg|png|webp`)

var allowedExts = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".webp": true}

var sniffedTypes = []string{"image/jpeg", "image/png", "image/webp"}

var suffixLimit = big.NewInt(1_000_000_000)

type diskImageStore struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

// NewDiskImageStore returns an ImageStore writing into dir, creating it if needed.
func NewDiskImageStore(dir string, maxBytes int64) (domain.ImageStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &diskImageStore{dir: dir, maxBytes: maxBytes, now: time.Now}, nil
}

func (s *diskImageStore) Save(_ context.Context, image domain.ImageUpload) (string, error) {
	url, written, err := s.save(image)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedImage) || errors.Is(err, domain.ErrImageTooLarge) {
			metrics.RecordUpload(metrics.UploadRejected, 0)
		}
		return "", err
	}
	metrics.RecordUpload(metrics.UploadAccepted, written)
	return url, nil
}

func (s *diskImageStore) save(image domain.ImageUpload) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(image.Filename()))
	if !allowedExts[ext] || !allowedTypes.MatchString(strings.ToLower(image.ContentType())) {
		return "", 0, domain.ErrUnsupportedImage
	}
	if image.Size() > s.maxBytes {
		return "", 0, domain.ErrImageTooLarge
	}

	src, err := image.Open()
	if err != nil {
		return "", 0, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", 0, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if !isAllowedContent(head) {
		return "", 0, domain.ErrUnsupportedImage
	}

	dst, name, err := s.createFile(ext)
	if err != nil {
		return "", 0, err
	}
	path := dst.Name()

	// Read one byte past the limit so an understated Size cannot slip through.
	written, err := io.Copy(dst, io.LimitReader(io.MultiReader(bytes.NewReader(head), src), s.maxBytes+1))
	closeErr := dst.Close()
	switch {
	case err != nil:
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write upload: %w", err)
	case written > s.maxBytes:
		_ = os.Remove(path)
		return "", 0, domain.ErrImageTooLarge
	case closeErr != nil:
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("close upload: %w", closeErr)
	}
	return domain.UploadURLPrefix + name, written, nil
}

// createFile opens a new file with a generated name, never reusing an existing one.
func (s *diskImageStore) createFile(ext string) (*os.File, string, error) {
	var lastErr error
	for i := 0; i < createAttempts; i++ {
		name, err := s.generateName(ext)
		if err != nil {
			return nil, "", err
		}
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("create upload file: %w", err)
		}
		lastErr = err
	}
	return nil, "", fmt.Errorf("create upload file: %w", lastErr)
}

// generateName returns "<unix millis>-<random 0..1e9><ext>".
func (s *diskImageStore) generateName(ext string) (string, error) {
	suffix, err := rand.Int(rand.Reader, suffixLimit)
	if err != nil {
		return "", fmt.Errorf("generate upload name: %w", err)
	}
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix.String(), ext), nil
}

func (s *diskImageStore) Owns(url string) bool {
	return strings.HasPrefix(url, domain.UploadURLPrefix)
}

// Remove deletes a managed upload. URLs outside the managed prefix, such as the
// bundled sample images, are left alone.
func (s *diskImageStore) Remove(_ context.Context, url string) error {
	if !s.Owns(url) {
		return nil
	}
	name := strings.TrimPrefix(url, domain.UploadURLPrefix)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove upload %s: %w", name, err)
	}
	metrics.RecordUpload(metrics.UploadRemoved, 0)
	return nil
}

func isAllowedContent(head []byte) bool {
	detected := mimetype.Detect(head)
	for _, t := range sniffedTypes {
		if detected.Is(t) {
			return true
		}
	}
	return false
}
