package helpers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"invitationgallery/internal/domain"
)

// ImageField is the multipart field carrying the invitation image.
const ImageField = "image"

// multipartMemory is how much of a multipart body is buffered in memory before spilling to temp files.
const multipartMemory = 8 << 20

// formOverhead is the allowance for non-file fields on top of the image size limit.
const formOverhead = 1 << 20

var errFormTooLarge = errors.New("request body too large")

// Form wraps a parsed multipart or urlencoded request body.
type Form struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

// ParseForm parses a multipart/form-data or urlencoded body of at most maxImageBytes plus a small allowance.
// It returns domain.ErrImageTooLarge when the body exceeds that bound.
func ParseForm(w http.ResponseWriter, r *http.Request, maxImageBytes int64) (*Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+formOverhead)
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), errFormTooLarge.Error()) {
			return nil, domain.ErrImageTooLarge
		}
		return nil, fmt.Errorf("parse form: %w", err)
	}
	f := &Form{values: r.Form}
	if r.MultipartForm != nil {
		f.files = r.MultipartForm.File
	}
	return f, nil
}

// Has reports whether the field was sent at all, even empty.
func (f *Form) Has(field string) bool {
	_, ok := f.values[field]
	return ok
}

// Value returns the first value of field, or "".
func (f *Form) Value(field string) string {
	if vs := f.values[field]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// OptionalString returns a pointer to the value of field, or nil when it was not sent.
func (f *Form) OptionalString(field string) *string {
	if !f.Has(field) {
		return nil
	}
	v := f.Value(field)
	return &v
}

// OptionalInt parses field as an integer. It returns nil, nil when the field was not sent.
func (f *Form) OptionalInt(field string) (*int, error) {
	if !f.Has(field) {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(f.Value(field)))
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", field)
	}
	return &n, nil
}

// Image returns the uploaded file under field, or nil when none was sent.
func (f *Form) Image(field string) domain.ImageUpload {
	headers := f.files[field]
	if len(headers) == 0 {
		return nil
	}
	return fileHeaderImage{header: headers[0]}
}

// FileCount returns how many files were sent under field.
func (f *Form) FileCount(field string) int {
	return len(f.files[field])
}

// fileHeaderImage adapts a multipart file header to domain.ImageUpload.
type fileHeaderImage struct {
	header *multipart.FileHeader
}

func (i fileHeaderImage) Filename() string    { return i.header.Filename }
func (i fileHeaderImage) ContentType() string { return i.header.Header.Get("Content-Type") }
func (i fileHeaderImage) Size() int64         { return i.header.Size }
func (i fileHeaderImage) Open() (io.ReadCloser, error) {
	return i.header.Open()
}
