// Package storage keeps uploaded SI photos on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const siPhotoSubdir = "si_photos"

var (
	ErrUnsupportedType = errors.New("only image and PDF files are allowed")
	ErrTooLarge        = errors.New("file size exceeds limit")
	ErrInvalidName     = errors.New("invalid file name")
)

// allowedTypes maps a sniffed content type to the extension the file is stored under.
var allowedTypes = []struct {
	mime string
	ext  string
}{
	{"image/jpeg", ".jpg"},
	{"image/png", ".png"},
	{"image/webp", ".webp"},
	{"application/pdf", ".pdf"},
}

// FileStore writes SI photos beneath a root directory.
type FileStore struct {
	dir      string
	maxBytes int64
}

// NewFileStore creates <root>/si_photos if needed.
func NewFileStore(root string, maxBytes int64) (*FileStore, error) {
	dir := filepath.Join(root, siPhotoSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: maxBytes}, nil
}

// SaveSIPhoto validates and stores an upload, returning the generated file name.
// The type is sniffed from the content; the client's file name and Content-Type are ignored.
func (s *FileStore) SaveSIPhoto(file *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect type: %w", err)
	}
	ext, ok := extensionFor(detected)
	if !ok {
		return "", ErrUnsupportedType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("close file: %w", err)
	}
	return name, nil
}

// Delete removes a stored photo. Missing files are not an error.
func (s *FileStore) Delete(name string) error {
	if name == "" || name != filepath.Base(name) {
		return ErrInvalidName
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func extensionFor(detected *mimetype.MIME) (string, bool) {
	for _, t := range allowedTypes {
		if detected.Is(t.mime) {
			return t.ext, true
		}
	}
	return "", false
}

// PublicPath is the URL path the file is served under.
func PublicPath(name string) string {
	return "/uploads/" + siPhotoSubdir + "/" + name
}
