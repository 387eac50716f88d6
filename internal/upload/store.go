package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore keeps uploaded images as bare filenames inside one directory.
// Callers store and pass around filenames only, never paths.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a sanitized version of its client
// filename and returns that name. A name that sanitizes away entirely falls
// back to a random one, and a collision with an existing file gets a short
// random prefix instead of overwriting.
func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	name := SanitizeFilename(file.Filename)
	if name == "" {
		name = uuid.NewString()
	}
	if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
		name = uuid.NewString()[:8] + "_" + name
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload failed: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload failed: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file by its bare name. A missing file is fine;
// anything resembling a path is reduced to its base name first.
func (s *DiskStore) Remove(filename string) error {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload failed: %w", err)
	}
	return nil
}

// SanitizeFilename reduces a client-supplied filename to a safe bare name:
// directory components are stripped, spaces become underscores, anything
// outside [A-Za-z0-9._-] is dropped, and leading/trailing dots and dashes go
// so the result can never escape the uploads dir or hide as a dotfile.
// Returns "" when nothing safe survives.
func SanitizeFilename(raw string) string {
	if raw == "" {
		return ""
	}
	name := filepath.Base(strings.ReplaceAll(raw, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), ".-_")
}
